package flow

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnum(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"exact", "CONVERSIONS", "CONVERSIONS", true},
		{"lowercase canonicalized", "traffic", "TRAFFIC", true},
		{"surrounding whitespace", "  reach  ", "REACH", true},
		{"unknown value", "SALES", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, verr := parseEnum(tt.input, Objectives)
			if tt.ok {
				require.Nil(t, verr)
				assert.Equal(t, tt.want, got)
			} else {
				require.NotNil(t, verr)
				assert.Contains(t, verr.Reason, "Opciones")
			}
		})
	}
}

func TestParseBudget(t *testing.T) {
	tests := []struct {
		name  string
		input string
		min   float64
		want  float64
		ok    bool
	}{
		{"integer", "10", 1, 10, true},
		{"decimal point", "10.50", 1, 10.5, true},
		{"decimal comma", "10,50", 1, 10.5, true},
		{"not a number", "diez", 1, 0, false},
		{"zero", "0", 1, 0, false},
		{"negative", "-5", 1, 0, false},
		{"below minimum", "0.50", 1, 0, false},
		{"at minimum", "1", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, verr := parseBudget(tt.input, tt.min)
			if tt.ok {
				require.Nil(t, verr)
				assert.Equal(t, tt.want, got)
			} else {
				assert.NotNil(t, verr)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	dates, verr := parseDateRange("2026-09-10 2026-09-30")
	require.Nil(t, verr)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), dates.Start)
	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), dates.End)

	// Single-day campaigns are allowed.
	dates, verr = parseDateRange("2026-09-10 2026-09-10")
	require.Nil(t, verr)
	assert.Equal(t, dates.Start, dates.End)

	for _, input := range []string{
		"2026-09-10",
		"2026-09-30 2026-09-10",
		"10/09/2026 30/09/2026",
		"2026-09-10 mañana",
		"",
	} {
		_, verr := parseDateRange(input)
		assert.NotNil(t, verr, "input %q", input)
	}
}

func TestParseAudience(t *testing.T) {
	audience, verr := parseAudience("18-65 ambos")
	require.Nil(t, verr)
	assert.Equal(t, 18, audience.AgeMin)
	assert.Equal(t, 65, audience.AgeMax)
	assert.Equal(t, []string{"male", "female"}, audience.Genders)

	audience, verr = parseAudience("25 - 40 hombres")
	require.Nil(t, verr)
	assert.Equal(t, 25, audience.AgeMin)
	assert.Equal(t, 40, audience.AgeMax)
	assert.Equal(t, []string{"male"}, audience.Genders)

	audience, verr = parseAudience("30-55 mujeres")
	require.Nil(t, verr)
	assert.Equal(t, []string{"female"}, audience.Genders)

	for _, input := range []string{
		"12-65 ambos",  // below the platform floor
		"18-70 ambos",  // above the platform ceiling
		"40-20 ambos",  // inverted range
		"18-65 todos",  // unknown gender
		"adultos",      // no range at all
		"18-65",        // missing gender
	} {
		_, verr := parseAudience(input)
		assert.NotNil(t, verr, "input %q", input)
	}
}

func TestParseFreeText(t *testing.T) {
	text, verr := parseFreeText("  Campaña verano  ", 100)
	require.Nil(t, verr)
	assert.Equal(t, "Campaña verano", text)

	_, verr = parseFreeText("   ", 100)
	assert.NotNil(t, verr)

	// The cap counts runes, not bytes, and over-length input is rejected
	// rather than truncated.
	long := strings.Repeat("ñ", 11)
	_, verr = parseFreeText(long, 10)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Reason, "11")

	text, verr = parseFreeText(strings.Repeat("ñ", 10), 10)
	require.Nil(t, verr)
	assert.Len(t, []rune(text), 10)
}

func TestParsePageIndex(t *testing.T) {
	n, verr := parsePageIndex(" 3 ", 5)
	require.Nil(t, verr)
	assert.Equal(t, 3, n)

	for _, input := range []string{"0", "6", "-1", "dos", ""} {
		_, verr := parsePageIndex(input, 5)
		assert.NotNil(t, verr, "input %q", input)
	}
}
