package flow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStepValidate(t *testing.T) {
	step := &startStep{}
	state := NewSessionState("100", StepStart)
	ctx := context.Background()

	for _, input := range []string{"SÍ", "sí", "SI", "si", " Sí "} {
		value, err := step.Validate(ctx, input, state)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, KindNone, value.Kind, "input %q", input)
	}

	value, err := step.Validate(ctx, "plantilla", state)
	require.NoError(t, err)
	assert.Equal(t, KindEnum, value.Kind)
	assert.Equal(t, templateMode, value.Text)

	_, err = step.Validate(ctx, "no", state)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSelectionStepResolvesFromVisiblePage(t *testing.T) {
	source := &fakeSource{accounts: makeOptions("act", 45)}
	step := &selectionStep{
		name:  StepAdAccount,
		title: "cuenta:",
		list:  source.ListAdAccounts,
		next:  func(Fields) StepName { return StepFanpage },
	}
	state := NewSessionState("100", StepAdAccount)
	state.SetPage(StepAdAccount, 2)
	ctx := context.Background()

	value, err := step.Validate(ctx, "5", state)
	require.NoError(t, err)
	require.Equal(t, KindSelection, value.Kind)
	assert.Equal(t, "act_25", value.Selection.ID)
	assert.Equal(t, "act 25", value.Selection.Label)

	// Only the visible page is addressable.
	_, err = step.Validate(ctx, "21", state)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "20")
}

func TestSelectionStepPromptShowsPageFooter(t *testing.T) {
	source := &fakeSource{accounts: makeOptions("act", 45)}
	step := &selectionStep{
		name:  StepAdAccount,
		title: "cuenta:",
		list:  source.ListAdAccounts,
		next:  func(Fields) StepName { return StepFanpage },
	}
	ctx := context.Background()

	prompt, err := step.Prompt(ctx, NewSessionState("100", StepAdAccount))
	require.NoError(t, err)
	assert.Contains(t, prompt, "Página 1/3")
	assert.Contains(t, prompt, "1. act 1")
	assert.Contains(t, prompt, "20. act 20")
	assert.NotContains(t, prompt, "act 21")

	// With a single page the footer is omitted.
	short := &selectionStep{
		name:  StepAdAccount,
		title: "cuenta:",
		list:  (&fakeSource{accounts: makeOptions("act", 3)}).ListAdAccounts,
		next:  func(Fields) StepName { return StepFanpage },
	}
	prompt, err = short.Prompt(ctx, NewSessionState("100", StepAdAccount))
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Página")
}

func TestSelectionStepEmptyListIsExternalError(t *testing.T) {
	step := &selectionStep{
		name:  StepAdAccount,
		title: "cuenta:",
		list:  (&fakeSource{}).ListAdAccounts,
		next:  func(Fields) StepName { return StepFanpage },
	}

	_, err := step.Prompt(context.Background(), NewSessionState("100", StepAdAccount))
	var xerr *ExternalError
	require.ErrorAs(t, err, &xerr)
}

func TestAudienceStepRequiresGeolocation(t *testing.T) {
	step := &audienceStep{}
	state := NewSessionState("100", StepAudience)
	ctx := context.Background()

	_, err := step.Validate(ctx, "18-65 ambos", state)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "geolocalización")

	state.Fields[StepGeolocation] = EnumValue("MX")
	value, err := step.Validate(ctx, "18-65 ambos", state)
	require.NoError(t, err)
	assert.Equal(t, KindAudience, value.Kind)
}

func TestTemplateBulkStepValidate(t *testing.T) {
	step := &templateBulkStep{minBudget: 1}
	state := NewSessionState("200", StepTemplateBulk)
	ctx := context.Background()

	template := strings.Join([]string{
		"nombre: Campaña plantilla",
		"", // blank lines are skipped
		"OBJETIVO: traffic",
		"tipo_presupuesto: adset",
		"presupuesto_diario: 12",
		"fechas: 2026-10-01 2026-10-15",
		"pais: co",
		"publico: 25-45 mujeres",
		"ubicacion: instagram",
		"nombre_anuncio: Anuncio plantilla",
		"tipo_creativo: video",
		"texto: Descúbrelo hoy",
	}, "\n")

	value, err := step.Validate(ctx, template, state)
	require.NoError(t, err)
	require.Equal(t, KindBulk, value.Kind)
	require.Len(t, value.Bulk, 11)

	assert.Equal(t, "Campaña plantilla", value.Bulk[StepCampaignName].Text)
	assert.Equal(t, "TRAFFIC", value.Bulk[StepCampaignObjective].Text)
	assert.Equal(t, "CO", value.Bulk[StepGeolocation].Text)
	assert.Equal(t, 12.0, value.Bulk[StepDailyBudget].Number)
	assert.Equal(t, []string{"female"}, value.Bulk[StepAudience].Audience.Genders)
}

func TestTemplateBulkStepReportsMissingKeys(t *testing.T) {
	step := &templateBulkStep{minBudget: 1}
	state := NewSessionState("200", StepTemplateBulk)

	_, err := step.Validate(context.Background(), "nombre: Solo el nombre", state)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "Faltan claves")
	assert.Contains(t, verr.Reason, "objetivo")
	assert.Contains(t, verr.Reason, "texto")
}

func TestTemplateBulkStepRejectsMalformedLine(t *testing.T) {
	step := &templateBulkStep{minBudget: 1}
	state := NewSessionState("200", StepTemplateBulk)

	_, err := step.Validate(context.Background(), "nombre sin separador", state)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "clave: valor")
}

func TestTemplateBulkStepPrefixesFieldErrors(t *testing.T) {
	step := &templateBulkStep{minBudget: 1}
	state := NewSessionState("200", StepTemplateBulk)

	template := strings.Join([]string{
		"nombre: Campaña",
		"objetivo: TRAFFIC",
		"tipo_presupuesto: adset",
		"presupuesto_diario: gratis",
		"fechas: 2026-10-01 2026-10-15",
		"pais: CO",
		"publico: 25-45 mujeres",
		"ubicacion: instagram",
		"nombre_anuncio: Anuncio",
		"tipo_creativo: video",
		"texto: Descúbrelo hoy",
	}, "\n")

	_, err := step.Validate(context.Background(), template, state)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "presupuesto_diario:")
}

func TestReviewStepValidate(t *testing.T) {
	step := &reviewStep{}
	state := NewSessionState("100", StepReview)
	ctx := context.Background()

	value, err := step.Validate(ctx, " confirmar ", state)
	require.NoError(t, err)
	assert.Equal(t, KindNone, value.Kind)
	assert.Equal(t, StepComplete, step.Next(state.Fields))

	_, err = step.Validate(ctx, "ok", state)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
