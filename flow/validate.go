package flow

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"CampaignBot/entity"
)

const dateLayout = "2006-01-02"

var audiencePattern = regexp.MustCompile(`^(\d{1,2})\s*-\s*(\d{1,2})\s+(\S+)$`)

// parseEnum matches input against a fixed value set, case-insensitively,
// and returns the canonical value.
func parseEnum(raw string, values []string) (string, *ValidationError) {
	input := strings.TrimSpace(raw)
	for _, v := range values {
		if strings.EqualFold(input, v) {
			return v, nil
		}
	}
	return "", Invalid("Valor no válido. Opciones: %s", strings.Join(values, ", "))
}

// parseBudget parses a positive daily budget, honoring the platform minimum.
func parseBudget(raw string, min float64) (float64, *ValidationError) {
	input := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, Invalid("El presupuesto debe ser un número, por ejemplo 10.50")
	}
	if value <= 0 {
		return 0, Invalid("El presupuesto debe ser mayor que cero.")
	}
	if value < min {
		return 0, Invalid("El presupuesto mínimo aceptado es %.2f", min)
	}
	return value, nil
}

// parseDateRange parses "AAAA-MM-DD AAAA-MM-DD" with start <= end.
func parseDateRange(raw string) (entity.DateRange, *ValidationError) {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) != 2 {
		return entity.DateRange{}, Invalid("Envía dos fechas: inicio y fin, formato AAAA-MM-DD AAAA-MM-DD")
	}
	start, err := time.Parse(dateLayout, parts[0])
	if err != nil {
		return entity.DateRange{}, Invalid("Fecha de inicio no válida: %s (formato AAAA-MM-DD)", parts[0])
	}
	end, err := time.Parse(dateLayout, parts[1])
	if err != nil {
		return entity.DateRange{}, Invalid("Fecha de fin no válida: %s (formato AAAA-MM-DD)", parts[1])
	}
	if end.Before(start) {
		return entity.DateRange{}, Invalid("La fecha de fin debe ser igual o posterior a la de inicio.")
	}
	return entity.DateRange{Start: start, End: end}, nil
}

// parseAudience coerces free text like "18-65 ambos" into a structured
// age range plus gender set.
func parseAudience(raw string) (entity.Audience, *ValidationError) {
	match := audiencePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return entity.Audience{}, Invalid("Formato de público: edad_min-edad_max género, por ejemplo 18-65 ambos")
	}

	ageMin, _ := strconv.Atoi(match[1])
	ageMax, _ := strconv.Atoi(match[2])
	if ageMin < 13 || ageMax > 65 || ageMin > ageMax {
		return entity.Audience{}, Invalid("El rango de edad debe estar entre 13 y 65, con mínimo ≤ máximo.")
	}

	var genders []string
	switch strings.ToLower(match[3]) {
	case "ambos", "both":
		genders = []string{"male", "female"}
	case "hombres", "male":
		genders = []string{"male"}
	case "mujeres", "female":
		genders = []string{"female"}
	default:
		return entity.Audience{}, Invalid("Género no válido. Opciones: hombres, mujeres, ambos")
	}

	return entity.Audience{AgeMin: ageMin, AgeMax: ageMax, Genders: genders}, nil
}

// parseFreeText trims and length-caps free text. Over-length input is
// rejected outright; silent truncation would commit text the user never saw.
func parseFreeText(raw string, maxLen int) (string, *ValidationError) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", Invalid("El texto no puede estar vacío.")
	}
	if n := utf8.RuneCountInString(text); n > maxLen {
		return "", Invalid("Máximo %d caracteres (recibí %d). Envía una versión más corta.", maxLen, n)
	}
	return text, nil
}

// parsePageIndex parses a 1-based selection within the visible page.
func parsePageIndex(raw string, visible int) (int, *ValidationError) {
	input := strings.TrimSpace(raw)
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > visible {
		return 0, Invalid("Elige un número entre 1 y %d.", visible)
	}
	return n, nil
}
