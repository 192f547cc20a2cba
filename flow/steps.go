package flow

import (
	"context"
	"fmt"
	"strings"

	"CampaignBot/entity"
)

// templateMode is stored under the start step when the user picks the
// template shortcut; the graph branches on it after fanpage selection.
const templateMode = "plantilla"

// startStep is the entry confirmation. The plain SÍ answer is not stored as a
// field; only the template choice leaves a trace.
type startStep struct{}

func (s *startStep) Name() StepName { return StepStart }

func (s *startStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	return "👋 ¡Hola! Vamos a crear una campaña publicitaria.\n\n" +
		"Responde SÍ para configurarla paso a paso, o PLANTILLA para cargarla con una plantilla.\n" +
		"Puedes enviar CANCELAR en cualquier momento para salir.", nil
}

func (s *startStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SÍ", "SI":
		return NoneValue(), nil
	case "PLANTILLA":
		return EnumValue(templateMode), nil
	}
	return FieldValue{}, Invalid("Responde SÍ para comenzar o PLANTILLA para usar una plantilla.")
}

func (s *startStep) Next(fields Fields) StepName { return StepAdAccount }

// selectionStep is an indexed choice over a paginated external list. The chosen
// option is resolved against the visible page at validation time and stored
// in full, so assembly never re-fetches a possibly reordered list.
type selectionStep struct {
	name  StepName
	title string
	list  func(ctx context.Context) ([]entity.Option, error)
	next  func(fields Fields) StepName
}

func (s *selectionStep) Name() StepName { return s.name }

func (s *selectionStep) Options(ctx context.Context, state *SessionState) ([]entity.Option, error) {
	return s.list(ctx)
}

func (s *selectionStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	options, err := s.list(ctx)
	if err != nil {
		return "", &ExternalError{Op: "listing options for " + string(s.name), Err: err}
	}
	if len(options) == 0 {
		return "", &ExternalError{Op: "listing options for " + string(s.name), Message: "la lista está vacía"}
	}

	paged := Paginate(options, state.Page(s.name))

	var sb strings.Builder
	sb.WriteString(s.title)
	sb.WriteString("\n\n")
	for i, opt := range paged.Items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, opt.Label))
	}
	if paged.TotalPages > 1 {
		sb.WriteString(fmt.Sprintf("\nPágina %d/%d. Envía SIGUIENTE o ANTERIOR para navegar.", paged.PageNumber, paged.TotalPages))
	}
	sb.WriteString("\nResponde con el número de la opción:")
	return sb.String(), nil
}

func (s *selectionStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	options, err := s.list(ctx)
	if err != nil {
		return FieldValue{}, &ExternalError{Op: "listing options for " + string(s.name), Err: err}
	}

	paged := Paginate(options, state.Page(s.name))
	n, verr := parsePageIndex(raw, len(paged.Items))
	if verr != nil {
		return FieldValue{}, verr
	}
	return SelectionValue(paged.Items[n-1]), nil
}

func (s *selectionStep) Next(fields Fields) StepName { return s.next(fields) }

// textStep accepts trimmed, non-empty, length-capped free text.
type textStep struct {
	name   StepName
	prompt string
	maxLen int
	next   StepName
}

func (s *textStep) Name() StepName { return s.name }

func (s *textStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	return s.prompt, nil
}

func (s *textStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	text, verr := parseFreeText(raw, s.maxLen)
	if verr != nil {
		return FieldValue{}, verr
	}
	return TextValue(text), nil
}

func (s *textStep) Next(fields Fields) StepName { return s.next }

// enumStep accepts one value from a fixed code set, case-insensitive.
type enumStep struct {
	name   StepName
	prompt string
	values []string
	next   StepName
}

func (s *enumStep) Name() StepName { return s.name }

func (s *enumStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	return s.prompt + "\n\nOpciones: " + strings.Join(s.values, ", "), nil
}

func (s *enumStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	value, verr := parseEnum(raw, s.values)
	if verr != nil {
		return FieldValue{}, verr
	}
	return EnumValue(value), nil
}

func (s *enumStep) Next(fields Fields) StepName { return s.next }

// budgetStep accepts a positive daily budget honoring the platform minimum.
type budgetStep struct {
	min float64
}

func (s *budgetStep) Name() StepName { return StepDailyBudget }

func (s *budgetStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	return fmt.Sprintf("💰 Escribe el presupuesto diario en USD (mínimo %.2f):", s.min), nil
}

func (s *budgetStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	value, verr := parseBudget(raw, s.min)
	if verr != nil {
		return FieldValue{}, verr
	}
	return NumberValue(value), nil
}

func (s *budgetStep) Next(fields Fields) StepName { return StepDateRange }

// dateRangeStep accepts the campaign schedule, start <= end.
type dateRangeStep struct{}

func (s *dateRangeStep) Name() StepName { return StepDateRange }

func (s *dateRangeStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	return "📅 Escribe las fechas de inicio y fin, formato AAAA-MM-DD AAAA-MM-DD:", nil
}

func (s *dateRangeStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	dates, verr := parseDateRange(raw)
	if verr != nil {
		return FieldValue{}, verr
	}
	return DatesValue(dates), nil
}

func (s *dateRangeStep) Next(fields Fields) StepName { return StepGeolocation }

// audienceStep accepts a structured age range plus gender set. Requires geolocation
// to already be set so the audience is meaningful for the platform.
type audienceStep struct{}

func (s *audienceStep) Name() StepName { return StepAudience }

func (s *audienceStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	return "👥 Describe el público: edad_min-edad_max género (por ejemplo 18-65 ambos):", nil
}

func (s *audienceStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	if !state.Fields.Has(StepGeolocation) {
		return FieldValue{}, Invalid("Primero define la geolocalización de la campaña.")
	}
	audience, verr := parseAudience(raw)
	if verr != nil {
		return FieldValue{}, verr
	}
	return AudienceValue(audience), nil
}

func (s *audienceStep) Next(fields Fields) StepName { return StepPlacement }

// templateBulkStep is the template shortcut target: one message fills every
// remaining field via "clave: valor" lines, then jumps straight to review.
type templateBulkStep struct {
	minBudget float64
}

// bulkKeys maps the template claves to their steps, in parse order:
// pais before publico so the audience cross-check sees the geolocation.
var bulkKeys = []struct {
	key  string
	step StepName
}{
	{"nombre", StepCampaignName},
	{"objetivo", StepCampaignObjective},
	{"tipo_presupuesto", StepBudgetType},
	{"presupuesto_diario", StepDailyBudget},
	{"fechas", StepDateRange},
	{"pais", StepGeolocation},
	{"publico", StepAudience},
	{"ubicacion", StepPlacement},
	{"nombre_anuncio", StepAdName},
	{"tipo_creativo", StepCreativeType},
	{"texto", StepAdText},
}

func (s *templateBulkStep) Name() StepName { return StepTemplateBulk }

func (s *templateBulkStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	var sb strings.Builder
	sb.WriteString("📋 Envía la plantilla completa en un solo mensaje, una línea por clave:\n\n")
	sb.WriteString("nombre: Mi campaña\n")
	sb.WriteString("objetivo: CONVERSIONS\n")
	sb.WriteString("tipo_presupuesto: campaign\n")
	sb.WriteString("presupuesto_diario: 10\n")
	sb.WriteString("fechas: 2025-01-01 2025-01-31\n")
	sb.WriteString("pais: MX\n")
	sb.WriteString("publico: 18-65 ambos\n")
	sb.WriteString("ubicacion: automatic\n")
	sb.WriteString("nombre_anuncio: Mi anuncio\n")
	sb.WriteString("tipo_creativo: image\n")
	sb.WriteString("texto: El texto del anuncio")
	return sb.String(), nil
}

func (s *templateBulkStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	lines := strings.Split(raw, "\n")
	entries := make(map[string]string)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			return FieldValue{}, Invalid("Línea no válida: %q. Usa el formato clave: valor", line)
		}
		entries[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	var missing []string
	for _, bk := range bulkKeys {
		if _, ok := entries[bk.key]; !ok {
			missing = append(missing, bk.key)
		}
	}
	if len(missing) > 0 {
		return FieldValue{}, Invalid("Faltan claves en la plantilla: %s", strings.Join(missing, ", "))
	}

	bulk := make(map[StepName]FieldValue, len(bulkKeys))
	for _, bk := range bulkKeys {
		value, verr := s.parseEntry(bk.step, entries[bk.key])
		if verr != nil {
			return FieldValue{}, Invalid("%s: %s", bk.key, verr.Reason)
		}
		bulk[bk.step] = value
	}

	return BulkValue(bulk), nil
}

func (s *templateBulkStep) parseEntry(step StepName, raw string) (FieldValue, *ValidationError) {
	switch step {
	case StepCampaignName, StepAdName:
		text, verr := parseFreeText(raw, 100)
		if verr != nil {
			return FieldValue{}, verr
		}
		return TextValue(text), nil
	case StepAdText:
		text, verr := parseFreeText(raw, 500)
		if verr != nil {
			return FieldValue{}, verr
		}
		return TextValue(text), nil
	case StepCampaignObjective:
		value, verr := parseEnum(raw, Objectives)
		if verr != nil {
			return FieldValue{}, verr
		}
		return EnumValue(value), nil
	case StepBudgetType:
		value, verr := parseEnum(raw, BudgetTypes)
		if verr != nil {
			return FieldValue{}, verr
		}
		return EnumValue(value), nil
	case StepGeolocation:
		value, verr := parseEnum(raw, GeoCodes)
		if verr != nil {
			return FieldValue{}, verr
		}
		return EnumValue(value), nil
	case StepPlacement:
		value, verr := parseEnum(raw, Placements)
		if verr != nil {
			return FieldValue{}, verr
		}
		return EnumValue(value), nil
	case StepCreativeType:
		value, verr := parseEnum(raw, CreativeTypes)
		if verr != nil {
			return FieldValue{}, verr
		}
		return EnumValue(value), nil
	case StepDailyBudget:
		value, verr := parseBudget(raw, s.minBudget)
		if verr != nil {
			return FieldValue{}, verr
		}
		return NumberValue(value), nil
	case StepDateRange:
		dates, verr := parseDateRange(raw)
		if verr != nil {
			return FieldValue{}, verr
		}
		return DatesValue(dates), nil
	case StepAudience:
		audience, verr := parseAudience(raw)
		if verr != nil {
			return FieldValue{}, verr
		}
		return AudienceValue(audience), nil
	}
	return FieldValue{}, Invalid("clave desconocida")
}

func (s *templateBulkStep) Next(fields Fields) StepName { return StepReview }

// reviewStep shows the assembled draft and waits for the confirmation
// token. Anything other than CONFIRMAR re-prompts.
type reviewStep struct{}

func (s *reviewStep) Name() StepName { return StepReview }

func (s *reviewStep) Prompt(ctx context.Context, state *SessionState) (string, error) {
	draft, err := Assemble(state.Fields)
	if err != nil {
		return "", err
	}
	return Summary(draft) + "\n\nResponde CONFIRMAR para crear la campaña, o CANCELAR para salir.", nil
}

func (s *reviewStep) Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error) {
	if strings.ToUpper(strings.TrimSpace(raw)) == "CONFIRMAR" {
		return NoneValue(), nil
	}
	return FieldValue{}, Invalid("Responde CONFIRMAR para crear la campaña, o CANCELAR para salir.")
}

func (s *reviewStep) Next(fields Fields) StepName { return StepComplete }
