package flow

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"CampaignBot/entity"
)

var draftValidator = validator.New()

// requiredSteps are the fields every complete traversal must have produced.
var requiredSteps = []StepName{
	StepAdAccount,
	StepFanpage,
	StepCampaignName,
	StepCampaignObjective,
	StepBudgetType,
	StepDailyBudget,
	StepDateRange,
	StepGeolocation,
	StepAudience,
	StepPlacement,
	StepAdName,
	StepCreativeType,
	StepAdText,
}

// draftFieldSteps maps draft struct fields back to the step that produced
// them, so validation failures cite real step names.
var draftFieldSteps = map[string]StepName{
	"Name":         StepCampaignName,
	"Objective":    StepCampaignObjective,
	"BudgetType":   StepBudgetType,
	"DailyBudget":  StepDailyBudget,
	"StartDate":    StepDateRange,
	"EndDate":      StepDateRange,
	"Geolocation":  StepGeolocation,
	"AgeMin":       StepAudience,
	"AgeMax":       StepAudience,
	"Genders":      StepAudience,
	"Placement":    StepPlacement,
	"AdName":       StepAdName,
	"CreativeType": StepCreativeType,
	"AdText":       StepAdText,
	"AccountID":    StepAdAccount,
	"AccountLabel": StepAdAccount,
	"PageID":       StepFanpage,
	"PageLabel":    StepFanpage,
}

// Assemble folds the accumulated field bag into the canonical draft shape.
// It is total for any complete traversal; a missing field means the engine
// let an incomplete flow reach commit and is reported as a CompletenessError.
func Assemble(fields Fields) (*entity.CampaignDraft, error) {
	var missing []StepName
	for _, step := range requiredSteps {
		if !fields.Has(step) {
			missing = append(missing, step)
		}
	}
	if len(missing) > 0 {
		return nil, &CompletenessError{Missing: missing}
	}

	account := fields.Selection(StepAdAccount)
	page := fields.Selection(StepFanpage)
	dates := fields.Dates(StepDateRange)
	audience := fields.Audience(StepAudience)
	if account == nil || page == nil || dates == nil || audience == nil {
		return nil, &CompletenessError{Missing: []StepName{StepAdAccount}}
	}

	draft := &entity.CampaignDraft{
		Name:         fields.Text(StepCampaignName),
		Objective:    fields.Text(StepCampaignObjective),
		BudgetType:   fields.Text(StepBudgetType),
		DailyBudget:  fields.Number(StepDailyBudget),
		StartDate:    dates.Start,
		EndDate:      dates.End,
		Geolocation:  fields.Text(StepGeolocation),
		AgeMin:       audience.AgeMin,
		AgeMax:       audience.AgeMax,
		Genders:      audience.Genders,
		Placement:    fields.Text(StepPlacement),
		AdName:       fields.Text(StepAdName),
		CreativeType: fields.Text(StepCreativeType),
		AdText:       fields.Text(StepAdText),
		AccountID:    account.ID,
		AccountLabel: account.Label,
		PageID:       page.ID,
		PageLabel:    page.Label,
	}

	if err := draftValidator.Struct(draft); err != nil {
		var invalid []StepName
		seen := make(map[StepName]bool)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				step, ok := draftFieldSteps[fe.Field()]
				if !ok || seen[step] {
					continue
				}
				seen[step] = true
				invalid = append(invalid, step)
			}
		}
		return nil, &CompletenessError{Missing: invalid}
	}

	return draft, nil
}

// Summary renders the draft as the review message.
func Summary(d *entity.CampaignDraft) string {
	var sb strings.Builder
	sb.WriteString("📋 Resumen de la campaña:\n\n")
	sb.WriteString(fmt.Sprintf("Cuenta: %s\n", d.AccountLabel))
	sb.WriteString(fmt.Sprintf("Fanpage: %s\n", d.PageLabel))
	sb.WriteString(fmt.Sprintf("Nombre: %s\n", d.Name))
	sb.WriteString(fmt.Sprintf("Objetivo: %s\n", d.Objective))
	sb.WriteString(fmt.Sprintf("Presupuesto: %.2f USD diarios (%s)\n", d.DailyBudget, d.BudgetType))
	sb.WriteString(fmt.Sprintf("Fechas: %s a %s\n", d.StartDate.Format(dateLayout), d.EndDate.Format(dateLayout)))
	sb.WriteString(fmt.Sprintf("País: %s\n", d.Geolocation))
	sb.WriteString(fmt.Sprintf("Público: %d-%d %s\n", d.AgeMin, d.AgeMax, genderLabel(d.Genders)))
	sb.WriteString(fmt.Sprintf("Ubicación: %s\n", d.Placement))
	sb.WriteString(fmt.Sprintf("Anuncio: %s (%s)\n", d.AdName, d.CreativeType))
	sb.WriteString(fmt.Sprintf("Texto: %s", d.AdText))
	return sb.String()
}

func genderLabel(genders []string) string {
	if len(genders) > 1 {
		return "ambos"
	}
	if len(genders) == 1 && genders[0] == "male" {
		return "hombres"
	}
	return "mujeres"
}
