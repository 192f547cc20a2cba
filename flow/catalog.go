package flow

// Step names of the campaign creation graph. StepComplete is the terminal
// pseudo-step: it has no definition and entering it triggers the commit.
const (
	StepStart             StepName = "start"
	StepAdAccount         StepName = "ad_account"
	StepFanpage           StepName = "fanpage"
	StepCampaignName      StepName = "campaign_name"
	StepCampaignObjective StepName = "campaign_objective"
	StepBudgetType        StepName = "budget_type"
	StepDailyBudget       StepName = "daily_budget"
	StepDateRange         StepName = "date_range"
	StepGeolocation       StepName = "geolocation"
	StepAudience          StepName = "audience"
	StepPlacement         StepName = "placement"
	StepAdName            StepName = "ad_name"
	StepCreativeType      StepName = "creative_type"
	StepAdText            StepName = "ad_text"
	StepTemplateBulk      StepName = "template_bulk"
	StepReview            StepName = "review"
	StepComplete          StepName = "complete"
)

// Fixed value sets accepted by the downstream platform.
var (
	Objectives    = []string{"CONVERSIONS", "TRAFFIC", "REACH", "BRAND_AWARENESS", "LEAD_GENERATION", "VIDEO_VIEWS"}
	BudgetTypes   = []string{"campaign", "adset"}
	Placements    = []string{"automatic", "facebook", "instagram", "messenger"}
	CreativeTypes = []string{"image", "video", "carousel"}
	GeoCodes      = []string{"MX", "CO", "AR", "CL", "PE", "EC", "ES", "US", "GT", "DO"}
)

// Catalog is the immutable step table. It is built once at process start
// and shared read-only across all sessions.
type Catalog struct {
	steps map[StepName]StepDefinition
	order []StepName
}

// NewCatalog wires the full campaign creation graph against the given
// option source.
func NewCatalog(source OptionSource, minDailyBudget float64) *Catalog {
	c := &Catalog{steps: make(map[StepName]StepDefinition)}

	c.register(&startStep{})
	c.register(&selectionStep{
		name:  StepAdAccount,
		title: "📊 Elige la cuenta publicitaria:",
		list:  source.ListAdAccounts,
		next:  func(Fields) StepName { return StepFanpage },
	})
	c.register(&selectionStep{
		name:  StepFanpage,
		title: "📄 Elige la fanpage:",
		list:  source.ListPages,
		next: func(fields Fields) StepName {
			if fields.Text(StepStart) == templateMode {
				return StepTemplateBulk
			}
			return StepCampaignName
		},
	})
	c.register(&textStep{
		name:   StepCampaignName,
		prompt: "✏️ Escribe el nombre de la campaña:",
		maxLen: 100,
		next:   StepCampaignObjective,
	})
	c.register(&enumStep{
		name:   StepCampaignObjective,
		prompt: "🎯 Elige el objetivo de la campaña:",
		values: Objectives,
		next:   StepBudgetType,
	})
	c.register(&enumStep{
		name:   StepBudgetType,
		prompt: "💼 ¿El presupuesto se define a nivel de campaña o de conjunto de anuncios?",
		values: BudgetTypes,
		next:   StepDailyBudget,
	})
	c.register(&budgetStep{min: minDailyBudget})
	c.register(&dateRangeStep{})
	c.register(&enumStep{
		name:   StepGeolocation,
		prompt: "🌎 Escribe el código del país objetivo:",
		values: GeoCodes,
		next:   StepAudience,
	})
	c.register(&audienceStep{})
	c.register(&enumStep{
		name:   StepPlacement,
		prompt: "📍 Elige la ubicación de los anuncios:",
		values: Placements,
		next:   StepAdName,
	})
	c.register(&textStep{
		name:   StepAdName,
		prompt: "✏️ Escribe el nombre del anuncio:",
		maxLen: 100,
		next:   StepCreativeType,
	})
	c.register(&enumStep{
		name:   StepCreativeType,
		prompt: "🖼 Elige el tipo de creativo:",
		values: CreativeTypes,
		next:   StepAdText,
	})
	c.register(&textStep{
		name:   StepAdText,
		prompt: "📝 Escribe el texto del anuncio (o envía SUGERIR para recibir una propuesta):",
		maxLen: 500,
		next:   StepReview,
	})
	c.register(&templateBulkStep{minBudget: minDailyBudget})
	c.register(&reviewStep{})

	return c
}

func (c *Catalog) register(step StepDefinition) {
	c.steps[step.Name()] = step
	c.order = append(c.order, step.Name())
}

// Start returns the entry step of the graph.
func (c *Catalog) Start() StepName { return StepStart }

// Get returns a step definition by name.
func (c *Catalog) Get(name StepName) (StepDefinition, bool) {
	step, ok := c.steps[name]
	return step, ok
}

// Has reports whether a name is a valid transition target.
func (c *Catalog) Has(name StepName) bool {
	if name == StepComplete {
		return true
	}
	_, ok := c.steps[name]
	return ok
}

// Steps returns all step definitions in registration order.
func (c *Catalog) Steps() []StepDefinition {
	out := make([]StepDefinition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.steps[name])
	}
	return out
}
