package entity

import "time"

// DateRange is a validated campaign schedule, start <= end.
type DateRange struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// Audience is the structured form of a free-text audience description
// like "18-65 ambos".
type Audience struct {
	AgeMin  int      `json:"age_min" bson:"age_min"`
	AgeMax  int      `json:"age_max" bson:"age_max"`
	Genders []string `json:"genders" bson:"genders"`
}

// CampaignDraft is the complete field set handed to the ads collaborator.
// It is assembled only at commit time and never partially persisted.
type CampaignDraft struct {
	Name         string    `json:"name" validate:"required,max=100"`
	Objective    string    `json:"objective" validate:"required"`
	BudgetType   string    `json:"budget_type" validate:"required,oneof=campaign adset"`
	DailyBudget  float64   `json:"daily_budget" validate:"required,gt=0"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Geolocation  string    `json:"geolocation" validate:"required,len=2"`
	AgeMin       int       `json:"age_min" validate:"required,gte=13,lte=65"`
	AgeMax       int       `json:"age_max" validate:"required,gtefield=AgeMin,lte=65"`
	Genders      []string  `json:"genders" validate:"required,min=1"`
	Placement    string    `json:"placement" validate:"required"`
	AdName       string    `json:"ad_name" validate:"required,max=100"`
	CreativeType string    `json:"creative_type" validate:"required"`
	AdText       string    `json:"ad_text" validate:"required,max=500"`
	AccountID    string    `json:"account_id" validate:"required"`
	AccountLabel string    `json:"account_label"`
	PageID       string    `json:"page_id" validate:"required"`
	PageLabel    string    `json:"page_label"`
}

// CreatedObjects holds the identifiers returned by the ads collaborator
// after a successful commit.
type CreatedObjects struct {
	CampaignID string `json:"campaign_id"`
	AdSetID    string `json:"ad_set_id"`
	AdID       string `json:"ad_id"`
}
