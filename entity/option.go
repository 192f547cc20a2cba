package entity

// Option is a selectable item from an external list (ad account, fan page).
// The upstream order is significant: indexed selection resolves against it.
type Option struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"`
}
