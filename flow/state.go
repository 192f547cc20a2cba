package flow

import (
	"time"

	"CampaignBot/entity"
)

// StepName identifies a step within the campaign creation graph.
type StepName string

// FieldKind tags the concrete shape held by a FieldValue.
type FieldKind string

const (
	KindNone      FieldKind = "none"
	KindText      FieldKind = "text"
	KindEnum      FieldKind = "enum"
	KindNumber    FieldKind = "number"
	KindSelection FieldKind = "selection"
	KindDates     FieldKind = "dates"
	KindAudience  FieldKind = "audience"
	KindBulk      FieldKind = "bulk"
)

// FieldValue is the tagged union written into the session field bag.
// Validators produce exactly one kind per step class, so assembly never
// meets an unexpected shape.
type FieldValue struct {
	Kind      FieldKind               `json:"kind" bson:"kind"`
	Text      string                  `json:"text,omitempty" bson:"text,omitempty"`
	Number    float64                 `json:"number,omitempty" bson:"number,omitempty"`
	Selection *entity.Option          `json:"selection,omitempty" bson:"selection,omitempty"`
	Dates     *entity.DateRange       `json:"dates,omitempty" bson:"dates,omitempty"`
	Audience  *entity.Audience        `json:"audience,omitempty" bson:"audience,omitempty"`
	Bulk      map[StepName]FieldValue `json:"-" bson:"-"`
}

func NoneValue() FieldValue { return FieldValue{Kind: KindNone} }

func TextValue(s string) FieldValue { return FieldValue{Kind: KindText, Text: s} }

func EnumValue(s string) FieldValue { return FieldValue{Kind: KindEnum, Text: s} }

func NumberValue(n float64) FieldValue { return FieldValue{Kind: KindNumber, Number: n} }

func SelectionValue(o entity.Option) FieldValue {
	return FieldValue{Kind: KindSelection, Selection: &o}
}

func DatesValue(d entity.DateRange) FieldValue { return FieldValue{Kind: KindDates, Dates: &d} }

func AudienceValue(a entity.Audience) FieldValue {
	return FieldValue{Kind: KindAudience, Audience: &a}
}

func BulkValue(m map[StepName]FieldValue) FieldValue { return FieldValue{Kind: KindBulk, Bulk: m} }

// Fields maps visited steps to their validated values.
type Fields map[StepName]FieldValue

// Has reports whether the step has a stored value.
func (f Fields) Has(step StepName) bool {
	_, ok := f[step]
	return ok
}

// Text retrieves the text of a text or enum field.
func (f Fields) Text(step StepName) string {
	return f[step].Text
}

// Number retrieves a numeric field.
func (f Fields) Number(step StepName) float64 {
	return f[step].Number
}

// Selection retrieves a resolved option, or nil.
func (f Fields) Selection(step StepName) *entity.Option {
	return f[step].Selection
}

// Dates retrieves a date range, or nil.
func (f Fields) Dates(step StepName) *entity.DateRange {
	return f[step].Dates
}

// Audience retrieves a structured audience, or nil.
func (f Fields) Audience(step StepName) *entity.Audience {
	return f[step].Audience
}

// SessionState is the durable per-conversation flow state.
type SessionState struct {
	SessionID   string           `json:"session_id" bson:"session_id"`
	CurrentStep StepName         `json:"current_step" bson:"current_step"`
	Fields      Fields           `json:"fields" bson:"fields"`
	PageCursor  map[StepName]int `json:"page_cursor" bson:"page_cursor"`
	CommitToken string           `json:"commit_token" bson:"commit_token"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updated_at"`
}

// NewSessionState creates a fresh session positioned at the initial step.
func NewSessionState(sessionID string, initial StepName) *SessionState {
	return &SessionState{
		SessionID:   sessionID,
		CurrentStep: initial,
		Fields:      make(Fields),
		PageCursor:  make(map[StepName]int),
		UpdatedAt:   time.Now(),
	}
}

// Page returns the current page cursor for a paginated step, defaulting to 1.
func (s *SessionState) Page(step StepName) int {
	if p, ok := s.PageCursor[step]; ok && p >= 1 {
		return p
	}
	return 1
}

// SetPage stores the page cursor for a paginated step.
func (s *SessionState) SetPage(step StepName, page int) {
	if s.PageCursor == nil {
		s.PageCursor = make(map[StepName]int)
	}
	s.PageCursor[step] = page
}
