package flow

import (
	"context"

	"CampaignBot/entity"
)

// StepDefinition is a single node of the flow graph. Definitions are built
// once at startup and shared read-only across all sessions.
type StepDefinition interface {
	// Name returns the unique identifier for this step.
	Name() StepName

	// Prompt renders the message asking the user for this step's input.
	Prompt(ctx context.Context, state *SessionState) (string, error)

	// Validate checks raw user input against this step's grammar and
	// returns the typed value to store, or a *ValidationError.
	Validate(ctx context.Context, raw string, state *SessionState) (FieldValue, error)

	// Next computes the following step from the accumulated fields.
	Next(fields Fields) StepName
}

// PaginatedStep is implemented by steps whose options are browsed in
// fixed-size pages. SIGUIENTE/ANTERIOR only apply to these.
type PaginatedStep interface {
	StepDefinition

	// Options returns the full upstream option list for this step.
	Options(ctx context.Context, state *SessionState) ([]entity.Option, error)
}

// SessionStore handles persistence of session states. Get returns
// (nil, nil) when no live session exists for the id; expired sessions
// behave the same way.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*SessionState, error)
	Put(ctx context.Context, state *SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// OptionSource exposes the collaborator-owned selectable lists.
type OptionSource interface {
	ListAdAccounts(ctx context.Context) ([]entity.Option, error)
	ListPages(ctx context.Context) ([]entity.Option, error)
}

// CampaignCreator is the external creation collaborator. The idempotency
// token is forwarded so the collaborator can deduplicate retries.
type CampaignCreator interface {
	CreateCampaign(ctx context.Context, draft *entity.CampaignDraft, idempotencyToken string) (*entity.CreatedObjects, error)
}

// CopySuggester produces an ad copy suggestion for the SUGERIR command.
type CopySuggester interface {
	SuggestAdCopy(ctx context.Context, campaignName, objective string) (string, error)
}

// EventSink receives flow telemetry events.
type EventSink interface {
	FlowEvent(eventType, sessionID string, step StepName)
}
