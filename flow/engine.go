package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"CampaignBot/internal/lib/sl"
)

// Global commands recognized at any step, independent of its grammar.
const (
	CmdCancel  = "CANCELAR"
	CmdNext    = "SIGUIENTE"
	CmdPrev    = "ANTERIOR"
	CmdSuggest = "SUGERIR"
)

// Engine drives the step graph: one inbound message in, one reply out.
// Access per session is serialized so duplicated concurrent deliveries
// cannot both advance the machine.
type Engine struct {
	store     SessionStore
	catalog   *Catalog
	creator   CampaignCreator
	suggester CopySuggester
	events    EventSink
	locker    *sessionLocker
	log       *slog.Logger
}

// NewEngine creates a flow engine over the given store and catalog.
func NewEngine(store SessionStore, catalog *Catalog, creator CampaignCreator, log *slog.Logger) *Engine {
	return &Engine{
		store:   store,
		catalog: catalog,
		creator: creator,
		locker:  newSessionLocker(),
		log:     log.With(sl.Module("flow.engine")),
	}
}

// SetCopySuggester enables the SUGERIR command at the ad text step.
func (e *Engine) SetCopySuggester(s CopySuggester) { e.suggester = s }

// SetEventSink enables flow telemetry events.
func (e *Engine) SetEventSink(sink EventSink) { e.events = sink }

// Handle processes one inbound message for a session and returns the
// reply to send back. Validation failures come back as reply text with
// state untouched; only infrastructure problems surface as errors.
func (e *Engine) Handle(ctx context.Context, sessionID, text string) (string, error) {
	e.locker.lock(sessionID)
	defer e.locker.unlock(sessionID)

	command := normalizeCommand(text)

	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}

	// No live session (fresh chat, expired, or cancelled): any message
	// starts a new flow and the triggering text is not validated.
	if state == nil {
		if command == CmdCancel {
			return "No hay ninguna operación en curso.", nil
		}
		return e.start(ctx, sessionID)
	}

	if command == CmdCancel {
		if err := e.store.Delete(ctx, sessionID); err != nil {
			return "", fmt.Errorf("deleting session: %w", err)
		}
		e.emit("flow_cancelled", sessionID, state.CurrentStep)
		return "❌ Operación cancelada. Envía cualquier mensaje para comenzar de nuevo.", nil
	}

	step, ok := e.catalog.Get(state.CurrentStep)
	if !ok {
		return "", fmt.Errorf("step not found: %s", state.CurrentStep)
	}

	if command == CmdNext || command == CmdPrev {
		if paged, ok := step.(PaginatedStep); ok {
			return e.navigate(ctx, paged, state, command)
		}
		// Navigation is a global command: a free-text step must never
		// swallow it as field content.
		return "⚠️ " + command + " solo aplica en listas paginadas.", nil
	}

	if state.CurrentStep == StepAdText && command == CmdSuggest && e.suggester != nil {
		return e.suggest(ctx, state)
	}

	value, err := step.Validate(ctx, text, state)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return "⚠️ " + verr.Reason, nil
		}
		return "", err
	}

	switch value.Kind {
	case KindNone:
	case KindBulk:
		for name, v := range value.Bulk {
			state.Fields[name] = v
		}
	default:
		state.Fields[state.CurrentStep] = value
	}

	next := step.Next(state.Fields)
	if next == StepComplete {
		return e.commit(ctx, state)
	}

	state.CurrentStep = next
	if next == StepReview && state.CommitToken == "" {
		state.CommitToken = uuid.NewString()
	}
	state.UpdatedAt = time.Now()

	if err := e.store.Put(ctx, state); err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}

	nextStep, ok := e.catalog.Get(next)
	if !ok {
		return "", fmt.Errorf("next step not found: %s", next)
	}

	e.log.Debug("transition",
		slog.String("session_id", sessionID),
		slog.String("step", string(next)),
	)
	e.emit("step_entered", sessionID, next)

	return nextStep.Prompt(ctx, state)
}

// start creates a fresh session and returns the entry prompt.
func (e *Engine) start(ctx context.Context, sessionID string) (string, error) {
	state := NewSessionState(sessionID, e.catalog.Start())
	if err := e.store.Put(ctx, state); err != nil {
		return "", fmt.Errorf("saving initial session: %w", err)
	}

	step, ok := e.catalog.Get(state.CurrentStep)
	if !ok {
		return "", fmt.Errorf("initial step not found: %s", state.CurrentStep)
	}

	e.log.Info("flow started", slog.String("session_id", sessionID))
	e.emit("flow_started", sessionID, state.CurrentStep)

	return step.Prompt(ctx, state)
}

// navigate moves the page cursor of a paginated step, clamped to the valid
// range, and re-renders the prompt. The current step never changes.
func (e *Engine) navigate(ctx context.Context, step PaginatedStep, state *SessionState, command string) (string, error) {
	options, err := step.Options(ctx, state)
	if err != nil {
		return "", fmt.Errorf("listing options: %w", err)
	}

	total := TotalPages(len(options))
	page := state.Page(step.Name())
	if command == CmdNext {
		page++
	} else {
		page--
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	state.SetPage(step.Name(), page)
	state.UpdatedAt = time.Now()
	if err := e.store.Put(ctx, state); err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}

	return step.Prompt(ctx, state)
}

// suggest replies with an AI-generated ad copy proposal without touching
// the session.
func (e *Engine) suggest(ctx context.Context, state *SessionState) (string, error) {
	suggestion, err := e.suggester.SuggestAdCopy(ctx, state.Fields.Text(StepCampaignName), state.Fields.Text(StepCampaignObjective))
	if err != nil {
		e.log.Warn("copy suggestion failed",
			slog.String("session_id", state.SessionID),
			sl.Err(err),
		)
		return "⚠️ No pude generar una sugerencia ahora. Escribe el texto del anuncio:", nil
	}
	return "💡 Sugerencia:\n\n" + suggestion + "\n\nPuedes enviarla tal cual o escribir tu propio texto.", nil
}

// commit is the terminal transition. The session is deleted before the
// external call so a crash in between can never produce two campaigns;
// the user restarts the flow instead.
func (e *Engine) commit(ctx context.Context, state *SessionState) (string, error) {
	draft, err := Assemble(state.Fields)
	if err != nil {
		var cerr *CompletenessError
		if errors.As(err, &cerr) {
			e.log.Error("incomplete draft at commit",
				slog.String("session_id", state.SessionID),
				sl.Err(cerr),
			)
			_ = e.store.Delete(ctx, state.SessionID)
			return "⚠️ Error interno: el borrador quedó incompleto. La sesión fue reiniciada, envía un mensaje para comenzar de nuevo.", nil
		}
		return "", err
	}

	if err := e.store.Delete(ctx, state.SessionID); err != nil {
		return "", fmt.Errorf("deleting session before commit: %w", err)
	}

	created, err := e.creator.CreateCampaign(ctx, draft, state.CommitToken)
	if err != nil {
		e.log.Error("campaign creation failed",
			slog.String("session_id", state.SessionID),
			sl.Err(err),
		)
		e.emit("commit_failed", state.SessionID, StepComplete)

		message := err.Error()
		var xerr *ExternalError
		if errors.As(err, &xerr) && xerr.Message != "" {
			message = xerr.Message
		}
		return fmt.Sprintf("⚠️ No se pudo crear la campaña: %s\n\nLa sesión fue cerrada; envía un mensaje para intentarlo de nuevo.", message), nil
	}

	e.log.Info("campaign created",
		slog.String("session_id", state.SessionID),
		slog.String("campaign_id", created.CampaignID),
		slog.String("ad_set_id", created.AdSetID),
		slog.String("ad_id", created.AdID),
	)
	e.emit("flow_committed", state.SessionID, StepComplete)

	return fmt.Sprintf("✅ ¡Campaña creada!\n\nCampaña: %s\nConjunto de anuncios: %s\nAnuncio: %s",
		created.CampaignID, created.AdSetID, created.AdID), nil
}

func (e *Engine) emit(eventType, sessionID string, step StepName) {
	if e.events != nil {
		e.events.FlowEvent(eventType, sessionID, step)
	}
}

func normalizeCommand(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}
