package bot

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"CampaignBot/internal/lib/sl"
)

// FlowHandler is the conversation engine the dispatcher feeds.
type FlowHandler interface {
	Handle(ctx context.Context, sessionID, text string) (string, error)
}

// Dispatcher maps one inbound chat update to exactly one engine
// invocation. Repeated deliveries of the same update id (webhook retries,
// reconnect replays) are acknowledged without reprocessing.
type Dispatcher struct {
	engine FlowHandler
	seen   *seenSet
	log    *slog.Logger
}

func NewDispatcher(engine FlowHandler, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		engine: engine,
		seen:   newSeenSet(1024),
		log:    log.With(sl.Module("bot.dispatcher")),
	}
}

// Dispatch runs the engine for one update. The bool result is false when
// the update was a duplicate and no reply should be sent.
func (d *Dispatcher) Dispatch(ctx context.Context, updateID, chatID int64, text string) (string, bool) {
	if !d.seen.add(updateID) {
		d.log.Debug("duplicate update ignored",
			slog.Int64("update_id", updateID),
			slog.Int64("chat_id", chatID),
		)
		return "", false
	}

	reply, err := d.engine.Handle(ctx, strconv.FormatInt(chatID, 10), text)
	if err != nil {
		d.log.Error("flow handling failed",
			slog.Int64("update_id", updateID),
			slog.Int64("chat_id", chatID),
			sl.Err(err),
		)
		return "⚠️ Ocurrió un error inesperado. Intenta de nuevo en unos minutos.", true
	}

	return reply, true
}

// seenSet is a bounded set of recently processed update ids. Old entries
// are evicted in insertion order once capacity is reached.
type seenSet struct {
	mu    sync.Mutex
	ids   map[int64]struct{}
	order []int64
	cap   int
}

func newSeenSet(capacity int) *seenSet {
	return &seenSet{
		ids: make(map[int64]struct{}, capacity),
		cap: capacity,
	}
}

// add records an id, returning false if it was already present.
func (s *seenSet) add(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return false
	}

	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	if len(s.order) > s.cap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.ids, oldest)
	}
	return true
}
