package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"CampaignBot/flow"
)

// Event represents a flow telemetry event pushed to connected clients.
type Event struct {
	Type      string    `json:"type"` // "flow_started", "step_entered", "flow_cancelled", "flow_committed", "commit_failed"
	SessionID string    `json:"session_id"`
	Step      string    `json:"step,omitempty"`
	At        time.Time `json:"at"`
}

// Hub maintains the set of active WebSocket clients and broadcasts flow
// events to them. The client map is touched only by the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// FlowEvent implements flow.EventSink: it publishes one engine event to
// all connected clients. Never blocks the engine.
func (h *Hub) FlowEvent(eventType, sessionID string, step flow.StepName) {
	event := &Event{
		Type:      eventType,
		SessionID: sessionID,
		Step:      string(step),
		At:        time.Now(),
	}
	select {
	case h.broadcast <- event:
	default:
		if h.log != nil {
			h.log.Warn("event feed full, dropping event", slog.String("type", eventType))
		}
	}
}
