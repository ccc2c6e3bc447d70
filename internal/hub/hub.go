// Package hub pushes widget session snapshots to websocket subscribers
package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

const (
	// EventTypeSession is sent after every session state transition
	EventTypeSession = "session"

	defaultWriteTimeout = 5 * time.Second
	defaultSendBuffer   = 16
)

// Event is the payload written to subscribers
type Event struct {
	Type      string                 `json:"type"`
	SessionID string                 `json:"session_id"`
	Session   *lookupsession.Session `json:"session"`
	Card      *pokemon.Card          `json:"card"`
	At        time.Time              `json:"at"`
}

// Stats reports current subscriber counts
type Stats struct {
	Sessions    int `json:"sessions"`
	Subscribers int `json:"subscribers"`
}

// Config holds hub options
type Config struct {
	// Clock stamps events; write deadlines always use wall time
	Clock        clock.Clock
	WriteTimeout time.Duration
	// SendBuffer is the number of events queued per subscriber before it is
	// dropped as too slow
	SendBuffer int
	Logger     *slog.Logger
}

// Validate fills defaults
func (c *Config) Validate() error {
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = defaultSendBuffer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

// subscriber owns the only writer of its connection
type subscriber struct {
	ws   *websocket.Conn
	send chan []byte
}

// Hub fans session events out to the connections watching each session.
// Publish never touches the network; each subscriber drains its queue from
// its own goroutine.
type Hub struct {
	mu           sync.Mutex
	sessions     map[string]map[*websocket.Conn]*subscriber
	clock        clock.Clock
	writeTimeout time.Duration
	sendBuffer   int
	logger       *slog.Logger
}

// New creates a hub. A nil config uses defaults.
func New(cfg *Config) *Hub {
	if cfg == nil {
		cfg = &Config{}
	}
	_ = cfg.Validate()

	return &Hub{
		sessions:     make(map[string]map[*websocket.Conn]*subscriber),
		clock:        cfg.Clock,
		writeTimeout: cfg.WriteTimeout,
		sendBuffer:   cfg.SendBuffer,
		logger:       cfg.Logger,
	}
}

// Subscribe registers ws for events of sessionID. A non-nil snapshot is
// queued ahead of any later event. The hub is the only writer of ws until
// Unsubscribe.
func (h *Hub) Subscribe(sessionID string, ws *websocket.Conn, snapshot *lookupsession.Session) error {
	sub := &subscriber{
		ws:   ws,
		send: make(chan []byte, h.sendBuffer),
	}
	if snapshot != nil {
		payload, err := json.Marshal(h.NewEvent(snapshot))
		if err != nil {
			return err
		}
		sub.send <- payload
	}

	h.mu.Lock()
	conns, ok := h.sessions[sessionID]
	if !ok {
		conns = make(map[*websocket.Conn]*subscriber)
		h.sessions[sessionID] = conns
	}
	conns[ws] = sub
	h.mu.Unlock()

	go h.writeLoop(sessionID, sub)

	return nil
}

// Unsubscribe removes ws and closes it
func (h *Hub) Unsubscribe(sessionID string, ws *websocket.Conn) {
	h.drop(sessionID, ws)
}

// Publish queues a snapshot of session for its subscribers. A subscriber
// whose queue is full is dropped.
func (h *Hub) Publish(_ context.Context, session *lookupsession.Session) error {
	if session == nil {
		return nil
	}

	payload, err := json.Marshal(h.NewEvent(session))
	if err != nil {
		return err
	}

	var slow []*websocket.Conn

	h.mu.Lock()
	for ws, sub := range h.sessions[session.ID] {
		select {
		case sub.send <- payload:
		default:
			slow = append(slow, ws)
		}
	}
	h.mu.Unlock()

	for _, ws := range slow {
		h.logger.Debug("dropping slow websocket subscriber", "session_id", session.ID)
		h.drop(session.ID, ws)
	}

	return nil
}

// NewEvent builds the event for a session snapshot
func (h *Hub) NewEvent(session *lookupsession.Session) *Event {
	return &Event{
		Type:      EventTypeSession,
		SessionID: session.ID,
		Session:   session,
		Card:      session.Card(),
		At:        h.clock.Now().UTC(),
	}
}

// Stats returns the number of watched sessions and open subscribers
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := Stats{Sessions: len(h.sessions)}
	for _, conns := range h.sessions {
		stats.Subscribers += len(conns)
	}
	return stats
}

func (h *Hub) writeLoop(sessionID string, sub *subscriber) {
	for payload := range sub.send {
		_ = sub.ws.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := sub.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debug("dropping websocket subscriber",
				"session_id", sessionID,
				"error", err)
			h.drop(sessionID, sub.ws)
			// drop closed the queue; drain it so the loop ends
			for range sub.send {
			}
			return
		}
	}
}

// drop removes ws, closes its queue exactly once and closes the connection
func (h *Hub) drop(sessionID string, ws *websocket.Conn) {
	h.mu.Lock()
	if conns, ok := h.sessions[sessionID]; ok {
		if sub, ok := conns[ws]; ok {
			delete(conns, ws)
			close(sub.send)
		}
		if len(conns) == 0 {
			delete(h.sessions, sessionID)
		}
	}
	h.mu.Unlock()

	_ = ws.Close()
}
