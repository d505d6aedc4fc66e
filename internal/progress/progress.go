// Package progress streams solve-in-progress events (DSSR iteration
// boundaries, final result) to subscribed WebSocket clients via a
// registered-clients map and drop-on-full-send-buffer broadcast.
package progress

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Envelope wraps every broadcast message with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	// TypeDSSRIteration reports the end of one DSSR sweep.
	TypeDSSRIteration = "solve:dssr_iteration"
	// TypeSolveResult reports a terminal solve outcome.
	TypeSolveResult = "solve:result"
)

// DSSRIterationPayload is emitted once per DSSR sweep.
type DSSRIterationPayload struct {
	Iteration    int     `json:"iteration"`
	BestUtility  float64 `json:"best_utility"`
	CycleFound   bool    `json:"cycle_found"`
}

// SolveResultPayload is emitted once the solve reaches a fixed point.
type SolveResultPayload struct {
	Feasible              bool    `json:"feasible"`
	FinalUtility          float64 `json:"final_utility"`
	StepCount             int     `json:"step_count"`
	PossiblyNonElementary bool    `json:"possibly_non_elementary"`
}

// NewEnvelope marshals payload and wraps it with msgType.
func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// Client is one connected progress subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient wraps conn and starts its write pump.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	c := &Client{hub: hub, conn: conn, send: make(chan []byte, 32)}
	go c.writePump()
	return c
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Hub manages connected progress clients and broadcasts solve events.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// Register adds c to the broadcast set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

// Unregister removes c and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast fans msg out to every registered client, dropping it for any
// client whose send buffer is full rather than blocking the solve.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("progress: client buffer full, dropping message")
		}
	}
}

// ClientCount returns the number of currently registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// EmitDSSRIteration broadcasts a DSSR sweep boundary, if any clients are
// listening.
func (h *Hub) EmitDSSRIteration(p DSSRIterationPayload) {
	if h.ClientCount() == 0 {
		return
	}
	msg, err := NewEnvelope(TypeDSSRIteration, p)
	if err != nil {
		log.Printf("progress: encode dssr_iteration: %v", err)
		return
	}
	h.Broadcast(msg)
}

// EmitSolveResult broadcasts the terminal solve outcome.
func (h *Hub) EmitSolveResult(p SolveResultPayload) {
	if h.ClientCount() == 0 {
		return
	}
	msg, err := NewEnvelope(TypeSolveResult, p)
	if err != nil {
		log.Printf("progress: encode solve:result: %v", err)
		return
	}
	h.Broadcast(msg)
}
