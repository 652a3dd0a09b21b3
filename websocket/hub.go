package websocket

import (
	"encoding/json"
	"log"
	"sync"

	ball "github.com/esimov/ascii-balls/ball-solver"
)

type ballMessage struct {
	X   float64  `json:"x"`
	Y   float64  `json:"y"`
	R   float64  `json:"r"`
	RGB [3]uint8 `json:"rgb"`
}

type frameMessage struct {
	Type   string        `json:"type"`
	Frame  uint64        `json:"frame"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Balls  []ballMessage `json:"balls"`
}

// Stats summarizes the last published frame.
type Stats struct {
	Frame   uint64  `json:"frame"`
	Balls   int     `json:"balls"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Clients int     `json:"clients"`
}

// Hub fans the simulation frames out to every connected viewer.
type Hub struct {
	every uint64

	mu      sync.RWMutex
	clients map[*client]struct{}
	latest  ball.Frame
}

// NewHub creates a hub broadcasting one frame out of every.
func NewHub(every int) *Hub {
	if every < 1 {
		every = 1
	}
	return &Hub{
		every:   uint64(every),
		clients: make(map[*client]struct{}),
	}
}

// Publish records f as the latest frame and sends it to the viewers when due.
// It never blocks the frame loop: viewers with a full buffer miss the frame.
func (h *Hub) Publish(f ball.Frame) {
	h.mu.Lock()
	h.latest = f
	n := len(h.clients)
	h.mu.Unlock()

	if n == 0 || f.Seq%h.every != 0 {
		return
	}

	data, err := json.Marshal(encodeFrame(f))
	if err != nil {
		log.Printf("[WS] error marshaling frame %d: %v", f.Seq, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Stats returns the summary of the latest frame.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return Stats{
		Frame:   h.latest.Seq,
		Balls:   len(h.latest.Bodies),
		Width:   h.latest.Width,
		Height:  h.latest.Height,
		Clients: len(h.clients),
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("[WS] viewer %s connected", c.addr)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	log.Printf("[WS] viewer %s disconnected", c.addr)
}

func encodeFrame(f ball.Frame) frameMessage {
	m := frameMessage{
		Type:   "frame",
		Frame:  f.Seq,
		Width:  f.Width,
		Height: f.Height,
		Balls:  make([]ballMessage, len(f.Bodies)),
	}
	for i, b := range f.Bodies {
		m.Balls[i] = ballMessage{X: b.X, Y: b.Y, R: b.Radius, RGB: [3]uint8{b.R, b.G, b.B}}
	}
	return m
}
