// Package stream broadcasts gesture events to WebSocket clients as JSON.
package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/gesture"
)

const (
	sendBuffer   = 64
	writeTimeout = 2 * time.Second
)

// Message is the JSON form of a gesture event.
type Message struct {
	Type      string          `json:"type"`
	Gesture   string          `json:"gesture,omitempty"`
	SessionID string          `json:"session_id"`
	TimeMS    int64           `json:"time_ms"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Direction string          `json:"direction,omitempty"`
	Distance  float64         `json:"distance,omitempty"`
	DistanceX float64         `json:"distance_x,omitempty"`
	DistanceY float64         `json:"distance_y,omitempty"`
	Angle     float64         `json:"angle,omitempty"`
	Scale     float64         `json:"scale,omitempty"`
	Rotation  float64         `json:"rotation,omitempty"`
	Touches   []gesture.Point `json:"touches"`
}

// NewMessage converts a dispatched event to its wire form.
func NewMessage(ev gesture.Event) Message {
	touches := ev.Touches
	if touches == nil {
		touches = []gesture.Point{}
	}
	return Message{
		Type:      ev.Type.String(),
		Gesture:   ev.Gesture.String(),
		SessionID: ev.SessionID.String(),
		TimeMS:    ev.Time.UnixMilli(),
		X:         ev.Position.X,
		Y:         ev.Position.Y,
		Direction: ev.Direction.String(),
		Distance:  ev.Distance,
		DistanceX: ev.DistanceX,
		DistanceY: ev.DistanceY,
		Angle:     ev.Angle,
		Scale:     ev.Scale,
		Rotation:  ev.Rotation,
		Touches:   touches,
	}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Broadcaster is both an http.Handler accepting WebSocket clients and a
// gesture.EventSink fanning every event out to them. A client that falls
// behind loses messages rather than stalling the recognizer.
type Broadcaster struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// NewBroadcaster creates a broadcaster that accepts connections from any
// origin.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow local connections
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.clients[c] = struct{}{}
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.writeLoop(c)
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.remove(c)
	<-done
}

func (b *Broadcaster) writeLoop(c *client) {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("websocket write error: %v", err)
			c.conn.Close()
			// Drain so remove can proceed; the read loop exits on the
			// closed connection.
			for range c.send {
			}
			return
		}
	}
}

func (b *Broadcaster) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
}

// EmitEvent implements gesture.EventSink.
func (b *Broadcaster) EmitEvent(ev gesture.Event) {
	msg, err := json.Marshal(NewMessage(ev))
	if err != nil {
		log.Printf("stream: encoding %s event: %v", ev.Type, err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for c := range b.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Clients returns the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close disconnects every client and refuses new ones.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for c := range b.clients {
		delete(b.clients, c)
		close(c.send)
		c.conn.Close()
	}
}
