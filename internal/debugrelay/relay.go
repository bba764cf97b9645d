// Package debugrelay is the core's one approved side door for outside
// observers: an opt-in, read-only websocket server that mirrors the
// event stream (and periodic VFS/audio-cache stats) as zstd-compressed
// JSON. It never accepts commands — nothing it receives from a
// connection is read back into the engine.
package debugrelay

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"sync"
	"time"

	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/zstd"
)

// clientBufferSize bounds how many undelivered messages a slow client
// can accumulate before the relay starts dropping its messages rather
// than blocking the broadcaster.
const clientBufferSize = 64

// Relay broadcasts JSON payloads to every currently connected debug
// client over a websocket, compressing each message with zstd.
type Relay struct {
	upgrader websocket.Upgrader
	encoder  *zstd.Encoder

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New builds a relay. It does no network I/O until ListenAndServe is
// called.
func New() (*Relay, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("build zstd encoder: %w", err)
	}
	return &Relay{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// A local debug tool is not a cross-origin concern; any
			// origin may attach a read-only observer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		encoder: enc,
		clients: make(map[*client]struct{}),
	}, nil
}

// ListenAndServe starts the relay's HTTP server. Call it in its own
// goroutine; it blocks until the listener fails or the process exits.
func (r *Relay) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", r.handleWebsocket)
	return http.ListenAndServe(addr, mux)
}

func (r *Relay) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("debugrelay: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, clientBufferSize)}

	r.mu.Lock()
	r.clients[c] = struct{}{}
	r.mu.Unlock()

	go r.writePump(c)
	go r.discardReads(c) // read-only: drain and ignore anything a client sends
}

func (r *Relay) writePump(c *client) {
	defer func() {
		r.mu.Lock()
		delete(r.clients, c)
		r.mu.Unlock()
		c.conn.Close()
	}()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
	}
}

// discardReads exists only to process control frames (ping/close) and
// notice when the peer disconnects; any data frame content is discarded
// immediately, enforcing the relay's read-only contract.
func (r *Relay) discardReads(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			close(c.send)
			return
		}
	}
}

// Broadcast marshals v as JSON, compresses it, and fans it out to every
// connected client. A client whose send buffer is full has this message
// dropped for it rather than blocking the other clients.
func (r *Relay) Broadcast(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal debug relay payload: %w", err)
	}
	compressed := r.encoder.EncodeAll(raw, nil)

	r.mu.Lock()
	defer r.mu.Unlock()
	for c := range r.clients {
		select {
		case c.send <- compressed:
		default:
		}
	}
	return nil
}

// EventEnvelope wraps an event taxonomy value with a type tag and
// timestamp, the shape a debug client actually wants to decode.
type EventEnvelope struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// BroadcastEvent tags v with typeName and the current time before
// broadcasting it.
func (r *Relay) BroadcastEvent(typeName string, v any, now time.Time) error {
	return r.Broadcast(EventEnvelope{Type: typeName, Timestamp: now, Payload: v})
}

// BroadcastTypedEvent mirrors one C7 event to every connected debug
// client, tagging it with its concrete Go type name (e.g.
// "ChatMessage") so a client doesn't need to know the taxonomy ahead of
// time to render something useful.
func (r *Relay) BroadcastTypedEvent(ev events.Event, now time.Time) error {
	typeName := reflect.TypeOf(ev).Elem().Name()
	return r.BroadcastEvent(typeName, ev, now)
}

// ClientCount reports how many debug observers are currently attached,
// for logging.
func (r *Relay) ClientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
