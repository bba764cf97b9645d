package session

import (
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/frame"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/registry"
	"github.com/ernie/valkyrie-client/internal/wire"
)

// dialTimeout matches the 1-second connect timeout recovered from the
// original client (network/mod.rs: TcpStream::connect_timeout).
const dialTimeout = 1 * time.Second

// pollReadDeadline is the non-blocking read budget per poll turn; reads
// that would block past this are treated as "no bytes available now"
// rather than suspending the whole orchestrator.
const pollReadDeadline = 10 * time.Millisecond

// connection wraps one of the three sockets with its frame reader,
// handler table, and keep-alive timer. Outbound sends are serialized by
// the caller holding the orchestrator's single-owner discipline; this
// type does no locking of its own.
type connection struct {
	kind          packets.Connection
	correlationID string

	conn  net.Conn
	table *registry.Table

	frames *frame.Reader
	state  *registry.HandlerState

	version wire.PacketVersion

	keepAliveInterval time.Duration
	lastKeepAlive     time.Time
}

func newConnection(kind packets.Connection, table *registry.Table, version wire.PacketVersion, keepAlive time.Duration) *connection {
	return &connection{
		kind:              kind,
		correlationID:     uuid.NewString()[:8],
		table:             table,
		frames:            frame.NewReader(table),
		state:             &registry.HandlerState{},
		version:           version,
		keepAliveInterval: keepAlive,
	}
}

func (c *connection) connect(address string) error {
	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if err != nil {
		return fmt.Errorf("[%s %s] dial %s: %w", c.kind, c.correlationID, address, err)
	}
	c.conn = conn
	c.lastKeepAlive = time.Now()
	log.Printf("[%s %s] connected to %s", c.kind, c.correlationID, address)
	return nil
}

func (c *connection) connected() bool {
	return c.conn != nil
}

func (c *connection) close() {
	if c.conn == nil {
		return
	}
	log.Printf("[%s %s] closing connection", c.kind, c.correlationID)
	c.conn.Close()
	c.conn = nil
}

// send writes a fully-framed packet (header + payload, length patched
// for variable-size packets). Sends are not concurrent with each other
// on the same connection by construction.
func (c *connection) send(header packets.Header, fixed bool, encode func(w *wire.Writer)) error {
	w := wire.NewWriter()
	w.Header(uint16(header))
	var lenOff int
	if !fixed {
		lenOff = w.ReserveLength()
	}
	encode(w)
	if !fixed {
		w.PatchLength(lenOff)
	}
	if _, err := c.conn.Write(w.Bytes()); err != nil {
		return fmt.Errorf("[%s %s] write 0x%04x: %w", c.kind, c.correlationID, header, err)
	}
	return nil
}

// poll does one non-blocking read and dispatches every complete frame
// currently available, returning the events produced. A socket-level
// read error other than a timeout is returned so the caller can drop
// the connection and surface a disconnect event.
func (c *connection) poll() ([]events.Event, error) {
	if c.conn == nil {
		return nil, nil
	}
	c.conn.SetReadDeadline(time.Now().Add(pollReadDeadline))
	buf := make([]byte, 4096)
	n, err := c.conn.Read(buf)
	if err != nil {
		if isTimeout(err) {
			return c.drainFrames()
		}
		if err == io.EOF {
			return nil, err
		}
		return nil, err
	}
	c.frames.Feed(buf[:n])
	return c.drainFrames()
}

func (c *connection) drainFrames() ([]events.Event, error) {
	var out []events.Event
	for {
		f, ok, err := c.frames.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		r := wire.NewReader(f.Payload)
		r.Version = c.version
		evs, err := c.table.Dispatch(f.Header, r, c.state)
		if err != nil {
			return out, err
		}
		out = append(out, evs...)
	}
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	t, ok := err.(timeouter)
	return ok && t.Timeout()
}
