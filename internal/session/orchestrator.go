package session

import (
	"fmt"
	"log"
	"time"

	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/registry"
	"github.com/ernie/valkyrie-client/internal/versions"
	"github.com/ernie/valkyrie-client/internal/wire"
)

// Keep-alive intervals recovered from the original client
// (network/mod.rs: NetworkTimer::new(Duration::from_secs(58|10|4))).
const (
	loginKeepAlive     = 58 * time.Second
	characterKeepAlive = 10 * time.Second
	mapKeepAlive       = 4 * time.Second
)

// logoutAckTimeout has no value in the original source; 5s is this client's own
// suggested minimum.
const logoutAckTimeout = 5 * time.Second

// credentials accumulates the hand-off data each stage yields, consumed
// strictly in order by the next stage.
type credentials struct {
	accountID uint32
	loginID1  uint32
	loginID2  uint32
	sex       packets.Sex

	characterServers []packets.CharacterServerEntry

	characterID   uint32
	mapServerAddr [4]uint8
	mapServerPort uint16
}

// Orchestrator is the single-owner state machine driving all three
// connections. All three sockets are polled cooperatively from one call
// to Poll; there is no internal locking because nothing but the owner's
// goroutine may call its methods.
type Orchestrator struct {
	state State
	bundle *registry.Bundle

	login     *connection
	character *connection
	mapConn   *connection

	creds credentials

	awaitingLogoutAck bool
	logoutDeadline    time.Time
}

// New builds an orchestrator for the named packet-set version. All three
// connections derive from the same bundle.
func New(versionTag versions.Tag) (*Orchestrator, error) {
	bundle, err := versions.BundleFor(versionTag)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		state:     StateDisconnected,
		bundle:    bundle,
		login:     newConnection(packets.ConnLogin, bundle.Login, bundle.Version, loginKeepAlive),
		character: newConnection(packets.ConnCharacter, bundle.Character, bundle.Version, characterKeepAlive),
		mapConn:   newConnection(packets.ConnMap, bundle.Map, bundle.Version, mapKeepAlive),
	}, nil
}

func (o *Orchestrator) State() State { return o.state }

// LogIn connects to the login server and sends the login request. The
// account id is not yet known until the reply arrives.
func (o *Orchestrator) LogIn(address string, username, password string) error {
	if o.state != StateDisconnected {
		return fmt.Errorf("LogIn called in state %s, want Disconnected", o.state)
	}
	if err := o.login.connect(address); err != nil {
		return err
	}
	o.state = StateLoginConnecting
	return o.login.send(packets.HeaderLoginRequest, true, func(w *wire.Writer) {
		w.FixedString(username, 24)
		w.FixedString(password, 24)
	})
}

// SelectServer advances from CharSelect-pending LoginServerConnected
// handling to connecting the character server named by idx into the
// login reply's character-server list.
func (o *Orchestrator) SelectServer(idx int) error {
	if o.state != StateLoginConnecting {
		return fmt.Errorf("SelectServer called in state %s, want LoginConnecting", o.state)
	}
	if idx < 0 || idx >= len(o.creds.characterServers) {
		return fmt.Errorf("character server index %d out of range (%d servers)", idx, len(o.creds.characterServers))
	}
	entry := o.creds.characterServers[idx]
	address := fmt.Sprintf("%d.%d.%d.%d:%d", entry.Address[0], entry.Address[1], entry.Address[2], entry.Address[3], entry.Port)
	if err := o.character.connect(address); err != nil {
		return err
	}
	o.state = StateCharSelect
	return nil
}

// SelectCharacter requests entering the world with the roster slot at
// idx; MapConnecting begins once the character server's success reply
// hands forward the map-server endpoint.
func (o *Orchestrator) SelectCharacter(slot uint8) error {
	if o.state != StateCharSelect {
		return fmt.Errorf("SelectCharacter called in state %s, want CharSelect", o.state)
	}
	return o.character.send(packets.HeaderSelectCharacter, true, func(w *wire.Writer) {
		w.U8(slot)
	})
}

// connectMapServer is invoked once CharacterSelected has populated
// o.creds.mapServerAddr/Port (see handleEvent).
func (o *Orchestrator) connectMapServer() error {
	address := fmt.Sprintf("%d.%d.%d.%d:%d",
		o.creds.mapServerAddr[0], o.creds.mapServerAddr[1], o.creds.mapServerAddr[2], o.creds.mapServerAddr[3],
		o.creds.mapServerPort)
	if err := o.mapConn.connect(address); err != nil {
		return err
	}
	o.state = StateMapConnecting
	return o.mapConn.send(packets.HeaderMapLoginSuccess, true, func(w *wire.Writer) {
		w.U32(o.creds.characterID)
	})
}

// Logout is the two-phase logout action: send Restart or
// Quit, then wait for the typed acknowledgement. The ack timeout (not
// present in the original source) is enforced in Poll via
// logoutDeadline.
func (o *Orchestrator) Logout(quit bool) error {
	if o.state != StatePlaying {
		return fmt.Errorf("Logout called in state %s, want Playing", o.state)
	}
	var header packets.Header
	if quit {
		header = packets.HeaderQuit
	} else {
		header = packets.HeaderRestart
	}
	if err := o.mapConn.send(header, true, func(w *wire.Writer) {}); err != nil {
		return err
	}
	o.awaitingLogoutAck = true
	o.logoutDeadline = time.Now().Add(logoutAckTimeout)
	return nil
}

// RequestPlayerMove sends a movement request on the map connection.
func (o *Orchestrator) RequestPlayerMove(pos packets.Position) error {
	if o.state != StatePlaying {
		return fmt.Errorf("RequestPlayerMove called in state %s, want Playing", o.state)
	}
	return o.mapConn.send(packets.HeaderChangeMap, true, func(w *wire.Writer) {
		w.U16(pos.X)
		w.U16(pos.Y)
	})
}

// SendChat sends a chat message on the map connection.
func (o *Orchestrator) SendChat(text string) error {
	if o.state != StatePlaying {
		return fmt.Errorf("SendChat called in state %s, want Playing", o.state)
	}
	return o.mapConn.send(packets.HeaderServerMessage, false, func(w *wire.Writer) {
		w.RemainingString(text)
	})
}

// Poll drives all three connections cooperatively for one turn: it reads
// whatever bytes are currently available on each active socket,
// dispatches complete frames, advances the state machine from
// status-bearing events, fires due keep-alives, and enforces the logout
// ack deadline. Events from different connections are ordered only by
// poll turn, never interleaved within one connection's batch.
func (o *Orchestrator) Poll(now time.Time) ([]events.Event, error) {
	var out []events.Event

	for _, c := range []*connection{o.login, o.character, o.mapConn} {
		if !c.connected() {
			continue
		}
		evs, err := c.poll()
		if err != nil {
			out = append(out, o.dropConnection(c, err))
			continue
		}
		for _, ev := range evs {
			out = append(out, ev)
			o.handleEvent(c, ev)
		}
		if err := o.fireKeepAliveIfDue(c, now); err != nil {
			out = append(out, o.dropConnection(c, err))
		}
	}

	if o.awaitingLogoutAck && now.After(o.logoutDeadline) {
		o.awaitingLogoutAck = false
		out = append(out, &events.Disconnect{
			Connection: packets.ConnMap,
			Reason:     events.DisconnectLogoutTimeout,
			Detail:     "no logout acknowledgement within 5s",
		})
	}

	return out, nil
}

// dropConnection closes c and returns the disconnect event; map-server
// disconnects while Playing retain the login session so the player can
// pick another character.
func (o *Orchestrator) dropConnection(c *connection, cause error) events.Event {
	log.Printf("[%s %s] connection error: %v", c.kind, c.correlationID, cause)
	c.close()

	switch c.kind {
	case packets.ConnMap:
		if o.state == StatePlaying {
			o.character.close()
			o.state = StateCharSelect
			return &events.LoggedOut{}
		}
	case packets.ConnCharacter, packets.ConnLogin:
		o.state = StateDisconnected
	}
	return &events.Disconnect{Connection: c.kind, Reason: events.DisconnectIOError, Detail: cause.Error()}
}

func (o *Orchestrator) fireKeepAliveIfDue(c *connection, now time.Time) error {
	if now.Sub(c.lastKeepAlive) < c.keepAliveInterval {
		return nil
	}
	c.lastKeepAlive = now
	switch c.kind {
	case packets.ConnLogin:
		return c.send(packets.HeaderLoginKeepAlive, true, func(w *wire.Writer) { w.U32(o.creds.accountID) })
	case packets.ConnCharacter:
		return c.send(packets.HeaderCharacterKeepAlive, true, func(w *wire.Writer) {})
	case packets.ConnMap:
		return c.send(packets.HeaderMapKeepAlive, true, func(w *wire.Writer) {})
	}
	return nil
}

// handleEvent lets status-bearing events advance the state machine and
// carry credentials forward to the next stage.
func (o *Orchestrator) handleEvent(c *connection, ev events.Event) {
	switch e := ev.(type) {
	case *events.LoginServerConnected:
		o.creds.accountID = e.LoginData.AccountID
		o.creds.loginID1 = e.LoginData.LoginID1
		o.creds.loginID2 = e.LoginData.LoginID2
		o.creds.sex = e.LoginData.Sex
		o.creds.characterServers = e.CharacterServers
	case *events.CharacterSelected:
		o.creds.characterID = e.CharacterID
		o.creds.mapServerAddr = e.MapServerAddr
		o.creds.mapServerPort = e.MapServerPort
		if err := o.connectMapServer(); err != nil {
			log.Printf("connect map server: %v", err)
		}
	case *events.UpdateClientTick:
		if o.state == StateMapConnecting {
			o.state = StatePlaying
		}
	case *events.LoggedOut:
		o.awaitingLogoutAck = false
		o.mapConn.close()
		o.state = StateCharSelect
	}
}

