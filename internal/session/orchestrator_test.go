package session

import (
	"net"
	"testing"
	"time"

	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/versions"
	"github.com/ernie/valkyrie-client/internal/wire"
)

// attachLoginPipe wires o.login directly to one end of an in-memory pipe,
// bypassing the real net.DialTimeout so tests can drive bytes without a
// listening socket.
func attachLoginPipe(t *testing.T, o *Orchestrator) net.Conn {
	t.Helper()
	client, server := net.Pipe()
	o.login.conn = client
	o.login.lastKeepAlive = time.Now()
	o.state = StateLoginConnecting
	t.Cleanup(func() { server.Close() })
	return server
}

func TestLoginSuccessAdvancesCredentialsScenarioS1(t *testing.T) {
	o, err := newTestOrchestrator(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server := attachLoginPipe(t, o)

	w := wire.NewWriter()
	w.Header(uint16(packets.HeaderLoginServerSuccess))
	lenOff := w.ReserveLength()
	packets.EncodeLoginServerLoginSuccessPacket(&packets.LoginServerLoginSuccessPacket{
		AccountID: 12345,
		Sex:       packets.SexMale,
		CharacterServers: []packets.CharacterServerEntry{
			{Address: [4]uint8{127, 0, 0, 1}, Port: 6121, Name: "Test"},
		},
	}, w)
	w.PatchLength(lenOff)
	go server.Write(w.Bytes())

	var got []events.Event
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		evs, err := o.Poll(time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, evs...)
		if len(got) > 0 {
			break
		}
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one event, got %d: %+v", len(got), got)
	}
	ev, ok := got[0].(*events.LoginServerConnected)
	if !ok {
		t.Fatalf("expected LoginServerConnected, got %T", got[0])
	}
	if ev.LoginData.AccountID != 12345 {
		t.Fatalf("got account id %d", ev.LoginData.AccountID)
	}
	if o.creds.accountID != 12345 || len(o.creds.characterServers) != 1 {
		t.Fatalf("orchestrator did not carry credentials forward: %+v", o.creds)
	}
}

func TestLogoutRequiresPlayingState(t *testing.T) {
	o, err := newTestOrchestrator(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.Logout(false); err == nil {
		t.Fatal("expected an error logging out while Disconnected")
	}
}

func TestLogoutAckTimeoutSurfacesDisconnect(t *testing.T) {
	o, err := newTestOrchestrator(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o.state = StatePlaying
	o.awaitingLogoutAck = true
	o.logoutDeadline = time.Now().Add(-time.Second) // already expired

	evs, err := o.Poll(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(evs))
	}
	dc, ok := evs[0].(*events.Disconnect)
	if !ok || dc.Reason != events.DisconnectLogoutTimeout {
		t.Fatalf("got %+v", evs[0])
	}
	if o.awaitingLogoutAck {
		t.Fatal("expected awaitingLogoutAck to clear after firing the timeout event")
	}
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, error) {
	t.Helper()
	return New(versions.Tag20220406)
}
