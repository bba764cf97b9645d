// Package events defines the closed-sum typed event taxonomy handlers
// produce. Events carry normalized, consumer-ready payloads; wire-specific
// oddities are flattened by the handler that produces them, never by the
// consumer.
package events

import "github.com/ernie/valkyrie-client/internal/packets"

// Event is implemented by every concrete event type below. The marker
// method exists only to close the sum over this package's types.
type Event interface {
	eventMarker()
}

type base struct{}

func (base) eventMarker() {}

// --- Login stage ---

type LoginData struct {
	AccountID uint32
	LoginID1  uint32
	LoginID2  uint32
	Sex       packets.Sex
}

type LoginServerConnected struct {
	base
	LoginData        LoginData
	CharacterServers []packets.CharacterServerEntry
}

type LoginFailed struct {
	base
	Reason string
}

// --- Character stage ---

type CharacterList struct {
	base
	Characters []packets.CharacterEntry
}

type CharacterSelected struct {
	base
	CharacterID   uint32
	MapName       string
	MapServerAddr [4]uint8
	MapServerPort uint16
}

// --- Map stage / gameplay ---

type UpdateClientTick struct {
	base
	ClientTick uint32
}

type ChangeMap struct {
	base
	MapName  string
	Position packets.Position
}

type AddEntity struct {
	base
	Snapshot packets.EntitySnapshot
}

type RemoveEntity struct {
	base
	EntityID uint32
}

type EntityMove struct {
	base
	EntityID    uint32
	Destination packets.Position
}

type PlayerMove struct {
	base
	Destination packets.Position
}

type ChatColor int

const (
	ChatColorServer ChatColor = iota
	ChatColorWhisper
	ChatColorParty
	ChatColorGuild
	ChatColorBattleground
)

type ChatMessage struct {
	base
	Text  string
	Color ChatColor
}

// OverheadMessage preserves the originating entity for player-overhead
// chat rather than folding it into ChatMessage, resolving the "// FIX:
// this should be a different event" gap noted against the source
//. Color mapping is deliberately left to the consuming UI.
type OverheadMessage struct {
	base
	EntityID uint32
	Text     string
}

type SetInventory struct {
	base
	Items []packets.Item
}

type InventoryItemAdded struct {
	base
	Item packets.Item
}

type UpdateEquippedPosition struct {
	base
	Index            uint16
	EquippedPosition uint32
}

type AddSkillUnit struct {
	base
	UnitObjectID uint32
	SourceID     uint32
	Position     packets.Position
	Kind         packets.UnitID
}

type RemoveSkillUnit struct {
	base
	UnitObjectID uint32
}

type DamageEffect struct {
	base
	TargetEntityID uint32
	Amount         uint32
}

type HealEffect struct {
	base
	TargetEntityID uint32
	Amount         uint32
}

type UpdateEntityHealth struct {
	base
	EntityID  uint32
	Health    uint32
	MaxHealth uint32
}

type UpdateStatus struct {
	base
	StatusID uint32
	Base     int16
	Bonus    int16
}

type ChangeJob struct {
	base
	EntityID uint32
	JobID    uint16
}

type SetPlayerPosition struct {
	base
	Position packets.Position
}

type OpenDialog struct {
	base
	EntityID uint32
	Text     string
}

type AddNextButton struct{ base }
type AddCloseButton struct{ base }
type AddChoiceButtons struct {
	base
	Choices []string
}

type AskBuyOrSell struct {
	base
	ShopEntityID uint32
}

type OpenShop struct {
	base
	ShopEntityID uint32
	Items        []packets.Item
}

type BuyingCompleted struct {
	base
	Result uint8
}

type SetFriendList struct {
	base
	Names []string
}

type FriendRequest struct {
	base
	Name string
}

type FriendRequestResult struct {
	base
	Accepted bool
	Name     string
}

type VisualEffect struct {
	base
	EffectPath string
	EntityID   uint32
}

type AddQuestEffect struct {
	base
	EntityID uint32
	EffectID uint32
}

type RemoveQuestEffect struct {
	base
	EntityID uint32
}

// DisconnectReason classifies why a connection dropped, surfaced by the
// session orchestrator the original protocol/§7.
type DisconnectReason int

const (
	DisconnectIOError DisconnectReason = iota
	DisconnectLoggedOut
	DisconnectLogoutTimeout
	DisconnectServerRejected
)

type Disconnect struct {
	base
	Connection packets.Connection
	Reason     DisconnectReason
	Detail     string
}

type LoggedOut struct{ base }

// UnknownPacketDiagnostic and UnknownVariantDiagnostic surface the
// recoverable decode-error cases as first-class diagnostic events, per
// the original protocol instruction to specify the source's debug-only behavior as
// a first-class diagnostic rather than a silent skip.
type UnknownPacketDiagnostic struct {
	base
	Header uint16
}

type UnknownVariantDiagnostic struct {
	base
	Enum  string
	Value uint32
}
