package packets

import "github.com/ernie/valkyrie-client/internal/wire"

// Login-stage packet headers.
const (
	HeaderLoginRequest        Header = 0x0064
	HeaderLoginServerSuccess  Header = 0x0069
	HeaderLoginServerFailure  Header = 0x0081
	HeaderLoginKeepAlive      Header = 0x0200
)

// CharacterServerEntry is one entry in the character-server list a
// successful login returns.
type CharacterServerEntry struct {
	Address     [4]uint8
	Port        uint16
	Name        string
	UserCount   uint16
}

// LoginServerLoginSuccessPacket is the variable-size success reply to a
// login request: credentials plus a repeat-until-end list of character
// servers.
type LoginServerLoginSuccessPacket struct {
	AccountID        uint32
	LoginID1         uint32
	LoginID2         uint32
	Sex              Sex
	AuthToken        [17]byte
	CharacterServers []CharacterServerEntry
}

const characterServerEntrySize = 4 + 2 + 20 + 2 + 2 + 2 // addr + port + name + users + state + padding

// DecodeLoginServerLoginSuccessPacket implements decode_payload for the
// variable-size login success reply. The packet's length field has
// already been validated by the frame reader; the remainder-until-end
// repetition is bounded by Reader.Remaining().
func DecodeLoginServerLoginSuccessPacket(r *wire.Reader) (any, error) {
	accountID, err := r.U32()
	if err != nil {
		return nil, err
	}
	loginID1, err := r.U32()
	if err != nil {
		return nil, err
	}
	loginID2, err := r.U32()
	if err != nil {
		return nil, err
	}
	sex, err := DecodeSex(r)
	if err != nil {
		return nil, err
	}
	tokenBytes, err := r.Bytes(17)
	if err != nil {
		return nil, err
	}
	pkt := &LoginServerLoginSuccessPacket{
		AccountID: accountID,
		LoginID1:  loginID1,
		LoginID2:  loginID2,
		Sex:       sex,
	}
	copy(pkt.AuthToken[:], tokenBytes)

	for r.Remaining() >= characterServerEntrySize {
		entry, err := decodeCharacterServerEntry(r)
		if err != nil {
			return nil, err
		}
		pkt.CharacterServers = append(pkt.CharacterServers, entry)
	}
	return pkt, nil
}

func decodeCharacterServerEntry(r *wire.Reader) (CharacterServerEntry, error) {
	addrBytes, err := r.Bytes(4)
	if err != nil {
		return CharacterServerEntry{}, err
	}
	port, err := r.U16()
	if err != nil {
		return CharacterServerEntry{}, err
	}
	name, err := r.FixedString(20)
	if err != nil {
		return CharacterServerEntry{}, err
	}
	userCount, err := r.U16()
	if err != nil {
		return CharacterServerEntry{}, err
	}
	if err := r.Skip(4); err != nil { // state(2) + padding(2)
		return CharacterServerEntry{}, err
	}
	var entry CharacterServerEntry
	copy(entry.Address[:], addrBytes)
	entry.Port = port
	entry.Name = name
	entry.UserCount = userCount
	return entry, nil
}

// LoginRequestPacket is the fixed-size request a client sends to start
// authentication.
type LoginRequestPacket struct {
	Username string
	Password string
}

func DecodeLoginRequestPacket(r *wire.Reader) (any, error) {
	username, err := r.FixedString(24)
	if err != nil {
		return nil, err
	}
	password, err := r.FixedString(24)
	if err != nil {
		return nil, err
	}
	return &LoginRequestPacket{Username: username, Password: password}, nil
}

func EncodeLoginRequestPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*LoginRequestPacket)
	start := w.Len()
	w.FixedString(pkt.Username, 24)
	w.FixedString(pkt.Password, 24)
	return w.Len() - start, nil
}

// EncodeLoginServerLoginSuccessPacket implements encode_payload.
func EncodeLoginServerLoginSuccessPacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*LoginServerLoginSuccessPacket)
	start := w.Len()
	w.U32(pkt.AccountID)
	w.U32(pkt.LoginID1)
	w.U32(pkt.LoginID2)
	w.U8(uint8(pkt.Sex))
	w.RawBytes(pkt.AuthToken[:17])
	for _, entry := range pkt.CharacterServers {
		w.RawBytes(entry.Address[:4])
		w.U16(entry.Port)
		w.FixedString(entry.Name, 20)
		w.U16(entry.UserCount)
		w.U16(0)
		w.U16(0)
	}
	return w.Len() - start, nil
}

// LoginKeepAlivePacket carries only the account id; it exists purely to prevent the
// login server from timing out the connection the client needs to stay authenticated.
type LoginKeepAlivePacket struct{ AccountID uint32 }

func DecodeLoginKeepAlivePacket(r *wire.Reader) (any, error) {
	accountID, err := r.U32()
	if err != nil {
		return nil, err
	}
	return &LoginKeepAlivePacket{AccountID: accountID}, nil
}

func EncodeLoginKeepAlivePacket(v any, w *wire.Writer) (int, error) {
	pkt := v.(*LoginKeepAlivePacket)
	start := w.Len()
	w.U32(pkt.AccountID)
	return w.Len() - start, nil
}
