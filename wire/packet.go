// Package wire encodes moves for transport between two peers.
//
// A MovePacket is 12 bytes, little-endian:
//
//	bytes 0-3   move      ndjinmg.EncodedMove
//	bytes 4-7   previous  the move this one answers
//	bytes 8-9   kind      one of the Kind* values
//	bytes 10-11 counter   full-move counter of the sender
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	mg "ndjin/ndjinmg"
)

// PacketSize is the encoded length of a MovePacket.
const PacketSize = 12

// Kind tags what a packet carries.
type Kind uint16

const (
	KindCurrent  Kind = 0xC247 // a fresh move
	KindPrevious Kind = 0x9234 // resend of the last move
	KindProduce  Kind = 0x920D // ask the peer to produce a move
	KindBadMove  Kind = 0xDEAD // the peer rejected Move
)

func (k Kind) String() string {
	switch k {
	case KindCurrent:
		return "current"
	case KindPrevious:
		return "previous"
	case KindProduce:
		return "produce"
	case KindBadMove:
		return "bad-move"
	}
	return fmt.Sprintf("kind(%#04x)", uint16(k))
}

// Known reports whether k is one of the defined kinds.
func (k Kind) Known() bool {
	switch k {
	case KindCurrent, KindPrevious, KindProduce, KindBadMove:
		return true
	}
	return false
}

// Decoding errors returned by UnmarshalBinary.
var (
	ErrShortPacket = errors.New("wire: short packet")
	ErrUnknownKind = errors.New("wire: unknown packet kind")
)

// MovePacket is one move message exchanged between peers.
type MovePacket struct {
	Move     mg.EncodedMove
	Previous mg.EncodedMove
	Kind     Kind
	Counter  uint16
}

// Current builds the packet announcing m in reply to prev.
func Current(m, prev mg.EncodedMove, counter uint16) MovePacket {
	return MovePacket{Move: m, Previous: prev, Kind: KindCurrent, Counter: counter}
}

// Reject answers a packet whose move could not be applied. The rejected move
// is echoed back so the sender can retry.
func Reject(p MovePacket) MovePacket {
	return MovePacket{Move: p.Move, Previous: p.Previous, Kind: KindBadMove, Counter: p.Counter}
}

// AppendBinary appends the 12-byte encoding of p to b.
func (p MovePacket) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(p.Move))
	b = binary.LittleEndian.AppendUint32(b, uint32(p.Previous))
	b = binary.LittleEndian.AppendUint16(b, uint16(p.Kind))
	return binary.LittleEndian.AppendUint16(b, p.Counter)
}

func (p MovePacket) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, PacketSize)), nil
}

// UnmarshalBinary decodes exactly PacketSize bytes. Unknown kinds are
// rejected; the move fields are taken as-is and must be validated by
// applying them to a position.
func (p *MovePacket) UnmarshalBinary(b []byte) error {
	if len(b) != PacketSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortPacket, len(b), PacketSize)
	}
	k := Kind(binary.LittleEndian.Uint16(b[8:]))
	if !k.Known() {
		return fmt.Errorf("%w: %#04x", ErrUnknownKind, uint16(k))
	}
	p.Move = mg.EncodedMove(binary.LittleEndian.Uint32(b[0:]))
	p.Previous = mg.EncodedMove(binary.LittleEndian.Uint32(b[4:]))
	p.Kind = k
	p.Counter = binary.LittleEndian.Uint16(b[10:])
	return nil
}

func (p MovePacket) String() string {
	return fmt.Sprintf("%s %v (prev %v) #%d", p.Kind, p.Move, p.Previous, p.Counter)
}
