package ndjinmg

import "strings"

// EncodedMove packs a move into 24 significant bits of a uint32. The layout
// is fixed because moves cross the wire in this form.
type EncodedMove uint32

// Bitfield layout within EncodedMove (from LSB to MSB).
const (
	moveSourceMask     = 0x00003F // 6 bits
	moveTargetMask     = 0x000FC0 // 6 bits
	movePieceMask      = 0x00F000 // 4 bits
	movePromotedMask   = 0x0F0000 // 4 bits
	moveCaptureFlag    = 0x100000
	moveDoublePushFlag = 0x200000
	moveEnPassantFlag  = 0x400000
	moveCastleFlag     = 0x800000

	moveTargetShift   = 6
	movePieceShift    = 12
	movePromotedShift = 16
)

// NoMove is the zero move; it is never produced by the generator.
const NoMove EncodedMove = 0

// EncodeMove packs the fields of a move. Each field is masked to its width;
// no further validation is done. promoted equals piece for non-promotions.
func EncodeMove(source, target Square, piece, promoted Piece, capture, doublePush, enPassant, castle bool) EncodedMove {
	m := uint32(source)&0x3F |
		(uint32(target)&0x3F)<<moveTargetShift |
		(uint32(piece)&0xF)<<movePieceShift |
		(uint32(promoted)&0xF)<<movePromotedShift
	if capture {
		m |= moveCaptureFlag
	}
	if doublePush {
		m |= moveDoublePushFlag
	}
	if enPassant {
		m |= moveEnPassantFlag
	}
	if castle {
		m |= moveCastleFlag
	}
	return EncodedMove(m)
}

// Decode unpacks the square and piece fields. Flags are read with the predicates.
func (m EncodedMove) Decode() (source, target Square, piece, promoted Piece) {
	return m.Source(), m.Target(), m.Piece(), m.Promoted()
}

// Source returns the origin square.
func (m EncodedMove) Source() Square { return Square(m & moveSourceMask) }

// Target returns the destination square.
func (m EncodedMove) Target() Square { return Square((m & moveTargetMask) >> moveTargetShift) }

// Piece returns the moving piece.
func (m EncodedMove) Piece() Piece { return Piece((m & movePieceMask) >> movePieceShift) }

// Promoted returns the piece standing on the target after the move.
func (m EncodedMove) Promoted() Piece { return Piece((m & movePromotedMask) >> movePromotedShift) }

func (m EncodedMove) IsCapture() bool    { return m&moveCaptureFlag != 0 }
func (m EncodedMove) IsDoublePush() bool { return m&moveDoublePushFlag != 0 }
func (m EncodedMove) IsEnPassant() bool  { return m&moveEnPassantFlag != 0 }
func (m EncodedMove) IsCastle() bool     { return m&moveCastleFlag != 0 }

// IsPromotion reports whether the moving piece changes kind on arrival.
func (m EncodedMove) IsPromotion() bool { return m.Promoted() != m.Piece() }

// String returns coordinate notation, e.g. "e2e4" or "e7e8q".
func (m EncodedMove) String() string {
	src, dst := m.Source(), m.Target()
	buf := []byte{
		'a' + byte(src.File()), '1' + byte(src.Rank()),
		'a' + byte(dst.File()), '1' + byte(dst.Rank()),
	}
	if m.IsPromotion() {
		buf = append(buf, strings.ToLower(string(m.Promoted().Char()))[0])
	}
	return string(buf)
}

// ParseMove resolves coordinate text ("e2e4", "e7e8q") against the
// pseudo-legal moves of pos. The returned move may still be rejected by
// ApplyMove if it leaves the king in check.
func ParseMove(pos *Position, text string) (EncodedMove, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) != 4 && len(text) != 5 {
		return NoMove, &MoveError{Text: text, Err: ErrUnknownMove}
	}
	src, err := SquareFromString(text[0:2])
	if err != nil {
		return NoMove, &MoveError{Text: text, Err: ErrUnknownMove}
	}
	dst, err := SquareFromString(text[2:4])
	if err != nil {
		return NoMove, &MoveError{Text: text, Err: ErrUnknownMove}
	}
	promo := Kind(0xFF)
	if len(text) == 5 {
		switch text[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, &MoveError{Text: text, Err: ErrUnknownMove}
		}
	}

	var list MoveList
	pos.GenerateMovesInto(&list)
	for _, m := range list.FromSquare(src) {
		if m.Target() != dst {
			continue
		}
		if m.IsPromotion() != (len(text) == 5) {
			continue
		}
		if m.IsPromotion() && m.Promoted().Kind() != promo {
			continue
		}
		return m, nil
	}
	return NoMove, &MoveError{Text: text, Err: ErrUnknownMove}
}
