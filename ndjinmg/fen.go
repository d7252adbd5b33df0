package ndjinmg

import (
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a new Position. Piece placement and side
// to move are required; castling, en passant, halfmove and fullmove default to
// "-", "-", 0 and 1 when absent. Any malformed field yields a *ParseError and
// no Position.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, &ParseError{Field: "record", Value: fen, Reason: "need at least placement and side to move"}
	}
	if len(fields) > 6 {
		return nil, &ParseError{Field: "record", Value: fen, Reason: "too many fields"}
	}

	pos := NewPosition()

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, &ParseError{Field: "placement", Value: fields[0], Reason: "need 8 ranks"}
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return nil, &ParseError{Field: "placement", Value: rankStr, Reason: "rank has more than 8 files"}
				}
				continue
			}
			pc := pieceFromChar(ch)
			if pc == NoPiece {
				return nil, &ParseError{Field: "placement", Value: string(ch), Reason: "unrecognized piece character"}
			}
			if file >= 8 {
				return nil, &ParseError{Field: "placement", Value: rankStr, Reason: "rank has more than 8 files"}
			}
			pos.bitboards[pc] |= 1 << uint(MakeSquare(file, rank))
			file++
		}
		if file != 8 {
			return nil, &ParseError{Field: "placement", Value: rankStr, Reason: "rank does not cover 8 files"}
		}
	}
	pos.recomputeOccupancy()

	// 2. Side to move
	switch fields[1] {
	case "w":
		pos.side = White
	case "b":
		pos.side = Black
	default:
		return nil, &ParseError{Field: "side", Value: fields[1], Reason: "must be 'w' or 'b'"}
	}

	// 3. Castling rights
	if len(fields) > 2 && fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			var bit CastlingRights
			switch fields[2][j] {
			case 'K':
				bit = CastleWhiteKing
			case 'Q':
				bit = CastleWhiteQueen
			case 'k':
				bit = CastleBlackKing
			case 'q':
				bit = CastleBlackQueen
			default:
				return nil, &ParseError{Field: "castling", Value: fields[2], Reason: "unrecognized castling character"}
			}
			if pos.castling&bit != 0 {
				return nil, &ParseError{Field: "castling", Value: fields[2], Reason: "repeated castling character"}
			}
			pos.castling |= bit
		}
	}

	// 4. En passant target square
	if len(fields) > 3 && fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, &ParseError{Field: "en passant", Value: fields[3], Reason: "not a square"}
		}
		if r := sq.Rank(); r != 2 && r != 5 {
			return nil, &ParseError{Field: "en passant", Value: fields[3], Reason: "must be on rank 3 or 6"}
		}
		pos.enPassant = sq
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, &ParseError{Field: "halfmove", Value: fields[4], Reason: "not a non-negative number"}
		}
		pos.halfmove = n
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, &ParseError{Field: "fullmove", Value: fields[5], Reason: "not a positive number"}
		}
		pos.fullmove = n
	}

	pos.updateCheckStatus()
	return pos, nil
}

// MustParseFEN is ParseFEN for compile-time constants; it panics on error.
func MustParseFEN(fen string) *Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// FEN serializes the position in standard six-field form.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc, ok := p.PieceAt(MakeSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))
	return sb.String()
}
