package ndjinmg

// Color identifies the side owning a piece or having the move.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Both indexes the combined occupancy bitboard.
const Both = 2

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Kind is a colorless piece type.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is a Color/Kind pair packed as an index into Position.bitboards.
// White pieces occupy 0..5 and black pieces 6..11, each in P,N,B,R,Q,K order.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing

	// NoPiece marks an empty square or an absent piece.
	NoPiece
)

// MakePiece combines a side and a kind into a concrete Piece.
func MakePiece(c Color, k Kind) Piece {
	if c > Black || k > King {
		return NoPiece
	}
	return Piece(uint8(c)*6 + uint8(k))
}

// Valid reports whether p names one of the twelve real pieces.
func (p Piece) Valid() bool { return p < NoPiece }

// Color returns the owner of the piece. Only meaningful when Valid.
func (p Piece) Color() Color { return Color(p / 6) }

// Kind returns the colorless type of the piece. Only meaningful when Valid.
func (p Piece) Kind() Kind { return Kind(p % 6) }

const pieceChars = "PNBRQKpnbrqk"

// Char returns the FEN letter for the piece, or '.' for NoPiece.
func (p Piece) Char() byte {
	if !p.Valid() {
		return '.'
	}
	return pieceChars[p]
}

func (p Piece) String() string { return string(p.Char()) }

// pieceFromChar converts a FEN letter to a Piece, NoPiece if unrecognized.
func pieceFromChar(ch byte) Piece {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == ch {
			return Piece(i)
		}
	}
	return NoPiece
}

// CastlingRights is a 4-bit set of remaining castling options.
type CastlingRights uint8

const (
	CastleWhiteKing CastlingRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen

	CastleAll = CastleWhiteKing | CastleWhiteQueen | CastleBlackKing | CastleBlackQueen
)

func (cr CastlingRights) String() string {
	if cr&CastleAll == 0 {
		return "-"
	}
	s := make([]byte, 0, 4)
	if cr&CastleWhiteKing != 0 {
		s = append(s, 'K')
	}
	if cr&CastleWhiteQueen != 0 {
		s = append(s, 'Q')
	}
	if cr&CastleBlackKing != 0 {
		s = append(s, 'k')
	}
	if cr&CastleBlackQueen != 0 {
		s = append(s, 'q')
	}
	return string(s)
}

// CheckStatus records which side, if any, is currently in check.
type CheckStatus uint8

const (
	CheckNone CheckStatus = iota
	WhiteInCheck
	BlackInCheck
)

func (cs CheckStatus) String() string {
	switch cs {
	case WhiteInCheck:
		return "white in check"
	case BlackInCheck:
		return "black in check"
	default:
		return "none"
	}
}

// Square represents a board position (0-63), a1=0 through h8=63.
type Square int

// NoSquare is the sentinel for "no square", e.g. an absent en passant target.
const NoSquare Square = 64

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// MakeSquare builds a square from zero-based file and rank.
func MakeSquare(file, rank int) Square { return Square(rank*8 + file) }

// File returns the zero-based file (a=0).
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns the zero-based rank (rank 1 = 0).
func (sq Square) Rank() int { return int(sq) / 8 }

// Valid reports whether sq lies on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// SquareFromString parses algebraic coordinates such as "e4".
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, &SquareError{Text: s}
	}
	return MakeSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// SquareFromPixel maps a pixel coordinate on a board drawn with white at the
// bottom, boardSize pixels wide, to the square under it.
func SquareFromPixel(x, y, boardSize int) (Square, bool) {
	if boardSize < 8 || x < 0 || y < 0 || x >= boardSize || y >= boardSize {
		return NoSquare, false
	}
	cell := boardSize / 8
	file := x / cell
	rank := 7 - y/cell
	if file > 7 || rank < 0 {
		return NoSquare, false
	}
	return MakeSquare(file, rank), true
}
