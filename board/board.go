// Package board implements the bitboard position model: piece placement,
// legal move generation, move application with undo, incremental Zobrist
// hashing, FEN and SAN notation, and perft verification.
package board

import "math/bits"

// Color of a side. White moves first.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a piece kind without color.
type PieceType uint8

const (
	NoType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece encodes kind in the low three bits and color in bit 3.
type Piece uint8

const pieceColorBit Piece = 8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) | pieceColorBit
	BlackKnight Piece = Piece(Knight) | pieceColorBit
	BlackBishop Piece = Piece(Bishop) | pieceColorBit
	BlackRook   Piece = Piece(Rook) | pieceColorBit
	BlackQueen  Piece = Piece(Queen) | pieceColorBit
	BlackKing   Piece = Piece(King) | pieceColorBit
)

// MakePiece builds a colored piece from a kind.
func MakePiece(c Color, t PieceType) Piece {
	if t == NoType {
		return NoPiece
	}
	p := Piece(t)
	if c == Black {
		p |= pieceColorBit
	}
	return p
}

// Type returns the piece kind, NoType for NoPiece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// PieceColor returns the piece's side. Only meaningful for p != NoPiece.
func (p Piece) PieceColor() Color {
	if p&pieceColorBit != 0 {
		return Black
	}
	return White
}

var pieceRunes = map[Piece]rune{
	WhitePawn: 'P', WhiteKnight: 'N', WhiteBishop: 'B', WhiteRook: 'R', WhiteQueen: 'Q', WhiteKing: 'K',
	BlackPawn: 'p', BlackKnight: 'n', BlackBishop: 'b', BlackRook: 'r', BlackQueen: 'q', BlackKing: 'k',
}

func (p Piece) String() string {
	if r, ok := pieceRunes[p]; ok {
		return string(r)
	}
	return "."
}

// Square indexes the board a1=0 .. h8=63, file-major within each rank.
type Square uint8

// NoSquare marks an absent square (no en-passant target, no rook move).
const NoSquare Square = 64

func (s Square) File() int { return int(s & 7) }
func (s Square) Rank() int { return int(s >> 3) }

func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// SquareOf builds a square from file and rank, both 0..7.
func SquareOf(file, rank int) Square { return Square(rank*8 + file) }

// CastlingRights is a bitset of the four castling permissions.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
	AllCastling = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Bitboard primitives. Native bit-scan and popcount via math/bits.

func squareBB(s Square) uint64 { return 1 << s }

// SquareBB returns the single-bit set for a square.
func SquareBB(s Square) uint64 { return squareBB(s) }

// popLSB clears and returns the index of the lowest set bit.
func popLSB(bb *uint64) Square {
	s := Square(bits.TrailingZeros64(*bb))
	*bb &= *bb - 1
	return s
}

// PopCount returns the number of set bits.
func PopCount(bb uint64) int { return bits.OnesCount64(bb) }

// LowestSetBit returns the index of the lowest set bit, or -1 for the
// empty set.
func LowestSetBit(bb uint64) int {
	if bb == 0 {
		return -1
	}
	return bits.TrailingZeros64(bb)
}

// Board is the complete position state. Per-kind bitboards, per-color
// occupancy, and the mailbox array are kept in lockstep; the Zobrist hash
// is maintained incrementally through every mutation.
type Board struct {
	pawns   [2]uint64
	knights [2]uint64
	bishops [2]uint64
	rooks   [2]uint64
	queens  [2]uint64
	kings   [2]uint64

	occupied [2]uint64
	pieces   [64]Piece

	sideToMove Color
	castling   CastlingRights
	castled    [2]bool
	epSquare   Square
	halfmove   int
	fullmove   int
	hash       uint64
}

// SideToMove returns the color to move.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Castling returns the current castling rights.
func (b *Board) Castling() CastlingRights { return b.castling }

// HasCastled reports whether the side has already castled this game.
func (b *Board) HasCastled(c Color) bool { return b.castled[c] }

// EnPassant returns the en-passant target square, NoSquare when absent.
func (b *Board) EnPassant() Square { return b.epSquare }

// HalfmoveClock returns half-moves since the last pawn move or capture.
func (b *Board) HalfmoveClock() int { return b.halfmove }

// FullmoveNumber returns the full-move counter, starting at 1.
func (b *Board) FullmoveNumber() int { return b.fullmove }

// Hash returns the incrementally maintained Zobrist hash.
func (b *Board) Hash() uint64 { return b.hash }

// PieceAt returns the piece on a square, NoPiece when empty.
func (b *Board) PieceAt(s Square) Piece { return b.pieces[s] }

// Occupied returns the union of both sides' occupancy.
func (b *Board) Occupied() uint64 { return b.occupied[White] | b.occupied[Black] }

// OccupiedBy returns one side's occupancy.
func (b *Board) OccupiedBy(c Color) uint64 { return b.occupied[c] }

// Pieces returns the bitboard for one colored piece kind.
func (b *Board) Pieces(c Color, t PieceType) uint64 {
	switch t {
	case Pawn:
		return b.pawns[c]
	case Knight:
		return b.knights[c]
	case Bishop:
		return b.bishops[c]
	case Rook:
		return b.rooks[c]
	case Queen:
		return b.queens[c]
	case King:
		return b.kings[c]
	}
	return 0
}

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) Square {
	return Square(bits.TrailingZeros64(b.kings[c]))
}

func (b *Board) bitboardFor(p Piece) *uint64 {
	c := p.PieceColor()
	switch p.Type() {
	case Pawn:
		return &b.pawns[c]
	case Knight:
		return &b.knights[c]
	case Bishop:
		return &b.bishops[c]
	case Rook:
		return &b.rooks[c]
	case Queen:
		return &b.queens[c]
	case King:
		return &b.kings[c]
	}
	return nil
}

// addPiece places p on an empty square and folds it into the hash.
func (b *Board) addPiece(p Piece, s Square) {
	bb := squareBB(s)
	*b.bitboardFor(p) |= bb
	b.occupied[p.PieceColor()] |= bb
	b.pieces[s] = p
	b.hash ^= zobrist.piece[p][s]
}

// removePiece clears the piece on s and folds it out of the hash.
func (b *Board) removePiece(s Square) Piece {
	p := b.pieces[s]
	bb := squareBB(s)
	*b.bitboardFor(p) &^= bb
	b.occupied[p.PieceColor()] &^= bb
	b.pieces[s] = NoPiece
	b.hash ^= zobrist.piece[p][s]
	return p
}

// Validate checks the structural invariants: mailbox and bitboards agree,
// per-kind sets union to per-color occupancy, exactly one king per side,
// and the incremental hash equals a from-scratch recomputation. Intended
// for tests and debug assertions, not the search hot path.
func (b *Board) Validate() bool {
	var occ [2]uint64
	for c := White; c <= Black; c++ {
		occ[c] = b.pawns[c] | b.knights[c] | b.bishops[c] | b.rooks[c] | b.queens[c] | b.kings[c]
		if occ[c] != b.occupied[c] {
			return false
		}
		if PopCount(b.kings[c]) != 1 {
			return false
		}
	}
	if occ[White]&occ[Black] != 0 {
		return false
	}
	for s := Square(0); s < 64; s++ {
		p := b.pieces[s]
		if p == NoPiece {
			if (occ[White]|occ[Black])&squareBB(s) != 0 {
				return false
			}
			continue
		}
		if *b.bitboardFor(p)&squareBB(s) == 0 {
			return false
		}
	}
	return b.hash == b.ComputeZobrist()
}
