package board

// MoveKind tags the special move families that need extra handling during
// application.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Castle
	EnPassant
)

// Move is a candidate transition between positions. Plain tagged fields
// rather than a packed word; Score is mutable search-time ordering state and
// is excluded from identity comparisons.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  Piece
	Promotion PieceType
	Kind      MoveKind
	Score     int16
}

// NoMove is the null move sentinel.
var NoMove Move

// IsNil reports whether m is the null move.
func (m Move) IsNil() bool { return m.Piece == NoPiece }

// Equal compares move identity, ignoring the ordering score.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Piece == o.Piece &&
		m.Captured == o.Captured && m.Promotion == o.Promotion && m.Kind == o.Kind
}

// IsCapture reports whether the move takes a piece, en passant included.
func (m Move) IsCapture() bool { return m.Captured != NoPiece }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Promotion != NoType }

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool { return m.Captured == NoPiece && m.Promotion == NoType }

// PromotionPiece returns the colored piece the pawn becomes, NoPiece when
// the move is not a promotion.
func (m Move) PromotionPiece() Piece {
	if m.Promotion == NoType {
		return NoPiece
	}
	return MakePiece(m.Piece.PieceColor(), m.Promotion)
}

// WithoutScore strips the ordering score, for table storage and map keys.
func (m Move) WithoutScore() Move {
	m.Score = 0
	return m
}

var promotionLetters = [7]byte{Queen: 'q', Rook: 'r', Bishop: 'b', Knight: 'n'}

// String renders coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNil() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != NoType {
		s += string(promotionLetters[m.Promotion])
	}
	return s
}
