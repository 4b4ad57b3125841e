package board

// Undo snapshots the irreversible state apply() destroys, so UnmakeMove can
// restore the position bit for bit.
type Undo struct {
	castling CastlingRights
	castled  [2]bool
	epSquare Square
	halfmove int
	fullmove int
	hash     uint64
}

// NullUndo is the reduced snapshot for a null move.
type NullUndo struct {
	epSquare Square
	hash     uint64
}

// castleRightsMask maps a touched square to the rights that survive: moving
// the king or a corner rook, or capturing a corner rook, drops the right.
var castleRightsMask = buildCastleRightsMask()

func buildCastleRightsMask() [64]CastlingRights {
	var m [64]CastlingRights
	for i := range m {
		m[i] = AllCastling
	}
	m[0] &^= WhiteQueenside
	m[4] &^= WhiteKingside | WhiteQueenside
	m[7] &^= WhiteKingside
	m[56] &^= BlackQueenside
	m[60] &^= BlackKingside | BlackQueenside
	m[63] &^= BlackKingside
	return m
}

func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case 6:
		return 7, 5
	case 2:
		return 0, 3
	case 62:
		return 63, 61
	default:
		return 56, 59
	}
}

func epCapturedSquare(to Square, us Color) Square {
	if us == White {
		return Square(int(to) - 8)
	}
	return Square(int(to) + 8)
}

// MakeMove applies m, maintaining the hash incrementally through every bit
// it flips. It returns false when the mover's own king is left in check; the
// mutation stays in place and the caller must UnmakeMove immediately.
func (b *Board) MakeMove(m Move) (bool, Undo) {
	us := b.sideToMove
	u := Undo{
		castling: b.castling,
		castled:  b.castled,
		epSquare: b.epSquare,
		halfmove: b.halfmove,
		fullmove: b.fullmove,
		hash:     b.hash,
	}

	if b.epSquare != NoSquare {
		b.hash ^= zobrist.epFile[b.epSquare.File()]
	}

	if m.Captured != NoPiece {
		capSq := m.To
		if m.Kind == EnPassant {
			capSq = epCapturedSquare(m.To, us)
		}
		b.removePiece(capSq)
	}

	b.removePiece(m.From)
	placed := m.Piece
	if m.Promotion != NoType {
		placed = m.PromotionPiece()
	}
	b.addPiece(placed, m.To)

	if m.Kind == Castle {
		rf, rt := castleRookSquares(m.To)
		b.addPiece(b.removePiece(rf), rt)
		b.castled[us] = true
	}

	if next := b.castling & castleRightsMask[m.From] & castleRightsMask[m.To]; next != b.castling {
		b.hash ^= zobrist.castling[b.castling] ^ zobrist.castling[next]
		b.castling = next
	}

	b.epSquare = NoSquare
	if m.Piece.Type() == Pawn {
		switch int(m.To) - int(m.From) {
		case 16:
			b.epSquare = m.From + 8
		case -16:
			b.epSquare = m.From - 8
		}
		if b.epSquare != NoSquare {
			b.hash ^= zobrist.epFile[b.epSquare.File()]
		}
	}

	if m.Piece.Type() == Pawn || m.Captured != NoPiece {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if us == Black {
		b.fullmove++
	}

	b.sideToMove = us.Other()
	b.hash ^= zobrist.side

	if b.InCheck(us) {
		return false, u
	}
	return true, u
}

// UnmakeMove reverts exactly the fields MakeMove changed. The hash is
// restored from the snapshot, so the round trip is exact even after a
// failed (illegal) apply.
func (b *Board) UnmakeMove(m Move, u Undo) {
	us := b.sideToMove.Other()
	b.sideToMove = us

	b.removePiece(m.To)
	b.addPiece(m.Piece, m.From)

	if m.Captured != NoPiece {
		capSq := m.To
		if m.Kind == EnPassant {
			capSq = epCapturedSquare(m.To, us)
		}
		b.addPiece(m.Captured, capSq)
	}

	if m.Kind == Castle {
		rf, rt := castleRookSquares(m.To)
		b.addPiece(b.removePiece(rt), rf)
	}

	b.castling = u.castling
	b.castled = u.castled
	b.epSquare = u.epSquare
	b.halfmove = u.halfmove
	b.fullmove = u.fullmove
	b.hash = u.hash
}

// MakeNullMove passes the turn without moving, for null-move pruning. The
// en-passant target is cleared since the skipped side forfeits the capture.
func (b *Board) MakeNullMove() NullUndo {
	u := NullUndo{epSquare: b.epSquare, hash: b.hash}
	if b.epSquare != NoSquare {
		b.hash ^= zobrist.epFile[b.epSquare.File()]
		b.epSquare = NoSquare
	}
	b.sideToMove = b.sideToMove.Other()
	b.hash ^= zobrist.side
	return u
}

// UnmakeNullMove reverts MakeNullMove.
func (b *Board) UnmakeNullMove(u NullUndo) {
	b.sideToMove = b.sideToMove.Other()
	b.epSquare = u.epSquare
	b.hash = u.hash
}
