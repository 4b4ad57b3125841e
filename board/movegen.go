package board

import "math/bits"

type genFilter uint8

const (
	genAll genFilter = iota
	genCaptures
	genQuiets
)

// MaxMoves bounds the number of legal moves in any reachable position.
const MaxMoves = 256

// GenerateMoves returns every legal move in a fresh slice.
func (b *Board) GenerateMoves() []Move {
	return b.generate(make([]Move, 0, 48), genAll)
}

// GenerateMovesInto appends every legal move to buf[:0], reusing its backing
// array. The search hot path calls this with per-ply buffers.
func (b *Board) GenerateMovesInto(buf []Move) []Move {
	return b.generate(buf[:0], genAll)
}

// GenerateCapturesInto appends captures, en-passant captures, and queen
// promotions. Used by quiescence search.
func (b *Board) GenerateCapturesInto(buf []Move) []Move {
	return b.generate(buf[:0], genCaptures)
}

// GenerateQuietsInto appends non-capture, non-promotion moves.
func (b *Board) GenerateQuietsInto(buf []Move) []Move {
	return b.generate(buf[:0], genQuiets)
}

// IsSquareAttacked reports whether sq is attacked by any piece of color by.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isAttackedWithOcc(sq, by, b.Occupied())
}

// InCheck reports whether c's king is attacked.
func (b *Board) InCheck(c Color) bool {
	return b.isAttackedWithOcc(b.KingSquare(c), c.Other(), b.Occupied())
}

// AttackedSquares unions the attack sets of every piece of color c,
// materialized for callers that want the full map rather than per-square
// queries.
func (b *Board) AttackedSquares(c Color) uint64 {
	occ := b.Occupied()
	var att uint64
	for bb := b.pawns[c]; bb != 0; {
		att |= tbl.pawnAttacks[c][popLSB(&bb)]
	}
	for bb := b.knights[c]; bb != 0; {
		att |= tbl.knight[popLSB(&bb)]
	}
	for bb := b.bishops[c] | b.queens[c]; bb != 0; {
		att |= BishopAttacks(popLSB(&bb), occ)
	}
	for bb := b.rooks[c] | b.queens[c]; bb != 0; {
		att |= RookAttacks(popLSB(&bb), occ)
	}
	att |= tbl.king[b.KingSquare(c)]
	return att
}

// AttackersTo returns every piece of either color attacking sq under the
// given occupancy. Pieces absent from occ are ignored, which lets static
// exchange evaluation peel attackers off a scratch occupancy.
func (b *Board) AttackersTo(sq Square, occ uint64) uint64 {
	att := tbl.pawnAttacks[White][sq] & b.pawns[Black]
	att |= tbl.pawnAttacks[Black][sq] & b.pawns[White]
	att |= tbl.knight[sq] & (b.knights[White] | b.knights[Black])
	att |= tbl.king[sq] & (b.kings[White] | b.kings[Black])
	r := RookAttacks(sq, occ)
	att |= r & (b.rooks[White] | b.rooks[Black] | b.queens[White] | b.queens[Black])
	d := BishopAttacks(sq, occ)
	att |= d & (b.bishops[White] | b.bishops[Black] | b.queens[White] | b.queens[Black])
	return att & occ
}

func (b *Board) isAttackedWithOcc(sq Square, by Color, occ uint64) bool {
	if tbl.pawnAttacks[by.Other()][sq]&b.pawns[by] != 0 {
		return true
	}
	if tbl.knight[sq]&b.knights[by] != 0 {
		return true
	}
	if tbl.king[sq]&b.kings[by] != 0 {
		return true
	}
	if tbl.rookAtt[sq][pext(occ, tbl.rookMask[sq])]&(b.rooks[by]|b.queens[by]) != 0 {
		return true
	}
	return tbl.bishopAtt[sq][pext(occ, tbl.bishopMask[sq])]&(b.bishops[by]|b.queens[by]) != 0
}

func nearestBlocker(bb uint64, positive bool) Square {
	if positive {
		return Square(bits.TrailingZeros64(bb))
	}
	return Square(63 - bits.LeadingZeros64(bb))
}

// checksAndPins scans outward from the king: direct checkers populate the
// check mask (squares that block or capture resolve the check), own pieces
// shadowed by an enemy slider become pinned and restricted to the pin ray.
func (b *Board) checksAndPins(us Color) (checkers int, checkMask uint64, pinned uint64, pinRays [64]uint64) {
	them := us.Other()
	ksq := b.KingSquare(us)
	occ := b.Occupied()

	for n := tbl.knight[ksq] & b.knights[them]; n != 0; {
		checkers++
		checkMask |= squareBB(popLSB(&n))
	}
	for p := tbl.pawnAttacks[us][ksq] & b.pawns[them]; p != 0; {
		checkers++
		checkMask |= squareBB(popLSB(&p))
	}

	scan := func(rays *[64][4]uint64, pos *[4]bool, sliders uint64) {
		for d := 0; d < 4; d++ {
			ray := rays[ksq][d]
			blockers := ray & occ
			if blockers == 0 {
				continue
			}
			first := nearestBlocker(blockers, pos[d])
			fb := squareBB(first)
			if sliders&fb != 0 {
				checkers++
				checkMask |= ray &^ rays[first][d]
				continue
			}
			if b.occupied[us]&fb == 0 {
				continue
			}
			rest := blockers & rays[first][d]
			if rest == 0 {
				continue
			}
			second := nearestBlocker(rest, pos[d])
			if sliders&squareBB(second) != 0 {
				pinned |= fb
				pinRays[first] = ray &^ rays[second][d]
			}
		}
	}
	scan(&tbl.rookRays, &rookDirPos, b.rooks[them]|b.queens[them])
	scan(&tbl.bishopRays, &bishopDirPos, b.bishops[them]|b.queens[them])

	if checkers == 0 {
		checkMask = ^uint64(0)
	}
	return
}

func (b *Board) generate(dst []Move, filter genFilter) []Move {
	us := b.sideToMove
	them := us.Other()
	occ := b.Occupied()
	ours := b.occupied[us]
	theirs := b.occupied[them]
	ksq := b.KingSquare(us)

	checkers, checkMask, pinned, pinRays := b.checksAndPins(us)

	// King moves are legal iff the destination is safe with the king
	// lifted off the board, so sliders see through its current square.
	kingTargets := tbl.king[ksq] &^ ours
	switch filter {
	case genCaptures:
		kingTargets &= theirs
	case genQuiets:
		kingTargets &^= theirs
	}
	occNoKing := occ ^ squareBB(ksq)
	king := MakePiece(us, King)
	for t := kingTargets; t != 0; {
		to := popLSB(&t)
		if b.isAttackedWithOcc(to, them, occNoKing) {
			continue
		}
		dst = append(dst, Move{From: ksq, To: to, Piece: king, Captured: b.pieces[to]})
	}
	if checkers >= 2 {
		return dst
	}

	capMask := theirs & checkMask
	quietMask := ^occ & checkMask
	var targetMask uint64
	switch filter {
	case genAll:
		targetMask = capMask | quietMask
	case genCaptures:
		targetMask = capMask
	case genQuiets:
		targetMask = quietMask
	}

	pinMask := func(from Square) uint64 {
		if pinned&squareBB(from) != 0 {
			return pinRays[from]
		}
		return ^uint64(0)
	}

	dst = b.generatePawns(dst, filter, capMask, quietMask, pinMask)

	for bb := b.knights[us] &^ pinned; bb != 0; {
		from := popLSB(&bb)
		dst = b.appendTargets(dst, from, MakePiece(us, Knight), tbl.knight[from]&targetMask)
	}
	for bb := b.bishops[us]; bb != 0; {
		from := popLSB(&bb)
		dst = b.appendTargets(dst, from, MakePiece(us, Bishop), BishopAttacks(from, occ)&targetMask&pinMask(from))
	}
	for bb := b.rooks[us]; bb != 0; {
		from := popLSB(&bb)
		dst = b.appendTargets(dst, from, MakePiece(us, Rook), RookAttacks(from, occ)&targetMask&pinMask(from))
	}
	for bb := b.queens[us]; bb != 0; {
		from := popLSB(&bb)
		dst = b.appendTargets(dst, from, MakePiece(us, Queen), QueenAttacks(from, occ)&targetMask&pinMask(from))
	}

	if checkers == 0 && filter != genCaptures {
		dst = b.generateCastling(dst, us, occ)
	}
	return dst
}

func (b *Board) appendTargets(dst []Move, from Square, p Piece, targets uint64) []Move {
	for targets != 0 {
		to := popLSB(&targets)
		dst = append(dst, Move{From: from, To: to, Piece: p, Captured: b.pieces[to]})
	}
	return dst
}

func (b *Board) generatePawns(dst []Move, filter genFilter, capMask, quietMask uint64, pinMask func(Square) uint64) []Move {
	us := b.sideToMove
	them := us.Other()
	occ := b.Occupied()
	pawn := MakePiece(us, Pawn)

	forward := 8
	startRank, promoRank := 1, 7
	if us == Black {
		forward = -8
		startRank, promoRank = 6, 0
	}

	for bb := b.pawns[us]; bb != 0; {
		from := popLSB(&bb)
		pr := pinMask(from)

		if filter != genQuiets {
			for caps := tbl.pawnAttacks[us][from] & capMask & pr; caps != 0; {
				to := popLSB(&caps)
				dst = appendPawnMove(dst, filter, Move{From: from, To: to, Piece: pawn, Captured: b.pieces[to]})
			}
		}

		one := Square(int(from) + forward)
		if occ&squareBB(one) != 0 {
			continue
		}
		isPromo := one.Rank() == promoRank
		if squareBB(one)&quietMask&pr != 0 && !(isPromo && filter == genQuiets) {
			if isPromo || filter != genCaptures {
				dst = appendPawnMove(dst, filter, Move{From: from, To: one, Piece: pawn})
			}
		}
		if from.Rank() == startRank && filter != genCaptures {
			two := Square(int(from) + 2*forward)
			if squareBB(two)&quietMask&pr != 0 {
				dst = append(dst, Move{From: from, To: two, Piece: pawn})
			}
		}
	}

	if b.epSquare != NoSquare && filter != genQuiets {
		captured := MakePiece(them, Pawn)
		for bb := tbl.pawnAttacks[them][b.epSquare] & b.pawns[us]; bb != 0; {
			from := popLSB(&bb)
			if b.epCaptureLegal(from, b.epSquare, us) {
				dst = append(dst, Move{From: from, To: b.epSquare, Piece: pawn, Captured: captured, Kind: EnPassant})
			}
		}
	}
	return dst
}

// appendPawnMove expands promotions: each promotion kind is a distinct move.
// Quiescence keeps only the queen promotion.
func appendPawnMove(dst []Move, filter genFilter, m Move) []Move {
	if m.To.Rank() != 0 && m.To.Rank() != 7 {
		return append(dst, m)
	}
	m.Promotion = Queen
	dst = append(dst, m)
	if filter == genCaptures {
		return dst
	}
	for _, pt := range [3]PieceType{Rook, Bishop, Knight} {
		m.Promotion = pt
		dst = append(dst, m)
	}
	return dst
}

// epCaptureLegal validates an en-passant capture by simulating the resulting
// occupancy. The captured pawn leaves a different square than the
// destination, so pin and check masks do not cover this case; the horizontal
// discovered check with both pawns gone is the classic trap.
func (b *Board) epCaptureLegal(from, to Square, us Color) bool {
	them := us.Other()
	capSq := Square(int(to) - 8)
	if us == Black {
		capSq = Square(int(to) + 8)
	}
	capBB := squareBB(capSq)
	occ := (b.Occupied() &^ (squareBB(from) | capBB)) | squareBB(to)
	ksq := b.KingSquare(us)
	if RookAttacks(ksq, occ)&(b.rooks[them]|b.queens[them]) != 0 {
		return false
	}
	if BishopAttacks(ksq, occ)&(b.bishops[them]|b.queens[them]) != 0 {
		return false
	}
	if tbl.knight[ksq]&b.knights[them] != 0 {
		return false
	}
	return tbl.pawnAttacks[us][ksq]&(b.pawns[them]&^capBB)&occ == 0
}

// Castling squares are fixed in standard chess; the path between king and
// rook must be empty and the king's path unattacked.
func (b *Board) generateCastling(dst []Move, us Color, occ uint64) []Move {
	them := us.Other()
	if us == White {
		if b.castling&WhiteKingside != 0 && occ&(squareBB(5)|squareBB(6)) == 0 &&
			!b.isAttackedWithOcc(5, them, occ) && !b.isAttackedWithOcc(6, them, occ) {
			dst = append(dst, Move{From: 4, To: 6, Piece: WhiteKing, Kind: Castle})
		}
		if b.castling&WhiteQueenside != 0 && occ&(squareBB(1)|squareBB(2)|squareBB(3)) == 0 &&
			!b.isAttackedWithOcc(2, them, occ) && !b.isAttackedWithOcc(3, them, occ) {
			dst = append(dst, Move{From: 4, To: 2, Piece: WhiteKing, Kind: Castle})
		}
		return dst
	}
	if b.castling&BlackKingside != 0 && occ&(squareBB(61)|squareBB(62)) == 0 &&
		!b.isAttackedWithOcc(61, them, occ) && !b.isAttackedWithOcc(62, them, occ) {
		dst = append(dst, Move{From: 60, To: 62, Piece: BlackKing, Kind: Castle})
	}
	if b.castling&BlackQueenside != 0 && occ&(squareBB(57)|squareBB(58)|squareBB(59)) == 0 &&
		!b.isAttackedWithOcc(58, them, occ) && !b.isAttackedWithOcc(59, them, occ) {
		dst = append(dst, Move{From: 60, To: 58, Piece: BlackKing, Kind: Castle})
	}
	return dst
}
