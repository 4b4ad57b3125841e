package engine

import "heron-engine/board"

// seeValue deliberately equalizes knight and bishop so even minor trades
// score zero; the king value keeps it from ever being traded favorably.
var seeValue = [7]int{
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   5000,
}

// see simulates the full capture sequence on the destination square with
// least-valuable-attacker-first ordering on a scratch occupancy, x-rays
// included, and returns the net material outcome assuming both sides trade
// optimally. No real position state is touched.
func see(b *board.Board, m board.Move) int {
	if !m.IsCapture() {
		return 0
	}

	to := m.To
	occ := b.Occupied()
	var gain [34]int
	d := 0
	gain[0] = seeValue[m.Captured.Type()]

	occ &^= board.SquareBB(m.From)
	if m.Kind == board.EnPassant {
		capSq := int(to) - 8
		if m.Piece.PieceColor() == board.Black {
			capSq = int(to) + 8
		}
		occ &^= board.SquareBB(board.Square(capSq))
	}

	onSquare := m.Piece.Type()
	stm := m.Piece.PieceColor().Other()
	for {
		attackers := b.AttackersTo(to, occ)
		pt, sq := leastValuableAttacker(b, attackers, stm)
		if pt == board.NoType {
			break
		}
		d++
		gain[d] = seeValue[onSquare] - gain[d-1]
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}
		occ &^= board.SquareBB(sq)
		onSquare = pt
		stm = stm.Other()
	}
	for ; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

func leastValuableAttacker(b *board.Board, attackers uint64, c board.Color) (board.PieceType, board.Square) {
	for pt := board.Pawn; pt <= board.King; pt++ {
		if bb := attackers & b.Pieces(c, pt); bb != 0 {
			return pt, board.Square(board.LowestSetBit(bb))
		}
	}
	return board.NoType, board.NoSquare
}
