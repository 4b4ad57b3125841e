package engine

import "heron-engine/board"

// Evaluate is the scoring contract the search consumes: a signed centipawn
// score from the side to move's perspective. The shipped implementation is a
// compact tapered material and piece-square scorer; anything honoring the
// contract can replace it.
func Evaluate(b *board.Board) int {
	phase := gamePhase(b)
	score := evalSide(b, board.White, phase) - evalSide(b, board.Black, phase)
	if b.SideToMove() == board.Black {
		score = -score
	}
	return score + tempoBonus
}

const tempoBonus = 10

var pieceValue = [7]int{board.Pawn: 100, board.Knight: 320, board.Bishop: 330, board.Rook: 500, board.Queen: 900}

// gamePhase scales 0 (bare kings and pawns) to 24 (full material).
func gamePhase(b *board.Board) int {
	phase := 0
	for c := board.White; c <= board.Black; c++ {
		phase += 4 * board.PopCount(b.Pieces(c, board.Queen))
		phase += 2 * board.PopCount(b.Pieces(c, board.Rook))
		phase += board.PopCount(b.Pieces(c, board.Bishop) | b.Pieces(c, board.Knight))
	}
	return min(phase, 24)
}

func evalSide(b *board.Board, c board.Color, phase int) int {
	score := 0
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		for bb := b.Pieces(c, pt); bb != 0; {
			sq := board.Square(board.LowestSetBit(bb))
			bb &= bb - 1
			score += pieceValue[pt] + pstScore(c, pt, sq, phase)
		}
	}
	ksq := board.Square(board.LowestSetBit(b.Pieces(c, board.King)))
	score += pstScore(c, board.King, ksq, phase)
	if b.HasCastled(c) {
		score += 25
	}
	return score
}

// pstScore looks up the piece-square bonus; the king table is tapered
// between middlegame shelter and endgame centralization.
func pstScore(c board.Color, pt board.PieceType, sq board.Square, phase int) int {
	idx := sq
	if c == board.White {
		idx = sq ^ 56
	}
	if pt == board.King {
		return (kingPSTMG[idx]*phase + kingPSTEG[idx]*(24-phase)) / 24
	}
	return pst[pt][idx]
}

// Tables are written with rank 8 on the first row; white squares index with
// sq^56, black squares directly.
var pst = [7][64]int{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	board.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	board.Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	board.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
}

var kingPSTMG = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingPSTEG = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}
