package board

// Perft counts leaf nodes reachable by legal play to the given depth. It is
// part of the public verification contract: counts must match published
// reference values exactly.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	bufs := make([][]Move, depth+1)
	for i := range bufs {
		bufs[i] = make([]Move, 0, MaxMoves)
	}
	return perftRec(b, depth, bufs)
}

func perftRec(b *Board, depth int, bufs [][]Move) uint64 {
	moves := b.GenerateMovesInto(bufs[depth])
	bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for i := range moves {
		ok, u := b.MakeMove(moves[i])
		if ok {
			nodes += perftRec(b, depth-1, bufs)
		}
		b.UnmakeMove(moves[i], u)
	}
	return nodes
}

// PerftDivide returns the node count under each root move, the standard tool
// for localizing generator bugs against a reference engine.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	div := make(map[Move]uint64)
	for _, m := range b.GenerateMoves() {
		ok, u := b.MakeMove(m)
		if ok {
			div[m.WithoutScore()] = Perft(b, depth-1)
		}
		b.UnmakeMove(m, u)
	}
	return div
}
