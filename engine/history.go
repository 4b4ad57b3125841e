package engine

import "heron-engine/board"

const historyCap = 10000

// heuristics carries the quiet-move ordering state: two killer slots and a
// mate killer per ply, a depth²-weighted history table with periodic
// halving, and counter moves keyed by the previous move.
type heuristics struct {
	killers     [maxPly + 2][2]board.Move
	mateKillers [maxPly + 2]board.Move
	history     [2][64][64]int32
	counters    [2][64][64]board.Move
}

func (h *heuristics) clear() {
	*h = heuristics{}
}

// insertKiller records a quiet cutoff move, shifting the previous first
// killer down a slot.
func (h *heuristics) insertKiller(ply int, m board.Move) {
	if h.killers[ply][0].Equal(m) {
		return
	}
	h.killers[ply][1] = h.killers[ply][0]
	h.killers[ply][0] = m
}

func (h *heuristics) isKiller(ply int, m board.Move) int {
	switch {
	case h.killers[ply][0].Equal(m):
		return 0
	case h.killers[ply][1].Equal(m):
		return 1
	}
	return -1
}

// rewardHistory credits a fail-high quiet move by depth squared, halving the
// whole table when any cell saturates so old credit decays.
func (h *heuristics) rewardHistory(c board.Color, m board.Move, depth int) {
	v := &h.history[c][m.From][m.To]
	*v += int32(depth * depth)
	if *v >= historyCap {
		h.ageHistory()
	}
}

// punishHistory debits quiets that were tried before the cutoff move.
func (h *heuristics) punishHistory(c board.Color, m board.Move, depth int) {
	v := &h.history[c][m.From][m.To]
	*v -= int32(depth)
	if *v < 0 {
		*v = 0
	}
}

func (h *heuristics) ageHistory() {
	for c := 0; c < 2; c++ {
		for f := 0; f < 64; f++ {
			for t := 0; t < 64; t++ {
				h.history[c][f][t] /= 2
			}
		}
	}
}

func (h *heuristics) historyScore(c board.Color, m board.Move) int32 {
	return h.history[c][m.From][m.To]
}

func (h *heuristics) setCounter(c board.Color, prev, reply board.Move) {
	if prev.IsNil() {
		return
	}
	h.counters[c][prev.From][prev.To] = reply
}

func (h *heuristics) counter(c board.Color, prev board.Move) board.Move {
	if prev.IsNil() {
		return board.NoMove
	}
	return h.counters[c][prev.From][prev.To]
}
