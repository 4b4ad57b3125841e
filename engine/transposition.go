package engine

import "heron-engine/board"

// Bound is the kind of score a table entry carries.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// Entry is one transposition table slot. Depth is the draft the score was
// computed at; an entry only substitutes for a search when its depth covers
// the requirement. Gen marks the search that wrote it.
type Entry struct {
	Key   uint64
	Move  board.Move
	Score int16
	Depth int8
	Bound Bound
	Gen   uint8
}

const clusterSize = 4

type cluster [clusterSize]Entry

// TransTable is a clustered hash-keyed cache of search results. Size is
// fixed at construction; a full table is handled by replacement, never by
// failing.
type TransTable struct {
	clusters []cluster
	mask     uint64
	gen      uint8
}

// NewTransTable allocates roughly mb megabytes, rounded down to a
// power-of-two cluster count.
func NewTransTable(mb int) *TransTable {
	if mb < 1 {
		mb = 1
	}
	want := uint64(mb) << 20 / 128
	n := uint64(1)
	for n*2 <= want {
		n *= 2
	}
	return &TransTable{clusters: make([]cluster, n), mask: n - 1}
}

// Clear wipes every entry, used between games.
func (tt *TransTable) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = cluster{}
	}
	tt.gen = 0
}

// NextGeneration ages the table between searches: stale entries become
// preferred replacement victims but stay probeable.
func (tt *TransTable) NextGeneration() { tt.gen++ }

// Probe returns the entry for key if present.
func (tt *TransTable) Probe(key uint64) (Entry, bool) {
	cl := &tt.clusters[key&tt.mask]
	for i := range cl {
		if cl[i].Bound != BoundNone && cl[i].Key == key {
			cl[i].Gen = tt.gen
			return cl[i], true
		}
	}
	return Entry{}, false
}

// Store writes a result. Same-key entries update in place; otherwise the
// victim is an empty slot, then the stalest generation, then the shallowest
// depth. Mate scores are normalized to the node's ply so they stay valid
// when grafted elsewhere in the tree.
func (tt *TransTable) Store(key uint64, m board.Move, score, depth, ply int, bound Bound) {
	cl := &tt.clusters[key&tt.mask]
	victim := 0
	for i := range cl {
		if cl[i].Bound == BoundNone || cl[i].Key == key {
			victim = i
			break
		}
		if replaceOrder(&cl[i], tt.gen) < replaceOrder(&cl[victim], tt.gen) {
			victim = i
		}
	}
	e := &cl[victim]
	if e.Key == key && e.Bound != BoundNone && depth < int(e.Depth) && bound != BoundExact {
		// keep the deeper result, but refresh its move when we have one
		if !m.IsNil() {
			e.Move = m
		}
		e.Gen = tt.gen
		return
	}
	*e = Entry{
		Key:   key,
		Move:  m,
		Score: scoreToTT(score, ply),
		Depth: int8(depth),
		Bound: bound,
		Gen:   tt.gen,
	}
}

// replaceOrder ranks an entry's worth; lower gets replaced first.
func replaceOrder(e *Entry, gen uint8) int {
	v := int(e.Depth)
	if e.Gen != gen {
		v -= 128
	}
	return v
}

func scoreToTT(score, ply int) int16 {
	if score >= mateBound {
		score += ply
	} else if score <= -mateBound {
		score -= ply
	}
	return int16(score)
}

func scoreFromTT(score int16, ply int) int {
	s := int(score)
	if s >= mateBound {
		s -= ply
	} else if s <= -mateBound {
		s += ply
	}
	return s
}
