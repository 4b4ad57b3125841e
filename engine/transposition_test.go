package engine

import (
	"testing"

	"heron-engine/board"
)

func TestTransTableRoundTrip(t *testing.T) {
	tt := NewTransTable(1)
	m := board.Move{From: 12, To: 28, Piece: board.WhitePawn}
	tt.Store(0xDEADBEEF, m, 42, 7, 0, BoundExact)

	e, ok := tt.Probe(0xDEADBEEF)
	if !ok {
		t.Fatal("stored entry not found")
	}
	if !e.Move.Equal(m) || e.Score != 42 || e.Depth != 7 || e.Bound != BoundExact {
		t.Fatalf("entry mismatch: %+v", e)
	}
	if _, ok := tt.Probe(0xCAFEBABE); ok {
		t.Fatal("probe hit a key that was never stored")
	}
}

func TestTransTableMateNormalization(t *testing.T) {
	tt := NewTransTable(1)
	// A mate found 7 plies from the root, stored at ply 3.
	score := MateValue - 7
	tt.Store(1, board.NoMove, score, 10, 3, BoundExact)

	e, _ := tt.Probe(1)
	if int(e.Score) != MateValue-4 {
		t.Fatalf("stored mate score %d, want ply-relative %d", e.Score, MateValue-4)
	}
	if got := scoreFromTT(e.Score, 3); got != score {
		t.Fatalf("round trip at same ply = %d, want %d", got, score)
	}
	// Grafted deeper in the tree, the mate is farther from the root.
	if got := scoreFromTT(e.Score, 5); got != MateValue-9 {
		t.Fatalf("graft at ply 5 = %d, want %d", got, MateValue-9)
	}
}

func TestTransTableKeepsDeeperEntry(t *testing.T) {
	tt := NewTransTable(1)
	deep := board.Move{From: 6, To: 21, Piece: board.WhiteKnight}
	tt.Store(7, deep, 80, 12, 0, BoundExact)
	// A shallower non-exact result must not evict the deep score.
	shallow := board.Move{From: 12, To: 20, Piece: board.WhitePawn}
	tt.Store(7, shallow, -30, 2, 0, BoundUpper)

	e, ok := tt.Probe(7)
	if !ok {
		t.Fatal("entry vanished")
	}
	if e.Score != 80 || e.Depth != 12 {
		t.Fatalf("deep entry overwritten: %+v", e)
	}
	if !e.Move.Equal(shallow) {
		t.Fatalf("move not refreshed: %+v", e.Move)
	}
}

func TestTransTableClear(t *testing.T) {
	tt := NewTransTable(1)
	tt.Store(9, board.NoMove, 1, 1, 0, BoundLower)
	tt.Clear()
	if _, ok := tt.Probe(9); ok {
		t.Fatal("entry survived Clear")
	}
}

func TestReplaceOrderPrefersStaleVictims(t *testing.T) {
	fresh := &Entry{Depth: 3, Gen: 5, Bound: BoundExact}
	stale := &Entry{Depth: 20, Gen: 4, Bound: BoundExact}
	if replaceOrder(stale, 5) >= replaceOrder(fresh, 5) {
		t.Fatal("stale deep entry should be a better victim than a fresh shallow one")
	}
}
