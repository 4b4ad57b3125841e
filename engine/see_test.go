package engine

import (
	"testing"

	"heron-engine/board"
)

func moveFor(t *testing.T, b *board.Board, coord string) board.Move {
	t.Helper()
	m, err := b.ParseMove(coord)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", coord, err)
	}
	return m
}

func TestSEE(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		coord string
		want  int
	}{
		{
			"undefended pawn",
			"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1",
			"e1e5", 100,
		},
		{
			"queen grabs guarded pawn",
			"4k3/8/5p2/4p3/8/8/8/Q3K3 w - - 0 1",
			"a1e5", 100 - 900,
		},
		{
			"even rook trade",
			"3rk3/8/8/3r4/8/8/3R4/4K3 w - - 0 1",
			"d2d5", 0,
		},
		{
			"defender outnumbered",
			"3rk3/8/8/3r4/8/8/3R4/3RK3 w - - 0 1",
			"d2d5", 500,
		},
		{
			"pawn takes defended pawn",
			"4k3/8/5p2/4p3/3P4/8/8/4K3 w - - 0 1",
			"d4e5", 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := parse(t, tc.fen)
			m := moveFor(t, b, tc.coord)
			if got := see(b, m); got != tc.want {
				t.Fatalf("see(%s) = %d, want %d", tc.coord, got, tc.want)
			}
			if b.FEN() != tc.fen {
				t.Fatalf("see mutated the position: %q", b.FEN())
			}
		})
	}
}

func TestSEELosingSequence(t *testing.T) {
	// Nxe5 wins a pawn but loses the knight to the recapture battle.
	b := parse(t, "1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1")
	m := moveFor(t, b, "d3e5")
	if got := see(b, m); got >= 0 {
		t.Fatalf("see(Nxe5) = %d, want negative", got)
	}
}

func TestSEEEnPassant(t *testing.T) {
	b := parse(t, "4k3/8/8/1Pp5/8/8/8/4K3 w - c6 0 2")
	m := moveFor(t, b, "b5c6")
	if m.Kind != board.EnPassant {
		t.Fatalf("expected en passant, got %v", m.Kind)
	}
	if got := see(b, m); got != 100 {
		t.Fatalf("see(bxc6 e.p.) = %d, want 100", got)
	}
}

func TestSEEQuietMoveIsZero(t *testing.T) {
	b := board.NewBoard()
	m := moveFor(t, b, "e2e4")
	if got := see(b, m); got != 0 {
		t.Fatalf("see(quiet) = %d, want 0", got)
	}
}
