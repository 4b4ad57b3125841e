package board

import (
	"errors"
	"testing"
)

func findMove(t *testing.T, b *Board, coord string) Move {
	t.Helper()
	m, err := b.ParseMove(coord)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", coord, err)
	}
	return m
}

func TestSANRendering(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		coord string
		want  string
	}{
		{"knight development", StartPositionFEN, "g1f3", "Nf3"},
		{"pawn push", StartPositionFEN, "e2e4", "e4"},
		{
			"pawn capture",
			"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			"e4d5", "exd5",
		},
		{
			"kingside castle",
			"r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
			"e1g1", "O-O",
		},
		{
			"queenside castle",
			"r3kbnr/pppqpppp/2n5/3p1b2/3P1B2/2N5/PPPQPPPP/R3KBNR b KQkq - 6 5",
			"e8c8", "O-O-O",
		},
		{
			"file disambiguation",
			"4k3/8/8/8/8/8/8/N1N1K3 w - - 0 1",
			"a1b3", "Nab3",
		},
		{
			"rank disambiguation",
			"4k3/8/7R/8/8/8/8/4K2R w - - 0 1",
			"h6h3", "R6h3",
		},
		{
			"promotion with check",
			"4k3/P7/8/8/8/8/8/K7 w - - 0 1",
			"a7a8q", "a8=Q+",
		},
		{
			"back rank mate",
			"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
			"a1a8", "Ra8#",
		},
		{
			"check suffix",
			"rnbqkbnr/ppppp1pp/8/5p2/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			"d1h5", "Qh5+",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, tc.fen)
			m := findMove(t, b, tc.coord)
			if got := b.SAN(m); got != tc.want {
				t.Fatalf("SAN(%s) = %q, want %q", tc.coord, got, tc.want)
			}
			if b.FEN() != tc.fen {
				t.Fatalf("SAN mutated the position: %q", b.FEN())
			}
		})
	}
}

func TestParseMoveSAN(t *testing.T) {
	b := NewBoard()
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Bxc6", "dxc6", "O-O"} {
		m, err := b.ParseMove(san)
		if err != nil {
			t.Fatalf("ParseMove(%q) in %q: %v", san, b.FEN(), err)
		}
		if ok, u := b.MakeMove(m); !ok {
			b.UnmakeMove(m, u)
			t.Fatalf("parsed %q to illegal move %s", san, m)
		}
	}
	want := "r1bqkbnr/1pp2ppp/p1p5/4p3/4P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 1 5"
	if b.FEN() != want {
		t.Fatalf("after Ruy exchange line:\n got %q\nwant %q", b.FEN(), want)
	}
}

func TestParseMoveAcceptsAnnotations(t *testing.T) {
	b := NewBoard()
	if _, err := b.ParseMove("e4!"); err != nil {
		t.Fatalf("annotated pawn push rejected: %v", err)
	}
	if _, err := b.ParseMove("Nf3!?"); err != nil {
		t.Fatalf("annotated SAN rejected: %v", err)
	}
	// Zero-style castling spelling normalizes, but stays illegal here.
	if _, err := b.ParseMove("0-0"); !errors.Is(err, ErrNoMatchingMove) {
		t.Fatalf("ParseMove(0-0) = %v, want ErrNoMatchingMove", err)
	}
}

func TestParseMoveRejectsIllegal(t *testing.T) {
	b := NewBoard()
	for _, text := range []string{"e2e5", "Ke2", "O-O", "d8=Q", "xyzzy", ""} {
		if _, err := b.ParseMove(text); !errors.Is(err, ErrNoMatchingMove) {
			t.Fatalf("ParseMove(%q) = %v, want ErrNoMatchingMove", text, err)
		}
	}
	if b.FEN() != StartPositionFEN {
		t.Fatalf("failed parse mutated the position: %q", b.FEN())
	}
}
