package engine

import (
	"testing"

	"heron-engine/board"
)

func parse(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func TestEvaluateSymmetricPosition(t *testing.T) {
	white := board.NewBoard()
	if got := Evaluate(white); got != tempoBonus {
		t.Fatalf("start position for white = %d, want tempo bonus %d", got, tempoBonus)
	}
	black := parse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	if got := Evaluate(black); got != tempoBonus {
		t.Fatalf("start position for black = %d, want tempo bonus %d", got, tempoBonus)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is a full queen up.
	b := parse(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	score := Evaluate(b)
	if score < 800 {
		t.Fatalf("queen-up score = %d, want clearly positive", score)
	}
	// The same position seen from the loser.
	b = parse(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	if got := Evaluate(b); got > -800 {
		t.Fatalf("queen-down score = %d, want clearly negative", got)
	}
}

func TestEvaluatePerspectiveNegation(t *testing.T) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
	asWhite := Evaluate(parse(t, fen))
	asBlack := Evaluate(parse(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 b - - 0 10"))
	// Flipping only the mover negates the positional balance; the tempo
	// bonus stays with whoever moves.
	if asWhite-tempoBonus != -(asBlack - tempoBonus) {
		t.Fatalf("perspective mismatch: white %d, black %d", asWhite, asBlack)
	}
}

func TestGamePhase(t *testing.T) {
	if got := gamePhase(board.NewBoard()); got != 24 {
		t.Fatalf("start position phase = %d, want 24", got)
	}
	if got := gamePhase(parse(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")); got != 0 {
		t.Fatalf("bare kings phase = %d, want 0", got)
	}
	if got := gamePhase(parse(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")); got != 4 {
		t.Fatalf("lone queen phase = %d, want 4", got)
	}
}
