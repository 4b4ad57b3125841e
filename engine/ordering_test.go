package engine

import (
	"testing"

	"heron-engine/board"
)

func TestScoreMovesTTMoveFirst(t *testing.T) {
	e := New(Config{HashMB: 1})
	b := board.NewBoard()
	moves := b.GenerateMoves()
	ttMove := moves[len(moves)-1].WithoutScore()
	e.scoreMoves(b, moves, ttMove, 0, board.NoMove)
	if got := pickNext(moves, 0); !got.Equal(ttMove) {
		t.Fatalf("first pick %s, want table move %s", got, ttMove)
	}
}

func TestScoreMovesCapturesBeforeQuiets(t *testing.T) {
	e := New(Config{HashMB: 1})
	// White can win the d5 pawn or shuffle.
	b := parse(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	moves := b.GenerateMoves()
	e.scoreMoves(b, moves, board.NoMove, 0, board.NoMove)
	first := pickNext(moves, 0)
	if !first.IsCapture() {
		t.Fatalf("first pick %s is not the capture", first)
	}
}

func TestScoreMovesLosingCapturesSink(t *testing.T) {
	e := New(Config{HashMB: 1})
	// Qxe5 loses the queen to the f6 pawn; quiet checks should outrank it
	// once any history credit exists.
	b := parse(t, "4k3/8/5p2/4p3/8/8/8/Q3K3 w - - 0 1")
	moves := b.GenerateMoves()
	e.scoreMoves(b, moves, board.NoMove, 0, board.NoMove)
	for _, m := range moves {
		if m.IsCapture() && m.Score >= scoreGoodCap {
			t.Fatalf("losing capture %s scored %d in the winning band", m, m.Score)
		}
	}
}

func TestKillerOrdering(t *testing.T) {
	e := New(Config{HashMB: 1})
	b := board.NewBoard()
	moves := b.GenerateMoves()
	killer := moves[3].WithoutScore()
	e.heur.insertKiller(2, killer)
	e.scoreMoves(b, moves, board.NoMove, 2, board.NoMove)
	if got := pickNext(moves, 0); !got.Equal(killer) {
		t.Fatalf("first pick %s, want killer %s", got, killer)
	}
}

func TestHistoryRewardAndAging(t *testing.T) {
	var h heuristics
	m := board.Move{From: 12, To: 28, Piece: board.WhitePawn}
	h.rewardHistory(board.White, m, 6)
	if got := h.historyScore(board.White, m); got != 36 {
		t.Fatalf("history after one reward = %d, want 36", got)
	}
	h.punishHistory(board.White, m, 6)
	if got := h.historyScore(board.White, m); got != 30 {
		t.Fatalf("history after punish = %d, want 30", got)
	}
	// Saturation halves the whole table.
	for i := 0; i < 20; i++ {
		h.rewardHistory(board.White, m, 64)
	}
	if got := h.historyScore(board.White, m); got >= historyCap {
		t.Fatalf("history %d not aged below the cap", got)
	}
}

func TestCounterMoves(t *testing.T) {
	var h heuristics
	prev := board.Move{From: 52, To: 36, Piece: board.BlackPawn}
	reply := board.Move{From: 6, To: 21, Piece: board.WhiteKnight}
	h.setCounter(board.White, prev, reply)
	if got := h.counter(board.White, prev); !got.Equal(reply) {
		t.Fatalf("counter = %s, want %s", got, reply)
	}
	if got := h.counter(board.White, board.NoMove); !got.IsNil() {
		t.Fatalf("counter for the null move = %s, want none", got)
	}
}

func TestPickNextIsStableUnderCutoffs(t *testing.T) {
	moves := []board.Move{
		{From: 1, To: 2, Piece: board.WhitePawn, Score: 5},
		{From: 3, To: 4, Piece: board.WhitePawn, Score: 50},
		{From: 5, To: 6, Piece: board.WhitePawn, Score: 20},
	}
	if m := pickNext(moves, 0); m.Score != 50 {
		t.Fatalf("first pick score %d, want 50", m.Score)
	}
	if m := pickNext(moves, 1); m.Score != 20 {
		t.Fatalf("second pick score %d, want 20", m.Score)
	}
	if m := pickNext(moves, 2); m.Score != 5 {
		t.Fatalf("third pick score %d, want 5", m.Score)
	}
}
