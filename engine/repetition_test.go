package engine

import "testing"

func TestRepetitionDetectsTwoFold(t *testing.T) {
	var s repetitionStack
	s.seed([]uint64{100}, 100, 0)
	s.push(200, 1)
	s.push(100, 2)
	if !s.isRepetition() {
		t.Fatal("two-fold repetition on the search path not detected")
	}
	s.pop()
	if s.isRepetition() {
		t.Fatal("repetition reported after pop")
	}
}

func TestRepetitionRespectsSideToMove(t *testing.T) {
	var s repetitionStack
	s.seed([]uint64{100}, 100, 0)
	s.push(100, 1) // same hash one ply later cannot be the same position
	if s.isRepetition() {
		t.Fatal("matched a position with the other side to move")
	}
}

func TestRepetitionBoundedByRule50(t *testing.T) {
	var s repetitionStack
	s.seed([]uint64{100}, 100, 0)
	s.push(200, 1)
	// A capture or pawn move resets the clock, so nothing before it can
	// repeat.
	s.push(100, 0)
	if s.isRepetition() {
		t.Fatal("matched across an irreversible move")
	}
}

func TestRepetitionSeedsGameHistory(t *testing.T) {
	var s repetitionStack
	// The game reached hash 300 twice already; the current position is 500
	// with a 50-move clock of 4.
	s.seed([]uint64{300, 400, 300, 400, 500}, 500, 4)
	s.push(600, 5)
	s.push(300, 6)
	if !s.isRepetition() {
		t.Fatal("repetition against the pre-root game history not detected")
	}
}

func TestRepetitionReseedClearsOldState(t *testing.T) {
	var s repetitionStack
	s.seed([]uint64{1, 2, 1}, 1, 4)
	s.seed([]uint64{9}, 9, 0)
	s.push(8, 1)
	s.push(9, 2)
	if !s.isRepetition() {
		t.Fatal("repetition missed after reseed")
	}
	if len(s.entries) != 3 {
		t.Fatalf("reseed kept stale entries: %d", len(s.entries))
	}
}
