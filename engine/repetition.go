package engine

// stateEntry records one position on the root-to-node path: its hash and the
// 50-move clock when it was reached. The clock bounds how far back a
// repetition can possibly match.
type stateEntry struct {
	hash   uint64
	rule50 int
}

// repetitionStack is path-scoped: pushed when a move is applied during
// search, popped when it is undone, seeded from the game history so
// repetitions across the root are seen.
type repetitionStack struct {
	entries []stateEntry
}

// seed loads the game history (hashes in order, current position last) and
// back-fills plausible clocks from the current one.
func (s *repetitionStack) seed(history []uint64, currentHash uint64, rule50 int) {
	s.entries = s.entries[:0]
	n := len(history)
	for i, h := range history {
		s.entries = append(s.entries, stateEntry{hash: h, rule50: max(0, rule50-(n-1-i))})
	}
	if n == 0 || history[n-1] != currentHash {
		s.entries = append(s.entries, stateEntry{hash: currentHash, rule50: rule50})
	}
}

func (s *repetitionStack) push(hash uint64, rule50 int) {
	s.entries = append(s.entries, stateEntry{hash: hash, rule50: rule50})
}

func (s *repetitionStack) pop() {
	s.entries = s.entries[:len(s.entries)-1]
}

// isRepetition reports whether the current (top) position occurred before
// within its 50-move window. A single prior occurrence counts: inside the
// search tree a two-fold repetition already proves the draw is available.
func (s *repetitionStack) isRepetition() bool {
	n := len(s.entries)
	if n < 3 {
		return false
	}
	top := s.entries[n-1]
	limit := max(0, n-1-top.rule50)
	for i := n - 3; i >= limit; i -= 2 {
		if s.entries[i].hash == top.hash {
			return true
		}
	}
	return false
}
