package board

// Status is the game-level outcome of a position.
type Status uint8

const (
	InProgress Status = iota
	WhiteWins
	BlackWins
	Draw
)

func (s Status) String() string {
	switch s {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// IsDrawByFiftyMove reports 50 full moves (100 half-moves) without a pawn
// move or capture. A pure scoring/status decision; it never affects move
// legality.
func (b *Board) IsDrawByFiftyMove() bool { return b.halfmove >= 100 }

// IsDrawByRepetition reports a triple repetition. history holds the hash of
// every position reached this game, the current one included.
func (b *Board) IsDrawByRepetition(history []uint64) bool {
	count := 0
	for _, h := range history {
		if h == b.hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// Status classifies the position: checkmate maps to the winner, stalemate,
// 50-move expiry, and triple repetition map to a draw.
func (b *Board) Status(history []uint64) Status {
	if len(b.GenerateMoves()) == 0 {
		if b.InCheck(b.sideToMove) {
			if b.sideToMove == White {
				return BlackWins
			}
			return WhiteWins
		}
		return Draw
	}
	if b.IsDrawByFiftyMove() || b.IsDrawByRepetition(history) {
		return Draw
	}
	return InProgress
}
