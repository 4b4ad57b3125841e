package engine

import "heron-engine/board"

// Ordering score bands, highest tried first: TT move, mate killer, queen
// promotions, winning/even captures, killers, castling, counter move, then
// history with a piece-square tiebreak. Losing captures sink below quiets.
const (
	scoreTTMove     int16 = 31000
	scoreMateKiller int16 = 29000
	scoreQueenPromo int16 = 28000
	scoreGoodCap    int16 = 20000
	scoreKiller0    int16 = 18000
	scoreKiller1    int16 = 17500
	scoreCastle     int16 = 17000
	scoreCounter    int16 = 16500
	scoreBadCap     int16 = 1000
)

// mvvLVA prefers the most valuable victim, least valuable attacker.
func mvvLVA(m board.Move) int16 {
	return int16(10*pieceValue[m.Captured.Type()]/100 - pieceValue[m.Piece.Type()]/100)
}

// scoreMoves assigns ordering scores in place. prev is the opponent move
// that led here, for the counter-move bonus.
func (e *Engine) scoreMoves(b *board.Board, moves []board.Move, ttMove board.Move, ply int, prev board.Move) {
	us := b.SideToMove()
	counter := e.heur.counter(us, prev)
	for i := range moves {
		m := &moves[i]
		switch {
		case m.Equal(ttMove):
			m.Score = scoreTTMove
		case e.heur.mateKillers[ply].Equal(*m):
			m.Score = scoreMateKiller
		case m.Promotion == board.Queen:
			m.Score = scoreQueenPromo + mvvLVA(*m)
		case m.IsCapture():
			if see(b, *m) >= 0 {
				m.Score = scoreGoodCap + mvvLVA(*m)
			} else {
				m.Score = scoreBadCap + mvvLVA(*m)
			}
		case e.heur.isKiller(ply, *m) == 0:
			m.Score = scoreKiller0
		case e.heur.isKiller(ply, *m) == 1:
			m.Score = scoreKiller1
		case m.Kind == board.Castle:
			m.Score = scoreCastle
		case m.Equal(counter):
			m.Score = scoreCounter
		default:
			h := int16(min(e.heur.historyScore(us, *m), int32(15000)))
			m.Score = h + pstDelta(*m)
		}
	}
}

// scoreCaptures is the quiescence variant: SEE-first with MVV-LVA tiebreak.
func (e *Engine) scoreCaptures(b *board.Board, moves []board.Move) {
	for i := range moves {
		m := &moves[i]
		switch {
		case m.Promotion == board.Queen:
			m.Score = scoreQueenPromo + mvvLVA(*m)
		case m.IsCapture():
			m.Score = scoreGoodCap + mvvLVA(*m)
		default:
			m.Score = pstDelta(*m)
		}
	}
}

// pstDelta is the positional tiebreak: does the move improve the piece's
// square?
func pstDelta(m board.Move) int16 {
	pt := m.Piece.Type()
	if pt == board.King {
		return 0
	}
	c := m.Piece.PieceColor()
	return int16((pstScore(c, pt, m.To, 12) - pstScore(c, pt, m.From, 12)) / 2)
}

// pickNext selection-sorts the best remaining move into position i and
// returns it. Full sorts waste work when a cutoff ends the loop early.
func pickNext(moves []board.Move, i int) board.Move {
	best := i
	for j := i + 1; j < len(moves); j++ {
		if moves[j].Score > moves[best].Score {
			best = j
		}
	}
	moves[i], moves[best] = moves[best], moves[i]
	return moves[i]
}
