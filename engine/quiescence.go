package engine

import "heron-engine/board"

// quiescence settles tactically noisy leaves: the static score stands pat,
// then only captures and queen promotions are examined, SEE-ordered, until
// the position is quiet. In check it searches every evasion instead, so
// mates on the horizon are scored correctly.
func (e *Engine) quiescence(b *board.Board, ply, alpha, beta int) int {
	e.pvLen[ply] = 0
	e.nodes++
	if e.nodes&nodePollMask == 0 && e.clock.Expired(e.nodes) {
		e.stopped = true
	}
	if e.stopped {
		return 0
	}
	if ply >= maxPly {
		return Evaluate(b)
	}
	if b.IsDrawByFiftyMove() || e.stack.isRepetition() {
		return DrawScore
	}

	inCheck := b.InCheck(b.SideToMove())
	bestScore := -Infinity
	standPat := -Infinity
	var moves []board.Move
	if inCheck {
		moves = b.GenerateMovesInto(e.moveBufs[ply])
		if len(moves) == 0 {
			return -MateValue + ply
		}
	} else {
		standPat = Evaluate(b)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
		bestScore = standPat
		moves = b.GenerateCapturesInto(e.moveBufs[ply])
	}
	e.moveBufs[ply] = moves
	e.scoreCaptures(b, moves)

	for i := range moves {
		m := pickNext(moves, i)
		if !inCheck && m.IsCapture() {
			// Losing captures cannot raise the stand-pat floor.
			if see(b, m) < 0 {
				continue
			}
			// Delta: even winning the piece outright leaves alpha out
			// of reach.
			if !m.IsPromotion() && standPat+seeValue[m.Captured.Type()]+200 <= alpha {
				continue
			}
		}

		ok, u := b.MakeMove(m)
		if !ok {
			b.UnmakeMove(m, u)
			continue
		}
		e.line[ply] = m
		e.stack.push(b.Hash(), b.HalfmoveClock())
		s := -e.quiescence(b, ply+1, -beta, -alpha)
		e.stack.pop()
		b.UnmakeMove(m, u)
		if e.stopped {
			return 0
		}

		if s > bestScore {
			bestScore = s
			if s > alpha {
				alpha = s
				if alpha >= beta {
					break
				}
			}
		}
	}
	return bestScore
}
