package engine

import (
	"context"
	"time"

	"heron-engine/board"
)

// Search picks a move for b under the given limits. history holds the hash
// of every position reached this game (current included) so repetitions
// across the root are detected. Interruption through ctx or the clock is a
// normal outcome: the deepest fully completed iteration's result is
// returned, and at least a depth-1 choice exists from the first ordered
// legal move.
func (e *Engine) Search(ctx context.Context, b *board.Board, history []uint64, lim Limits) Result {
	start := time.Now()
	e.nodes = 0
	e.stopped = false
	e.stats = searchStats{}
	e.tt.NextGeneration()
	e.stack.seed(history, b.Hash(), b.HalfmoveClock())
	e.clock = newClock(ctx, lim, b.SideToMove() == board.White, gamePhase(b), e.cfg.MoveOverhead)
	defer e.clock.Stop()

	rootMoves := b.GenerateMoves()
	if len(rootMoves) == 0 {
		score := DrawScore
		if b.InCheck(b.SideToMove()) {
			score = -MateValue
		}
		return Result{Score: score, Time: time.Since(start)}
	}

	var ttMove board.Move
	if entry, ok := e.tt.Probe(b.Hash()); ok {
		ttMove = entry.Move
	}
	e.scoreMoves(b, rootMoves, ttMove, 0, board.NoMove)
	best := Result{Move: pickNext(rootMoves, 0).WithoutScore()}

	score := 0
iterate:
	for depth := 1; depth < maxPly; depth++ {
		if depth > 1 && !e.clock.shouldDeepen(depth, e.nodes) {
			break
		}
		alpha, beta := -Infinity, Infinity
		window := aspirationWindow
		if depth >= 4 {
			alpha, beta = score-window, score+window
		}
		for {
			s, completed := e.searchRoot(b, rootMoves, depth, alpha, beta)
			if !completed {
				break iterate
			}
			if s <= alpha {
				alpha = max(-Infinity, alpha-window)
				window *= 2
				continue
			}
			if s >= beta {
				beta = min(Infinity, beta+window)
				window *= 2
				continue
			}
			score = s
			break
		}
		best = Result{Move: e.pvTable[0][0], Score: score, Depth: depth, PV: e.rootPV()}
		e.printInfo(depth, score, best.PV)
	}

	best.Nodes = e.nodes
	best.Time = time.Since(start)
	e.logSummary(best)
	return best
}

// searchRoot runs one full-width iteration. Every legal move is scored so a
// best move always exists; the second return is false when the iteration
// was interrupted and its partial result must be discarded.
func (e *Engine) searchRoot(b *board.Board, moves []board.Move, depth, alpha, beta int) (int, bool) {
	e.pvLen[0] = 0
	var ttMove board.Move
	if entry, ok := e.tt.Probe(b.Hash()); ok {
		ttMove = entry.Move
	}
	e.scoreMoves(b, moves, ttMove, 0, board.NoMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	bound := BoundUpper
	for i := range moves {
		m := pickNext(moves, i)
		ok, u := b.MakeMove(m)
		if !ok {
			b.UnmakeMove(m, u)
			continue
		}
		e.line[0] = m
		e.stack.push(b.Hash(), b.HalfmoveClock())
		e.pvLen[1] = 0
		var s int
		if i == 0 {
			s = -e.alphabeta(b, depth-1, 1, -beta, -alpha, true, true)
		} else {
			s = -e.alphabeta(b, depth-1, 1, -alpha-1, -alpha, false, true)
			if s > alpha && s < beta && !e.stopped {
				s = -e.alphabeta(b, depth-1, 1, -beta, -alpha, true, true)
			}
		}
		e.stack.pop()
		b.UnmakeMove(m, u)
		if e.stopped {
			return 0, false
		}
		if s > bestScore {
			bestScore = s
			bestMove = m.WithoutScore()
			if s > alpha {
				alpha = s
				bound = BoundExact
				e.updatePV(0, m)
				if alpha >= beta {
					bound = BoundLower
					break
				}
			}
		}
	}
	e.tt.Store(b.Hash(), bestMove, bestScore, depth, 0, bound)
	return bestScore, true
}

// alphabeta is the negamax recursion. It returns a score whose
// interpretation follows the usual bound semantics against the window;
// when e.stopped is set the value is meaningless and every ancestor
// discards it.
func (e *Engine) alphabeta(b *board.Board, depth, ply, alpha, beta int, pvNode, nullOK bool) int {
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

	// Mate distance pruning: a mate from here can never beat one already
	// found closer to the root.
	alpha = max(alpha, -MateValue+ply)
	beta = min(beta, MateValue-ply-1)
	if alpha >= beta {
		return alpha
	}

	us := b.SideToMove()
	inCheck := b.InCheck(us)
	if inCheck {
		depth++
	}
	if depth <= 0 {
		return e.quiescence(b, ply, alpha, beta)
	}

	ttMove := board.NoMove
	if entry, ok := e.tt.Probe(b.Hash()); ok {
		ttMove = entry.Move
		// An exact hit near the 50-move boundary may misrepresent a
		// repetition-sensitive position, so it is not trusted there.
		if !pvNode && int(entry.Depth) >= depth && b.HalfmoveClock() < 90 {
			s := scoreFromTT(entry.Score, ply)
			switch entry.Bound {
			case BoundExact:
				e.stats.ttCuts++
				return s
			case BoundLower:
				if s >= beta {
					e.stats.ttCuts++
					return s
				}
			case BoundUpper:
				if s <= alpha {
					e.stats.ttCuts++
					return s
				}
			}
		}
	}

	staticEval := Evaluate(b)

	if !pvNode && !inCheck && abs(beta) < mateBound {
		// Reverse futility: a static score far above beta at shallow
		// depth almost never drops back under it.
		if depth <= 6 && staticEval-90*depth >= beta {
			return staticEval
		}
		// Null move: if passing the turn still beats beta at reduced
		// depth, the position is too good to need full width. Unsound
		// in check and in pawn endings where zugzwang rules.
		if nullOK && depth >= 3 && staticEval >= beta && e.hasNonPawnMaterial(b, us) {
			r := 3 + depth/5
			u := b.MakeNullMove()
			e.line[ply] = board.NoMove
			e.stack.push(b.Hash(), 0)
			s := -e.alphabeta(b, depth-1-r, ply+1, -beta, -beta+1, false, false)
			e.stack.pop()
			b.UnmakeNullMove(u)
			if e.stopped {
				return 0
			}
			if s >= beta {
				if s >= mateBound {
					s = beta
				}
				e.stats.nullCuts++
				return s
			}
		}
	}

	moves := b.GenerateMovesInto(e.moveBufs[ply])
	e.moveBufs[ply] = moves
	if len(moves) == 0 {
		if inCheck {
			return -MateValue + ply
		}
		return DrawScore
	}
	e.scoreMoves(b, moves, ttMove, ply, e.line[ply-1])

	bestScore := -Infinity
	bestMove := board.NoMove
	bound := BoundUpper
	quietsTried := 0
	for i := range moves {
		m := pickNext(moves, i)
		isQuiet := m.IsQuiet()
		if isQuiet {
			quietsTried++
			if !pvNode && !inCheck && bestScore > -mateBound {
				if depth <= 3 && quietsTried > 3+depth*depth {
					e.stats.latePrunes++
					continue
				}
				if depth <= 4 && staticEval+100*depth+120 <= alpha {
					e.stats.futilePrunes++
					continue
				}
			}
		}

		ok, u := b.MakeMove(m)
		if !ok {
			b.UnmakeMove(m, u)
			continue
		}
		e.line[ply] = m
		e.stack.push(b.Hash(), b.HalfmoveClock())
		s := e.searchMove(b, m, i, depth, ply, alpha, beta, pvNode, isQuiet)
		e.stack.pop()
		b.UnmakeMove(m, u)
		if e.stopped {
			return 0
		}

		if s > bestScore {
			bestScore = s
			bestMove = m.WithoutScore()
			if s > alpha {
				alpha = s
				bound = BoundExact
				e.updatePV(ply, m)
				if alpha >= beta {
					bound = BoundLower
					e.stats.betaCuts++
					if isQuiet {
						e.recordQuietCutoff(us, m, moves[:i], ply, depth, s)
					}
					break
				}
			}
		}
	}

	e.tt.Store(b.Hash(), bestMove, bestScore, depth, ply, bound)
	return bestScore
}

// searchMove runs the principal-variation scheme on one child: first move
// full window, the rest through a zero-window probe, late quiet moves at a
// reduced depth first. Any probe that beats alpha is re-searched wide.
func (e *Engine) searchMove(b *board.Board, m board.Move, idx, depth, ply, alpha, beta int, pvNode, isQuiet bool) int {
	newDepth := depth - 1
	if idx == 0 {
		return -e.alphabeta(b, newDepth, ply+1, -beta, -alpha, pvNode, true)
	}

	r := 0
	if isQuiet && depth >= 3 && idx >= 3 && !b.InCheck(b.SideToMove()) {
		r = int(e.lmr[min(depth, maxDepth)][min(idx, 63)])
		if pvNode {
			r--
		}
		r = clamp(r, 0, newDepth-1)
	}

	s := -e.alphabeta(b, newDepth-r, ply+1, -alpha-1, -alpha, false, true)
	if s > alpha && r > 0 && !e.stopped {
		s = -e.alphabeta(b, newDepth, ply+1, -alpha-1, -alpha, false, true)
	}
	if s > alpha && s < beta && pvNode && !e.stopped {
		s = -e.alphabeta(b, newDepth, ply+1, -beta, -alpha, true, true)
	}
	return s
}

// recordQuietCutoff feeds the ordering heuristics after a quiet fail-high:
// killer slots, the mate killer on mate scores, the counter-move reply, a
// history reward, and a small penalty for the quiets tried before it.
func (e *Engine) recordQuietCutoff(us board.Color, m board.Move, tried []board.Move, ply, depth, score int) {
	e.heur.insertKiller(ply, m)
	if score >= mateBound {
		e.heur.mateKillers[ply] = m
	}
	e.heur.setCounter(us, e.line[ply-1], m)
	e.heur.rewardHistory(us, m, depth)
	for _, t := range tried {
		if t.IsQuiet() && !t.Equal(m) {
			e.heur.punishHistory(us, t, depth)
		}
	}
}

// hasNonPawnMaterial gates null-move pruning away from pawn endings.
func (e *Engine) hasNonPawnMaterial(b *board.Board, c board.Color) bool {
	return b.Pieces(c, board.Knight)|b.Pieces(c, board.Bishop)|
		b.Pieces(c, board.Rook)|b.Pieces(c, board.Queen) != 0
}
