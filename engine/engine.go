// Package engine implements the search: iterative-deepening negamax with
// alpha-beta pruning, a clustered transposition table, move ordering
// heuristics, quiescence, and cooperative time control. All search state
// lives in an explicit Engine owned by the caller; there are no package
// singletons.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"heron-engine/board"
)

const (
	maxPly   = 128
	maxDepth = 64

	// Infinity bounds the alpha-beta window; MateValue minus the mating
	// ply is the checkmate score, so shallower mates always score higher.
	Infinity  = 32000
	MateValue = 31000
	mateBound = MateValue - maxPly
	DrawScore = 0

	aspirationWindow = 35
	nodePollMask     = 2047
)

// Config carries the engine options. Zero values get defaults from New.
type Config struct {
	HashMB       int
	MoveOverhead time.Duration
	Logger       zerolog.Logger
	// InfoWriter receives UCI "info" lines during search; nil discards.
	InfoWriter io.Writer
}

type searchStats struct {
	ttCuts       uint64
	nullCuts     uint64
	betaCuts     uint64
	latePrunes   uint64
	futilePrunes uint64
}

// Engine is the search context: transposition table, ordering heuristics,
// the path-scoped repetition stack, clock, and per-ply scratch buffers.
type Engine struct {
	cfg  Config
	log  zerolog.Logger
	info io.Writer
	prt  *message.Printer

	tt    *TransTable
	heur  heuristics
	stack repetitionStack
	clock *Clock

	lmr      [maxDepth + 1][64]int8
	moveBufs [maxPly + 2][]board.Move
	pvTable  [maxPly + 2][maxPly + 2]board.Move
	pvLen    [maxPly + 2]int
	line     [maxPly + 2]board.Move

	nodes   uint64
	stopped bool
	stats   searchStats
}

// Result is the outcome of one move request. Move is never nil for a
// non-terminal position, whatever the budget.
type Result struct {
	Move  board.Move
	Score int
	Depth int
	Nodes uint64
	Time  time.Duration
	PV    PVLine
}

// New builds an engine from cfg, applying defaults for zero fields.
func New(cfg Config) *Engine {
	if cfg.HashMB <= 0 {
		cfg.HashMB = 64
	}
	if cfg.MoveOverhead <= 0 {
		cfg.MoveOverhead = 30 * time.Millisecond
	}
	e := &Engine{
		cfg:  cfg,
		log:  cfg.Logger,
		info: cfg.InfoWriter,
		prt:  message.NewPrinter(language.English),
		tt:   NewTransTable(cfg.HashMB),
	}
	for d := 1; d <= maxDepth; d++ {
		for m := 1; m < 64; m++ {
			e.lmr[d][m] = int8(1 + d/8 + m/16)
		}
	}
	for i := range e.moveBufs {
		e.moveBufs[i] = make([]board.Move, 0, board.MaxMoves)
	}
	return e
}

// NewGame clears all cross-move state, for the "ucinewgame" boundary.
func (e *Engine) NewGame() {
	e.tt.Clear()
	e.heur.clear()
}

// SetHashSize reallocates the transposition table.
func (e *Engine) SetHashSize(mb int) {
	e.tt = NewTransTable(mb)
}

// SetMoveOverhead adjusts the per-move latency allowance.
func (e *Engine) SetMoveOverhead(d time.Duration) {
	e.cfg.MoveOverhead = d
}

func formatScore(score int) string {
	switch {
	case score >= mateBound:
		return fmt.Sprintf("mate %d", (MateValue-score+1)/2)
	case score <= -mateBound:
		return fmt.Sprintf("mate %d", -(MateValue+score+1)/2)
	default:
		return fmt.Sprintf("cp %d", score)
	}
}

func (e *Engine) printInfo(depth, score int, pv PVLine) {
	if e.info == nil {
		return
	}
	elapsed := e.clock.Elapsed()
	nps := int64(0)
	if ns := elapsed.Nanoseconds(); ns > 0 {
		nps = int64(e.nodes) * int64(time.Second) / ns
	}
	fmt.Fprintf(e.info, "info depth %d score %s nodes %d nps %d time %d pv %s\n",
		depth, formatScore(score), e.nodes, nps, elapsed.Milliseconds(), pv)
}

func (e *Engine) logSummary(r Result) {
	e.log.Debug().
		Str("bestmove", r.Move.String()).
		Int("depth", r.Depth).
		Str("score", formatScore(r.Score)).
		Str("nodes", e.prt.Sprintf("%d", r.Nodes)).
		Dur("time", r.Time).
		Uint64("tt_cuts", e.stats.ttCuts).
		Uint64("null_cuts", e.stats.nullCuts).
		Uint64("beta_cuts", e.stats.betaCuts).
		Uint64("late_prunes", e.stats.latePrunes).
		Uint64("futility_prunes", e.stats.futilePrunes).
		Msg("search finished")
}
