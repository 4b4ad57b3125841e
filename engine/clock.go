package engine

import (
	"context"
	"time"
)

// Limits describes one move request's budget. Zero values mean "no limit of
// that kind"; an entirely zero Limits is treated as infinite.
type Limits struct {
	Depth     int
	Nodes     uint64
	MoveTime  time.Duration
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int
	Infinite  bool
}

type clockMode uint8

const (
	modeInfinite clockMode = iota
	modeDepth
	modeNodes
	modeMovetime
	modeTournament
)

// Clock owns the cancellation state for one search: a context deadline for
// the hard budget plus a soft budget that gates starting another iteration.
// The search polls it cooperatively at a node interval; interruption is a
// normal status, never an unwind.
type Clock struct {
	ctx      context.Context
	cancel   context.CancelFunc
	mode     clockMode
	start    time.Time
	soft     time.Duration
	hard     time.Duration
	maxDepth int
	maxNodes uint64
}

// sideTime extracts the mover's remaining time and increment.
func (l Limits) sideTime(white bool) (time.Duration, time.Duration) {
	if white {
		return l.WhiteTime, l.WhiteInc
	}
	return l.BlackTime, l.BlackInc
}

// newClock allocates the move budget. Tournament mode estimates moves
// remaining from the game phase: full boards budget for a long game,
// endgames spend more freely.
func newClock(ctx context.Context, lim Limits, whiteToMove bool, phase int, overhead time.Duration) *Clock {
	c := &Clock{start: time.Now(), maxDepth: maxDepth, mode: modeInfinite}
	remaining, inc := lim.sideTime(whiteToMove)

	switch {
	case lim.Infinite:
	case lim.MoveTime > 0:
		c.mode = modeMovetime
		c.hard = max(lim.MoveTime-overhead, 5*time.Millisecond)
		c.soft = c.hard
	case remaining > 0:
		c.mode = modeTournament
		movesLeft := lim.MovesToGo
		if movesLeft <= 0 {
			movesLeft = 20 + phase*25/24
		}
		c.soft = remaining/time.Duration(movesLeft) + inc*3/4
		if remaining < time.Second {
			c.soft = remaining / 20
		}
		c.soft = clamp(c.soft, 5*time.Millisecond, remaining/2)
		c.hard = clamp(c.soft*5/2, c.soft, max(remaining-overhead, 5*time.Millisecond))
	case lim.Nodes > 0:
		c.mode = modeNodes
		c.maxNodes = lim.Nodes
	case lim.Depth > 0:
		c.mode = modeDepth
	}

	if lim.Depth > 0 {
		c.maxDepth = min(lim.Depth, maxDepth)
	}
	if c.hard > 0 {
		c.ctx, c.cancel = context.WithTimeout(ctx, c.hard)
	} else {
		c.ctx, c.cancel = context.WithCancel(ctx)
	}
	return c
}

// Expired reports whether the hard budget is gone: deadline passed, caller
// cancelled, or the node limit was reached.
func (c *Clock) Expired(nodes uint64) bool {
	if c.ctx.Err() != nil {
		return true
	}
	return c.mode == modeNodes && nodes >= c.maxNodes
}

// shouldDeepen decides whether another iteration may start. With less than
// ~20% of the soft budget left, the next ply is almost certain to be cut
// short, so the time is better left unspent.
func (c *Clock) shouldDeepen(depth int, nodes uint64) bool {
	if depth > c.maxDepth || c.Expired(nodes) {
		return false
	}
	if c.soft > 0 {
		return time.Since(c.start) < c.soft*4/5
	}
	return true
}

// Elapsed is the time since the move request started.
func (c *Clock) Elapsed() time.Duration { return time.Since(c.start) }

// Stop releases the clock's timer resources.
func (c *Clock) Stop() { c.cancel() }
