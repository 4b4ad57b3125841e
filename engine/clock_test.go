package engine

import (
	"context"
	"testing"
	"time"
)

func TestClockInfinite(t *testing.T) {
	c := newClock(context.Background(), Limits{Infinite: true}, true, 24, 30*time.Millisecond)
	defer c.Stop()
	if c.Expired(1 << 30) {
		t.Fatal("infinite clock expired")
	}
	if !c.shouldDeepen(40, 0) {
		t.Fatal("infinite clock refused to deepen")
	}
}

func TestClockDepthLimit(t *testing.T) {
	c := newClock(context.Background(), Limits{Depth: 5}, true, 24, 0)
	defer c.Stop()
	if !c.shouldDeepen(5, 0) {
		t.Fatal("refused the final allowed depth")
	}
	if c.shouldDeepen(6, 0) {
		t.Fatal("deepened past the depth limit")
	}
	if c.Expired(0) {
		t.Fatal("depth-limited clock expired on time")
	}
}

func TestClockNodeLimit(t *testing.T) {
	c := newClock(context.Background(), Limits{Nodes: 1000}, true, 24, 0)
	defer c.Stop()
	if c.Expired(999) {
		t.Fatal("expired below the node limit")
	}
	if !c.Expired(1000) {
		t.Fatal("did not expire at the node limit")
	}
}

func TestClockMoveTime(t *testing.T) {
	c := newClock(context.Background(), Limits{MoveTime: 20 * time.Millisecond}, true, 24, 5*time.Millisecond)
	defer c.Stop()
	if c.hard != 15*time.Millisecond || c.soft != c.hard {
		t.Fatalf("budget = %v/%v, want 15ms/15ms", c.soft, c.hard)
	}
	if c.Expired(0) {
		t.Fatal("expired immediately")
	}
	time.Sleep(30 * time.Millisecond)
	if !c.Expired(0) {
		t.Fatal("hard deadline did not fire")
	}
}

func TestClockTournamentBudget(t *testing.T) {
	lim := Limits{WhiteTime: time.Minute, WhiteInc: time.Second, BlackTime: time.Hour}
	c := newClock(context.Background(), lim, true, 24, 30*time.Millisecond)
	defer c.Stop()
	if c.soft <= 0 || c.hard < c.soft {
		t.Fatalf("budget inverted: soft %v hard %v", c.soft, c.hard)
	}
	if c.soft > 30*time.Second {
		t.Fatalf("soft budget %v spends more than half the clock", c.soft)
	}

	// Near flagging, the budget collapses but never reaches zero.
	panicked := newClock(context.Background(), Limits{WhiteTime: 200 * time.Millisecond}, true, 24, 30*time.Millisecond)
	defer panicked.Stop()
	if panicked.soft <= 0 || panicked.hard > 200*time.Millisecond {
		t.Fatalf("panic budget = %v/%v", panicked.soft, panicked.hard)
	}
}

func TestClockBlackUsesOwnTime(t *testing.T) {
	lim := Limits{WhiteTime: time.Hour, BlackTime: 10 * time.Second}
	c := newClock(context.Background(), lim, false, 24, 0)
	defer c.Stop()
	if c.soft > 5*time.Second {
		t.Fatalf("black budget %v drawn from white's clock", c.soft)
	}
}

func TestClockCallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := newClock(ctx, Limits{Infinite: true}, true, 24, 0)
	defer c.Stop()
	if c.Expired(0) {
		t.Fatal("expired before cancel")
	}
	cancel()
	if !c.Expired(0) {
		t.Fatal("caller cancellation ignored")
	}
}
