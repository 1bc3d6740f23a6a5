package poll

import (
	"context"
	"errors"
	"testing"
	"time"
)

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func TestWaitDone(t *testing.T) {
	p := New(time.Second, 5)
	p.sleep = noSleep
	var transitions []State
	p.OnTransition = func(_, to State, _ int) { transitions = append(transitions, to) }

	calls := 0
	got, state, err := Wait(context.Background(), p, func(context.Context) (string, Outcome, error) {
		calls++
		if calls < 3 {
			return "", Pending, nil
		}
		return "transcript", Done, nil
	})
	if err != nil || got != "transcript" || state != StateDone {
		t.Fatalf("Wait() = %q, %s, %v", got, state, err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 checks, got %d", calls)
	}
	if len(transitions) != 2 || transitions[0] != StatePolling || transitions[1] != StateDone {
		t.Fatalf("unexpected transitions %v", transitions)
	}
}

func TestWaitTimesOut(t *testing.T) {
	p := New(10*time.Second, 60)
	p.sleep = noSleep
	calls := 0
	_, state, err := Wait(context.Background(), p, func(context.Context) (int, Outcome, error) {
		calls++
		return 0, Pending, nil
	})
	if !errors.Is(err, ErrTimedOut) || state != StateTimedOut {
		t.Fatalf("Wait() = %s, %v", state, err)
	}
	if calls != 60 {
		t.Fatalf("expected exactly 60 checks, got %d", calls)
	}
	if !state.Terminal() {
		t.Fatalf("timed-out should be terminal")
	}
}

func TestWaitFailed(t *testing.T) {
	p := New(0, 3)
	_, state, err := Wait(context.Background(), p, func(context.Context) (int, Outcome, error) {
		return 0, Failed, nil
	})
	if !errors.Is(err, ErrFailed) || state != StateFailed {
		t.Fatalf("Wait() = %s, %v", state, err)
	}
}

func TestWaitCheckError(t *testing.T) {
	boom := errors.New("boom")
	p := New(0, 3)
	_, state, err := Wait(context.Background(), p, func(context.Context) (int, Outcome, error) {
		return 0, Pending, boom
	})
	if !errors.Is(err, boom) || state != StateFailed {
		t.Fatalf("Wait() = %s, %v", state, err)
	}
}

func TestWaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(time.Hour, 3)
	calls := 0
	_, _, err := Wait(ctx, p, func(context.Context) (int, Outcome, error) {
		calls++
		cancel()
		return 0, Pending, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one check before cancellation, got %d", calls)
	}
}
