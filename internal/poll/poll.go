// Package poll waits on long running remote work with a fixed interval and a
// fixed attempt budget.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimedOut is returned when the attempt budget runs out.
	ErrTimedOut = errors.New("poll: attempt budget exhausted")
	// ErrFailed is returned when the remote side reports failure.
	ErrFailed = errors.New("poll: remote work failed")
)

// State is a step of the polling state machine:
// submitted -> polling -> done | failed | timed-out.
type State string

const (
	StateSubmitted State = "submitted"
	StatePolling   State = "polling"
	StateDone      State = "done"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed-out"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed || s == StateTimedOut
}

// Outcome is what a single check observed.
type Outcome int

const (
	Pending Outcome = iota
	Done
	Failed
)

// Check queries the remote side once. A non-nil error is terminal.
type Check[T any] func(ctx context.Context) (T, Outcome, error)

// Poller holds the polling budget.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State, attempt int)

	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a Poller with the given budget.
func New(interval time.Duration, maxAttempts int) *Poller {
	return &Poller{Interval: interval, MaxAttempts: maxAttempts}
}

// Wait runs check until it reports Done or Failed, the budget is spent, or
// ctx is cancelled. The first check runs immediately and later ones are
// spaced by Interval.
func Wait[T any](ctx context.Context, p *Poller, check Check[T]) (T, State, error) {
	var zero T
	state := StateSubmitted
	move := func(to State, attempt int) {
		if p.OnTransition != nil && to != state {
			p.OnTransition(state, to, attempt)
		}
		state = to
	}

	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, p.Interval); err != nil {
				move(StateFailed, attempt)
				return zero, state, err
			}
		}
		move(StatePolling, attempt)

		value, outcome, err := check(ctx)
		if err != nil {
			move(StateFailed, attempt)
			return zero, state, fmt.Errorf("poll attempt %d: %w", attempt, err)
		}
		switch outcome {
		case Done:
			move(StateDone, attempt)
			return value, state, nil
		case Failed:
			move(StateFailed, attempt)
			return value, state, ErrFailed
		}
	}
	move(StateTimedOut, attempts)
	return zero, state, fmt.Errorf("%w after %d attempts", ErrTimedOut, attempts)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
