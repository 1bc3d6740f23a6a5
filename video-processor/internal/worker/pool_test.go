package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

type funcJob struct {
	id string
	fn func(ctx context.Context) error
}

func (j funcJob) ID() string                        { return j.id }
func (j funcJob) Execute(ctx context.Context) error { return j.fn(ctx) }

func TestDispatcherRunsAllJobs(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	d := NewDispatcher(2, 5, logger)
	d.Run(context.Background())
	defer d.Stop()

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for _, id := range []string{"a", "b", "c", "d"} {
		id := id
		wg.Add(1)
		err := d.SubmitJob(funcJob{id: id, fn: func(context.Context) error {
			defer wg.Done()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
			if id == "c" {
				return errors.New("boom")
			}
			return nil
		}})
		if err != nil {
			t.Fatalf("submit %s: %v", id, err)
		}
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs did not finish")
	}
	if len(seen) != 4 {
		t.Fatalf("seen = %v", seen)
	}
}

func TestDispatcherRejectsWhenFull(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	d := NewDispatcher(1, 1, logger)
	d.Run(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	blocking := funcJob{id: "running", fn: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}
	noop := func(context.Context) error { return nil }

	if err := d.SubmitJob(blocking); err != nil {
		t.Fatal(err)
	}
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not start")
	}
	if err := d.SubmitJob(funcJob{id: "queued", fn: noop}); err != nil {
		t.Fatalf("queued submit: %v", err)
	}
	if got := d.Capacity(); got != 0 {
		t.Fatalf("Capacity = %d, want 0", got)
	}
	if err := d.SubmitJob(funcJob{id: "overflow", fn: noop}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("overflow submit err = %v, want ErrQueueFull", err)
	}

	close(release)
	d.Stop()
}

func TestStopReturnsQueuedJobs(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	d := NewDispatcher(1, 2, logger)
	if got := d.Capacity(); got != 2 {
		t.Fatalf("Capacity = %d, want 2", got)
	}
	if err := d.SubmitJob(funcJob{id: "never-run", fn: func(context.Context) error { return nil }}); err != nil {
		t.Fatal(err)
	}

	dropped := d.Stop()
	if len(dropped) != 1 || dropped[0].ID() != "never-run" {
		t.Fatalf("dropped = %v", dropped)
	}
	if err := d.SubmitJob(funcJob{id: "late"}); !errors.Is(err, ErrStopped) {
		t.Fatalf("err = %v, want ErrStopped", err)
	}
	if d.Stop() != nil {
		t.Fatal("second Stop returned jobs")
	}
	if got := d.Capacity(); got != 0 {
		t.Fatalf("Capacity after Stop = %d, want 0", got)
	}
}

func TestDispatcherAcceptsFullCapacityBurst(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	d := NewDispatcher(2, 3, logger)
	d.Run(context.Background())

	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(2)
	for _, id := range []string{"busy-1", "busy-2"} {
		if err := d.SubmitJob(funcJob{id: id, fn: func(context.Context) error {
			started.Done()
			<-release
			return nil
		}}); err != nil {
			t.Fatal(err)
		}
	}
	started.Wait()

	// Both workers are busy, so a burst the size of Capacity must fit the queue.
	free := d.Capacity()
	if free != 3 {
		t.Fatalf("Capacity = %d, want 3", free)
	}
	for i := 0; i < free; i++ {
		if err := d.SubmitJob(funcJob{id: "burst", fn: func(context.Context) error { return nil }}); err != nil {
			t.Fatalf("submit %d of %d: %v", i+1, free, err)
		}
	}
	if err := d.SubmitJob(funcJob{id: "extra", fn: func(context.Context) error { return nil }}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("extra submit err = %v, want ErrQueueFull", err)
	}

	close(release)
	d.Stop()
}
