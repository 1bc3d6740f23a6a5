package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull is returned by SubmitJob when every queue slot is taken.
var ErrQueueFull = errors.New("worker: job queue full")

// ErrStopped is returned by SubmitJob after Stop.
var ErrStopped = errors.New("worker: dispatcher stopped")

// Job represents a unit of work to be executed.
type Job interface {
	Execute(ctx context.Context) error // The method that performs the actual work
	ID() string                        // A unique identifier for the job
}

// Worker is responsible for processing jobs.
// It runs in its own goroutine and receives jobs on its own channel.
type Worker struct {
	ID         int
	WorkerPool chan chan Job // A pool of channels, used to register this worker's job channel
	JobChannel chan Job      // A channel specific to this worker, to receive jobs
	Quit       chan struct{} // Closed to stop the worker
	Wg         *sync.WaitGroup
	Logger     *logrus.Logger
}

// NewWorker creates a new Worker.
func NewWorker(id int, workerPool chan chan Job, quit chan struct{}, wg *sync.WaitGroup, logger *logrus.Logger) Worker {
	return Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		Quit:       quit,
		Wg:         wg,
		Logger:     logger,
	}
}

// Start makes the Worker listen for jobs on its JobChannel. A running job
// receives ctx and is allowed to finish after Quit is closed.
func (w Worker) Start(ctx context.Context) {
	w.Wg.Add(1)
	go func() {
		defer w.Wg.Done()
		log := w.Logger.WithField("worker", w.ID)
		for {
			// Register the current worker's JobChannel to the worker pool.
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-w.Quit:
				log.Debug("Worker stopping")
				return
			}

			select {
			case job := <-w.JobChannel:
				jobLog := log.WithField("job_id", job.ID())
				jobLog.Info("Started job")
				if err := job.Execute(ctx); err != nil {
					jobLog.WithError(err).Error("Job failed")
				} else {
					jobLog.Info("Finished job")
				}
			case <-w.Quit:
				log.Debug("Worker stopping")
				return
			}
		}
	}()
}

// Dispatcher manages a pool of workers and dispatches jobs to them. Jobs wait
// in a bounded queue until a worker is idle.
type Dispatcher struct {
	MaxWorkers int
	WorkerPool chan chan Job // A pool of worker job channels
	JobQueue   chan Job      // A buffered channel for incoming jobs
	Workers    []Worker
	Wg         sync.WaitGroup
	Quit       chan struct{}
	Logger     *logrus.Logger

	mu       sync.Mutex
	stopped  bool
	stopOnce sync.Once
	orphans  []Job // taken from the queue but never started
}

// NewDispatcher creates a new Dispatcher. Non-positive sizes become 1.
func NewDispatcher(maxWorkers int, jobQueueSize int, logger *logrus.Logger) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if jobQueueSize <= 0 {
		jobQueueSize = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		WorkerPool: make(chan chan Job, maxWorkers),
		JobQueue:   make(chan Job, jobQueueSize),
		Workers:    make([]Worker, 0, maxWorkers),
		Quit:       make(chan struct{}),
		Logger:     logger,
	}
}

// Run starts the dispatcher and its workers. ctx is handed to every job.
func (d *Dispatcher) Run(ctx context.Context) {
	d.Logger.WithField("workers", d.MaxWorkers).Info("Dispatcher starting")
	for i := 1; i <= d.MaxWorkers; i++ {
		worker := NewWorker(i, d.WorkerPool, d.Quit, &d.Wg, d.Logger)
		d.Workers = append(d.Workers, worker)
		worker.Start(ctx)
	}

	d.Wg.Add(1)
	go d.dispatch()
}

// dispatch waits for an idle worker and then hands it the next queued job,
// so jobs stay in JobQueue until they can actually start.
func (d *Dispatcher) dispatch() {
	defer d.Wg.Done()
	for {
		select {
		case jobChannel := <-d.WorkerPool:
			select {
			case job := <-d.JobQueue:
				select {
				case jobChannel <- job:
				case <-d.Quit:
					d.mu.Lock()
					d.orphans = append(d.orphans, job)
					d.mu.Unlock()
					return
				}
			case <-d.Quit:
				return
			}
		case <-d.Quit:
			d.Logger.Debug("Dispatcher: stopping dispatch loop")
			return
		}
	}
}

// SubmitJob adds a job to the job queue without blocking.
func (d *Dispatcher) SubmitJob(job Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case d.JobQueue <- job:
		d.Logger.WithField("job_id", job.ID()).Debug("Dispatcher: job queued")
		return nil
	default:
		return ErrQueueFull
	}
}

// Capacity returns how many jobs SubmitJob is guaranteed to accept right now,
// which is the number of free queue slots. Idle workers do not count: a job
// reaches a worker only through the queue.
func (d *Dispatcher) Capacity() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return 0
	}
	return cap(d.JobQueue) - len(d.JobQueue)
}

// Stop gracefully shuts down the dispatcher and all its workers. Running
// jobs finish; queued jobs are dropped and returned.
func (d *Dispatcher) Stop() []Job {
	var dropped []Job
	d.stopOnce.Do(func() {
		d.Logger.Info("Dispatcher: initiating shutdown")
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()

		close(d.Quit)
		d.Wg.Wait()

		dropped = append(dropped, d.orphans...)
		for len(d.JobQueue) > 0 {
			dropped = append(dropped, <-d.JobQueue)
		}
		d.Logger.WithField("dropped", len(dropped)).Info("Dispatcher: shutdown complete")
	})
	return dropped
}
