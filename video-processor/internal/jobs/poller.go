package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/internal/renderjob"
	"github.com/kenaxel/standfm2movie/video-processor/internal/db"
	"github.com/kenaxel/standfm2movie/video-processor/internal/metrics"
	"github.com/kenaxel/standfm2movie/video-processor/internal/worker"
)

// ClaimStore hands out pending jobs and takes back the ones that could not run.
type ClaimStore interface {
	ClaimPending(jobType string, limit int) ([]db.VideoJobStatus, error)
	Release(jobID string) error
}

// Queue accepts jobs for the worker pool.
type Queue interface {
	Capacity() int
	SubmitJob(job worker.Job) error
}

// Poller moves PENDING render jobs from the job table into the worker pool.
type Poller struct {
	Store    ClaimStore
	Queue    Queue
	Renderer *Renderer
	Interval time.Duration
	Metrics  *metrics.Metrics
	Logger   *logrus.Logger
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.Logger.WithField("interval", interval.String()).Info("Job poller started")
	for {
		p.Tick(ctx)
		select {
		case <-ctx.Done():
			p.Logger.Info("Job poller stopped")
			return
		case <-ticker.C:
		}
	}
}

// Tick claims at most as many jobs as the pool can take and submits them.
// It returns the number of jobs submitted.
func (p *Poller) Tick(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	free := p.Queue.Capacity()
	if free == 0 {
		return 0
	}

	rows, err := p.Store.ClaimPending(renderjob.JobType, free)
	if err != nil {
		p.Logger.WithError(err).Error("Failed to claim pending jobs")
	}

	submitted := 0
	for _, row := range rows {
		log := p.Logger.WithField("job_id", row.JobID)
		if p.Metrics != nil {
			p.Metrics.ClaimedTotal.Inc()
		}

		job, err := p.Renderer.NewJob(row)
		if err != nil {
			log.WithError(err).Warn("Rejecting malformed job")
			p.Renderer.Fail(row.JobID, "", err)
			continue
		}
		if err := p.Queue.SubmitJob(job); err != nil {
			log.WithError(err).Warn("Worker pool refused job, releasing it")
			if p.Metrics != nil {
				p.Metrics.RejectedTotal.Inc()
			}
			if rerr := p.Store.Release(row.JobID); rerr != nil {
				log.WithError(rerr).Error("Failed to release job")
			}
			continue
		}
		submitted++
	}
	if submitted > 0 {
		p.Logger.WithField("count", submitted).Info("Submitted render jobs")
	}
	return submitted
}

// ReleaseAll hands dropped jobs back to the queue, e.g. on shutdown.
func (p *Poller) ReleaseAll(dropped []worker.Job) {
	for _, job := range dropped {
		if err := p.Store.Release(job.ID()); err != nil {
			p.Logger.WithError(err).WithField("job_id", job.ID()).Error("Failed to release job")
		}
	}
}
