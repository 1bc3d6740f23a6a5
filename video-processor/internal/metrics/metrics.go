// Package metrics holds the render worker's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Render results as recorded in the jobs counter.
const (
	ResultCompleted = "completed"
	ResultFailed    = "failed"
)

// Metrics are the collectors updated by the poller and the render jobs.
type Metrics struct {
	JobsTotal     *prometheus.CounterVec
	JobSeconds    prometheus.Histogram
	VideoSeconds  prometheus.Histogram
	StageSeconds  *prometheus.HistogramVec
	ClaimedTotal  prometheus.Counter
	RejectedTotal prometheus.Counter
	InFlight      prometheus.Gauge
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		JobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "standfm2movie",
			Subsystem: "processor",
			Name:      "render_jobs_total",
			Help:      "Finished render jobs by result and error code.",
		}, []string{"result", "code"}),
		JobSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "standfm2movie",
			Subsystem: "processor",
			Name:      "render_job_duration_seconds",
			Help:      "Wall time of one render job.",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 9),
		}),
		VideoSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "standfm2movie",
			Subsystem: "processor",
			Name:      "rendered_video_seconds",
			Help:      "Length of rendered videos.",
			Buckets:   []float64{15, 30, 60, 120, 300, 600},
		}),
		StageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "standfm2movie",
			Subsystem: "processor",
			Name:      "render_stage_duration_seconds",
			Help:      "Wall time of each render stage.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 3, 9),
		}, []string{"stage"}),
		ClaimedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "standfm2movie",
			Subsystem: "processor",
			Name:      "claimed_jobs_total",
			Help:      "Jobs moved from PENDING to PROCESSING by this processor.",
		}),
		RejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "standfm2movie",
			Subsystem: "processor",
			Name:      "rejected_jobs_total",
			Help:      "Claimed jobs handed back because the worker queue was full.",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "standfm2movie",
			Subsystem: "processor",
			Name:      "render_jobs_in_flight",
			Help:      "Render jobs currently executing.",
		}),
	}
	reg.MustRegister(m.JobsTotal, m.JobSeconds, m.VideoSeconds, m.StageSeconds, m.ClaimedTotal, m.RejectedTotal, m.InFlight)
	return m
}

// Noop returns collectors registered nowhere, for tests and tools.
func Noop() *Metrics {
	return New(prometheus.NewRegistry())
}
