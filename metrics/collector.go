// Package metrics exposes Prometheus metrics about asset generation runs.
// The command line writes them to a textfile for the node exporter textfile
// collector.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "assetgen"

const (
	ActionCreated   = "created"
	ActionRemoved   = "removed"
	ActionUnchanged = "unchanged"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Collector struct {
	registry *prometheus.Registry

	Runs     *prometheus.CounterVec
	Images   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	LastRun  *prometheus.GaugeVec
}

// Run summarizes one pipeline run for a platform.
type Run struct {
	Platform  string
	Created   int
	Removed   int
	Unchanged int
	Duration  time.Duration
	Err       error
}

func (c *Collector) Observe(run Run) {
	status := StatusSuccess
	if run.Err != nil {
		status = StatusError
	}

	c.Runs.WithLabelValues(run.Platform, status).Inc()
	c.Duration.WithLabelValues(run.Platform).Observe(run.Duration.Seconds())

	// Image counts of a failed run were planned, not applied
	if run.Err != nil {
		return
	}

	c.Images.WithLabelValues(run.Platform, ActionCreated).Add(float64(run.Created))
	c.Images.WithLabelValues(run.Platform, ActionRemoved).Add(float64(run.Removed))
	c.Images.WithLabelValues(run.Platform, ActionUnchanged).Add(float64(run.Unchanged))
	c.LastRun.WithLabelValues(run.Platform).SetToCurrentTime()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteToTextfile writes the current state of every metric to filename,
// atomically.
func (c *Collector) WriteToTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, c.registry); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of generation runs",
		}, []string{"platform", "status"}),
		Images: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_total",
			Help:      "Total number of logical images handled, by action",
		}, []string{"platform", "action"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of generation runs in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"platform"}),
		LastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}, []string{"platform"}),
	}

	reg.MustRegister(c.Runs, c.Images, c.Duration, c.LastRun)

	return c
}
