// Package metrics registers the Prometheus instruments for the intake wizard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	DraftsSaved     prometheus.Counter
	DraftsRestored  prometheus.Counter
	DraftsDiscarded prometheus.Counter
	FilesAccepted   prometheus.Counter
	FilesRejected   *prometheus.CounterVec
	StepsAdvanced   *prometheus.CounterVec
	StepsBlocked    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DraftsSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "vetform_drafts_saved_total",
			Help: "Total number of intake drafts written to the draft store",
		}),
		DraftsRestored: factory.NewCounter(prometheus.CounterOpts{
			Name: "vetform_drafts_restored_total",
			Help: "Total number of intake drafts restored into a session",
		}),
		DraftsDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "vetform_drafts_discarded_total",
			Help: "Total number of intake drafts explicitly deleted",
		}),
		FilesAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vetform_files_accepted_total",
			Help: "Total number of uploaded documents that passed the file policy",
		}),
		FilesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vetform_files_rejected_total",
			Help: "Total number of uploaded documents rejected by the file policy",
		}, []string{"reason"}),
		StepsAdvanced: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vetform_steps_advanced_total",
			Help: "Successful forward transitions, labelled by the step left behind",
		}, []string{"step"}),
		StepsBlocked: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vetform_steps_blocked_total",
			Help: "Forward transitions blocked by validation, labelled by step",
		}, []string{"step"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vetform_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
