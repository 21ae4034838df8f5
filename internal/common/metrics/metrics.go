// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_submissions_total",
			Help: "Application submissions by outcome (success, create_failed, finalize_failed)",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "application_submission_duration_seconds",
			Help:    "Duration of the create, upload and finalize pipeline",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	FileUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_file_uploads_total",
			Help: "File uploads by slot and outcome",
		},
		[]string{"slot", "outcome"},
	)

	PayloadDecodeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "application_payload_decode_failures_total",
			Help: "Stored application payloads that could not be decoded",
		},
	)

	RecordCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_record_cache_lookups_total",
			Help: "Record cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
