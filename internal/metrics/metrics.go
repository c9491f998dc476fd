// Package metrics exposes Prometheus instrumentation for the import flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_files_processed_total",
		Help: "Import files processed, by format and outcome",
	}, []string{"format", "outcome"})

	rowsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "import_rows_parsed_total",
		Help: "Data rows parsed across all import files",
	})

	validationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "import_validation_errors_total",
		Help: "Row validation errors accumulated across all import files",
	})

	parseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "import_parse_duration_seconds",
		Help:    "Time to decode, map and validate one import file",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})

	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_submissions_total",
		Help: "Bulk-upload submissions, by outcome",
	}, []string{"outcome"})

	recordsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "import_records_submitted_total",
		Help: "Records sent to the purchases bulk-upload API",
	})
)

// FileProcessed records one processed file. outcome is one of "ok",
// "rejected" (validation errors) or "failed" (file-level rejection).
func FileProcessed(format, outcome string) {
	filesProcessed.WithLabelValues(format, outcome).Inc()
}

// RowsParsed adds to the parsed row counter.
func RowsParsed(n int) {
	rowsParsed.Add(float64(n))
}

// ValidationErrors adds to the validation error counter.
func ValidationErrors(n int) {
	validationErrors.Add(float64(n))
}

// ObserveParse records the wall time of one parse pass.
func ObserveParse(format string, seconds float64) {
	parseDuration.WithLabelValues(format).Observe(seconds)
}

// Submission records one submit attempt. outcome is one of "ok",
// "observations" or "error".
func Submission(outcome string, records int) {
	submissions.WithLabelValues(outcome).Inc()
	if records > 0 {
		recordsSubmitted.Add(float64(records))
	}
}
