package metrics

import (
	"time"
)

func status(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordSummarization records the outcome of one summarization request.
// Mode is "standard" or "forensic".
func RecordSummarization(mode, contentType string, success bool, duration time.Duration) {
	SummarizationsTotal.WithLabelValues(mode, contentType, status(success)).Inc()
	SummarizationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordChunksProcessed records how many chunks a successful summary mapped.
func RecordChunksProcessed(n int) {
	ChunksPerSummary.Observe(float64(n))
}

// RecordCompletionStage records one completion call.
// Stage is single, map, reduce or forensic.
func RecordCompletionStage(stage string, success bool, duration time.Duration) {
	CompletionCallsTotal.WithLabelValues(stage, status(success)).Inc()
	CompletionCallDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordForensicMissingSections increments the counter for every missing section.
func RecordForensicMissingSections(sections []string) {
	for _, s := range sections {
		ForensicMissingSectionsTotal.WithLabelValues(s).Inc()
	}
}

// RecordExtractionSuccess records a successful extraction.
//
// Example:
//
//	start := time.Now()
//	text, err := extractor.Extract(ctx, unit, ct)
//	if err == nil {
//	    RecordExtractionSuccess(string(ct), time.Since(start), len(text))
//	}
func RecordExtractionSuccess(contentType string, duration time.Duration, size int) {
	ExtractionAttemptsTotal.WithLabelValues(contentType, "success").Inc()
	ExtractionDuration.Observe(duration.Seconds())
	ExtractedSize.Observe(float64(size))
}

// RecordExtractionFailed records a failed extraction.
func RecordExtractionFailed(contentType string, duration time.Duration) {
	ExtractionAttemptsTotal.WithLabelValues(contentType, "failure").Inc()
	ExtractionDuration.Observe(duration.Seconds())
}

// RecordExtractionPassthrough records content used as is without extraction.
func RecordExtractionPassthrough(contentType string) {
	ExtractionAttemptsTotal.WithLabelValues(contentType, "passthrough").Inc()
}
