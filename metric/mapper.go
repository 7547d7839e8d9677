package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Subsystem: "schema"

	SchemaReloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "schema",
		Name:      "reloads_total",
		Help:      "Number of times the mapping file was reloaded with changes",
	})
	SchemaReloadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "schema",
		Name:      "reload_errors_total",
		Help:      "",
	})
	SchemaMergeRejects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "schema",
		Name:      "merge_rejects_total",
		Help:      "Number of mapping updates rejected by merge conflicts",
	})

	// Subsystem: "indexer"

	IndexerPanics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "indexer",
		Name:      "panics_total",
		Help:      "",
	})
	DocumentsIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "indexer",
		Name:      "documents_total",
		Help:      "",
	})
	OversizedDocs = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "indexer",
		Name:      "oversized_docs_total",
		Help:      "",
	})
	SkippedKeywords = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "indexer",
		Name:      "skipped_keywords_total",
		Help:      "Keyword values dropped for exceeding the token size limit",
	})
	SkippedKeywordBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "indexer",
		Name:      "skipped_keyword_bytes_total",
		Help:      "",
	})
	TermsPerDocument = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "seqmap",
		Subsystem: "indexer",
		Name:      "terms_per_document",
		Help:      "",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
	})
	IndexDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "seqmap",
		Subsystem: "indexer",
		Name:      "index_duration_seconds",
		Help:      "",
		Buckets:   SecondsBuckets,
	})
)
