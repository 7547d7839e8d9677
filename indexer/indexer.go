// Package indexer turns JSON documents into index terms according to the
// live schema.
package indexer

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	insaneJSON "github.com/ozontech/insane-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"lukechampine.com/frand"

	"github.com/seqmap/seqmap/consts"
	"github.com/seqmap/seqmap/datefield"
	"github.com/seqmap/seqmap/docstream"
	"github.com/seqmap/seqmap/keywordfield"
	"github.com/seqmap/seqmap/logger"
	"github.com/seqmap/seqmap/mapping"
	"github.com/seqmap/seqmap/metric"
	"github.com/seqmap/seqmap/schema"
	"github.com/seqmap/seqmap/util"
)

const (
	// AllField collects textual date values for schemaless search. Every
	// document carries an empty marker term for it.
	AllField = "_all"
	// ExistsField gets one term per indexed field, used to find documents
	// that have the field at all.
	ExistsField = "_exists_"
)

var (
	docTimeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seqmap",
		Subsystem: "indexer",
		Name:      "time_errors_total",
		Help:      "errors for time rules violation in documents",
	}, []string{"cause"})

	timeParseErrors = docTimeErrors.WithLabelValues("parse_error")
	delays          = docTimeErrors.WithLabelValues("delay")
	futureDelays    = docTimeErrors.WithLabelValues("future_delay")

	defaultDrift       = mustTimeValue(consts.AllowedTimeDrift)
	defaultFutureDrift = mustTimeValue(consts.FutureAllowedTimeDrift)
)

func mustTimeValue(s string) time.Duration {
	d, err := schema.ParseTimeValue(s)
	if err != nil {
		panic(fmt.Errorf("BUG: bad time value: %s", s))
	}
	return d
}

// Term is one index token of a document.
type Term struct {
	Field string
	Value []byte
	Boost float64
}

// Document is the indexing result: the assigned ID, the resolved event
// time and every term extracted per the schema.
type Document struct {
	ID    ulid.ULID
	Time  time.Time
	Terms []Term
}

type Option func(*Indexer)

func WithAllowedDrift(past, future time.Duration) Option {
	return func(ix *Indexer) {
		ix.drift, ix.futureDrift = past, future
	}
}

func WithMaxDocumentSize(n int) Option {
	return func(ix *Indexer) {
		ix.maxDocSize = n
	}
}

// WithAllField turns the catch-all term stream off entirely.
func WithAllField(enabled bool) Option {
	return func(ix *Indexer) {
		ix.allEnabled = enabled
	}
}

// Indexer extracts terms from documents. It owns a JSON decoder and an
// ID generator, so one instance serves one worker goroutine.
type Indexer struct {
	provider *mapping.Provider

	drift       time.Duration
	futureDrift time.Duration
	maxDocSize  int
	allEnabled  bool

	decoder *insaneJSON.Root
	entropy *ulid.MonotonicEntropy
}

func New(provider *mapping.Provider, opts ...Option) *Indexer {
	ix := &Indexer{
		provider:    provider,
		drift:       defaultDrift,
		futureDrift: defaultFutureDrift,
		maxDocSize:  consts.DefaultMaxDocumentSize,
		allEnabled:  true,
		decoder:     insaneJSON.Spawn(),
		entropy:     ulid.Monotonic(frand.New(), 0),
	}

	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

func (ix *Indexer) Close() {
	insaneJSON.Release(ix.decoder)
}

// Index decodes one document and extracts its terms against the current
// schema. IDs are monotonic within a millisecond, so documents sort in
// arrival order.
func (ix *Indexer) Index(doc []byte, requestTime time.Time) (d *Document, err error) {
	start := time.Now()
	defer func() {
		if panicData := recover(); panicData != nil {
			d, err = nil, util.RecoverToError(panicData, metric.IndexerPanics)
		}
		metric.IndexDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	if len(doc) > ix.maxDocSize {
		metric.OversizedDocs.Inc()
		logger.Warn("skipping an oversized document",
			util.ZapUint64AsSizeStr("size", uint64(len(doc))),
			util.ZapUint64AsSizeStr("max_size", uint64(ix.maxDocSize)))
		return nil, fmt.Errorf("document too large: %s, max size: %s",
			util.SizeStr(uint64(len(doc))), util.SizeStr(uint64(ix.maxDocSize)))
	}

	if err := ix.decoder.DecodeBytes(doc); err != nil {
		return nil, err
	}

	s := ix.provider.Schema()
	docTime := ix.resolveDocTime(ix.decoder.Node, requestTime)

	d = &Document{
		ID:   ulid.MustNew(ulid.Timestamp(docTime), ix.entropy),
		Time: docTime,
	}
	d.Terms = append(d.Terms, Term{Field: AllField, Boost: consts.DefaultBoost})

	for _, name := range s.Names() {
		node := ix.decoder.Node.Dig(name)
		if node == nil || node.IsNil() {
			continue
		}

		switch f, _ := s.Field(name); f.Kind() {
		case schema.KindDate:
			df, _ := s.Date(name)
			if err := ix.indexDate(d, df, node); err != nil {
				return nil, err
			}
		case schema.KindKeyword:
			kf, _ := s.Keyword(name)
			ix.indexKeyword(d, kf, node)
		}
	}

	metric.DocumentsIndexed.Inc()
	metric.TermsPerDocument.Observe(float64(len(d.Terms)))
	return d, nil
}

func (ix *Indexer) indexDate(d *Document, f *datefield.Config, node *insaneJSON.Node) error {
	cur, err := docstream.FromNode(node)
	if err != nil {
		return fmt.Errorf("failed to read field [%s]: %w", f.Name(), err)
	}

	v, err := f.Extract(cur, nil)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}

	for _, term := range f.IndexTerms(v.Millis) {
		d.Terms = append(d.Terms, Term{Field: f.Name(), Value: term, Boost: v.Boost})
	}
	if ix.allEnabled && v.AddToAll {
		d.Terms = append(d.Terms, Term{Field: AllField, Value: util.StringToByteUnsafe(v.Text), Boost: v.Boost})
	}
	d.Terms = append(d.Terms, Term{Field: ExistsField, Value: util.StringToByteUnsafe(f.Name()), Boost: consts.DefaultBoost})
	return nil
}

func (ix *Indexer) indexKeyword(d *Document, f *keywordfield.Config, node *insaneJSON.Node) {
	value := encodeScalar(node)
	if value == nil {
		nv, ok := f.NullValue()
		if !ok || !node.IsNull() {
			return
		}
		value = []byte(nv)
	}

	if term, ok := f.Term(value); ok {
		d.Terms = append(d.Terms, Term{Field: f.Name(), Value: term, Boost: consts.DefaultBoost})
	}
	d.Terms = append(d.Terms, Term{Field: ExistsField, Value: util.StringToByteUnsafe(f.Name()), Boost: consts.DefaultBoost})
}

// encodeScalar renders a keyword payload: scalars as their text, nested
// values as raw JSON. Nulls index nothing unless substituted.
func encodeScalar(node *insaneJSON.Node) []byte {
	if node.IsNull() {
		return nil
	}
	if node.IsArray() || node.IsObject() || node.IsTrue() || node.IsFalse() {
		return node.Encode(nil)
	}
	return node.AsBytes()
}

// resolveDocTime finds the event time among the well-known time fields
// and clamps it to the request time when it drifts out of bounds.
func (ix *Indexer) resolveDocTime(node *insaneJSON.Node, requestTime time.Time) time.Time {
	docTime, ok := extractDocTime(node)
	if !ok {
		timeParseErrors.Inc()
		return requestTime
	}

	delay := requestTime.Sub(docTime)
	delayed := false
	if delay > ix.drift {
		delays.Inc()
		delayed = true
	}
	if delay < 0 && -delay > ix.futureDrift {
		futureDelays.Inc()
		delayed = true
	}
	if delayed {
		logger.Debug("document time out of drift, clamped",
			util.ZapMsTsAsESTimeStr("doc_time", uint64(docTime.UnixMilli())),
			util.ZapMsTsAsESTimeStr("request_time", uint64(requestTime.UnixMilli())))
		return requestTime
	}
	return docTime
}

func extractDocTime(node *insaneJSON.Node) (time.Time, bool) {
	for _, field := range consts.TimeFields {
		timeVal := node.Dig(field...).AsBytes()
		if len(timeVal) == 0 {
			continue
		}

		for _, f := range consts.TimeFormats {
			if t, err := time.Parse(f, util.ByteToStringUnsafe(timeVal)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
