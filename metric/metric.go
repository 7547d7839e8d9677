package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/seqmap/seqmap/buildinfo"
)

var (
	Version = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seqmap",
		Name:      "version",
		Help:      "",
	},
		[]string{"version"})

	// SecondsBuckets covers range from 1ms to 177s.
	SecondsBuckets = prometheus.ExponentialBuckets(0.001, 3, 12)
)

func init() {
	Version.WithLabelValues(buildinfo.Version).Inc()
}
