package consts

import (
	"time"
)

const (
	KB = 1024
	MB = 1024 * 1024
	GB = 1024 * 1024 * 1024

	// indexing
	DefaultMaxTokenSize    = 72
	DefaultMaxDocumentSize = 512 * KB

	DefaultPrecisionStep = 4
	MaxPrecisionStep     = 64

	DefaultFuzzyFactor = 1.0
	DefaultBoost       = 1.0

	// DefaultDateFormat accepts ISO-8601 timestamps with every trailing
	// component optional, down to a bare year.
	DefaultDateFormat = "date_optional_time"

	ESTimeFormat = "2006-01-02 15:04:05.999"

	DefaultSchemaUpdatePeriod = 30 * time.Second
)

var (
	TimeFields  = [][]string{{"timestamp"}, {"time"}, {"ts"}}
	TimeFormats = []string{ESTimeFormat, time.RFC3339Nano, time.RFC3339}
)

const (
	AllowedTimeDrift       = "24h"
	FutureAllowedTimeDrift = "5m"
)
