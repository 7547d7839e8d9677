package schema

import (
	"fmt"
	"strings"
)

// TimeUnit is the resolution of raw numeric timestamps in a document,
// configured per field as `numeric_resolution`. It only matters for the
// bare-integer fallback: a field with seconds resolution reads "1000"
// as 1000 seconds since epoch.
type TimeUnit int

const (
	Milliseconds TimeUnit = iota
	Seconds
	Minutes
	Hours
	Days
)

var unitMillis = [...]int64{
	Milliseconds: 1,
	Seconds:      1000,
	Minutes:      60 * 1000,
	Hours:        60 * 60 * 1000,
	Days:         24 * 60 * 60 * 1000,
}

var unitNames = [...]string{
	Milliseconds: "milliseconds",
	Seconds:      "seconds",
	Minutes:      "minutes",
	Hours:        "hours",
	Days:         "days",
}

func ParseTimeUnit(s string) (TimeUnit, error) {
	name := strings.ToLower(s)
	for u, n := range unitNames {
		if n == name {
			return TimeUnit(u), nil
		}
	}
	return 0, fmt.Errorf("unknown time unit [%s]", s)
}

// Millis converts n expressed in the unit into milliseconds.
func (u TimeUnit) Millis(n int64) int64 {
	return n * unitMillis[u]
}

func (u TimeUnit) String() string {
	return unitNames[u]
}
