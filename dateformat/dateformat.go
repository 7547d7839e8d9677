// Package dateformat turns formatted date strings into epoch milliseconds
// and back. A formatter is selected by name from a registry of well-known
// patterns or built from a custom Go layout, several layouts may be
// combined with "||".
package dateformat

import (
	"fmt"
	"strings"
	"time"

	"github.com/seqmap/seqmap/consts"
)

type Formatter struct {
	name string
	// print renders canonical output, parse layouts are tried in order
	print string
	parse []string
}

var registry = map[string]*Formatter{
	// No bare-year layout here: an all-digit value must stay parseable
	// as a raw timestamp by the coercion fallback, not as a year. The
	// "year" formatter exists for fields that really want years.
	consts.DefaultDateFormat: {
		name:  consts.DefaultDateFormat,
		print: "2006-01-02T15:04:05.000Z07:00",
		parse: []string{
			"2006-01-02T15:04:05Z07:00",
			"2006-01-02T15:04:05",
			"2006-01-02T15:04",
			"2006-01-02T15",
			consts.ESTimeFormat,
			"2006-01-02 15:04:05",
			"2006-01-02",
			"2006-01",
		},
	},
	"date_time": {
		name:  "date_time",
		print: "2006-01-02T15:04:05.000Z07:00",
		parse: []string{"2006-01-02T15:04:05.999Z07:00"},
	},
	"date_time_no_millis": {
		name:  "date_time_no_millis",
		print: "2006-01-02T15:04:05Z07:00",
		parse: []string{"2006-01-02T15:04:05Z07:00"},
	},
	"basic_date": {
		name:  "basic_date",
		print: "20060102",
		parse: []string{"20060102"},
	},
	"basic_date_time": {
		name:  "basic_date_time",
		print: "20060102T150405.000Z0700",
		parse: []string{"20060102T150405.999Z0700"},
	},
	"basic_date_time_no_millis": {
		name:  "basic_date_time_no_millis",
		print: "20060102T150405Z0700",
		parse: []string{"20060102T150405Z0700"},
	},
	"date": {
		name:  "date",
		print: "2006-01-02",
		parse: []string{"2006-01-02"},
	},
	"date_hour_minute_second": {
		name:  "date_hour_minute_second",
		print: "2006-01-02T15:04:05",
		parse: []string{"2006-01-02T15:04:05"},
	},
	"year_month_day": {
		name:  "year_month_day",
		print: "2006-01-02",
		parse: []string{"2006-01-02"},
	},
	"year_month": {
		name:  "year_month",
		print: "2006-01",
		parse: []string{"2006-01"},
	},
	"year": {
		name:  "year",
		print: "2006",
		parse: []string{"2006"},
	},
}

// New resolves a pattern: a registry name (snake or camel case) or a
// custom Go reference layout. Custom layouts may combine alternatives
// with "||", the first one is used for printing.
func New(pattern string) (*Formatter, error) {
	if f, ok := registry[pattern]; ok {
		return f, nil
	}
	if f, ok := registry[toUnderscoreCase(pattern)]; ok {
		return f, nil
	}

	layouts := strings.Split(pattern, "||")
	for _, l := range layouts {
		if !strings.Contains(l, "2006") {
			return nil, fmt.Errorf("format [%s] must contain a year (Go reference layout)", l)
		}
	}
	return &Formatter{name: pattern, print: layouts[0], parse: layouts}, nil
}

// Default returns the formatter date fields use when the definition names
// no format.
func Default() *Formatter {
	return registry[consts.DefaultDateFormat]
}

func (f *Formatter) Name() string {
	return f.name
}

// Parse converts a formatted date into UTC epoch milliseconds. Layouts
// are tried in order, a layout matches only if it consumes the whole
// input.
func (f *Formatter) Parse(s string) (int64, error) {
	t, _, err := f.parseTime(s)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// ParseEndOfPeriod converts a formatted date into the last millisecond of
// the period the string spells out: "2015-01-01" maps to the end of that
// day, "2015-01" to the end of January. Used for inclusive upper bounds.
func (f *Formatter) ParseEndOfPeriod(s string) (int64, error) {
	t, layout, err := f.parseTime(s)
	if err != nil {
		return 0, err
	}

	switch layoutGranularity(layout, t) {
	case granMillis:
		return t.UnixMilli(), nil
	case granSecond:
		t = t.Add(time.Second)
	case granMinute:
		t = t.Add(time.Minute)
	case granHour:
		t = t.Add(time.Hour)
	case granDay:
		t = t.AddDate(0, 0, 1)
	case granMonth:
		t = t.AddDate(0, 1, 0)
	case granYear:
		t = t.AddDate(1, 0, 0)
	}
	return t.UnixMilli() - 1, nil
}

// Print renders milliseconds in the formatter's canonical layout, UTC.
func (f *Formatter) Print(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(f.print)
}

func (f *Formatter) parseTime(s string) (time.Time, string, error) {
	for _, layout := range f.parse {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("value [%s] does not match format [%s]", s, f.name)
}

type granularity int

const (
	granMillis granularity = iota
	granSecond
	granMinute
	granHour
	granDay
	granMonth
	granYear
)

// layoutGranularity reports the finest calendar component the input
// actually carried: a non-zero fractional second makes the value
// millisecond-exact no matter the layout, otherwise the matched layout
// decides. An explicit zero fraction cannot be told apart from an absent
// one, both round up to the end of the second.
func layoutGranularity(layout string, t time.Time) granularity {
	switch {
	case t.Nanosecond() != 0:
		return granMillis
	case strings.Contains(layout, "05"):
		return granSecond
	case strings.Contains(layout, "04"):
		return granMinute
	case strings.Contains(layout, "15"):
		return granHour
	case strings.Contains(layout, "02"):
		return granDay
	case strings.Contains(layout, "01"):
		return granMonth
	default:
		return granYear
	}
}

// toUnderscoreCase folds camel-case pattern aliases, "dateOptionalTime"
// and "date_optional_time" select the same formatter.
func toUnderscoreCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
