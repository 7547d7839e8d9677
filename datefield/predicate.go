package datefield

import (
	"fmt"
	"strconv"
	"time"

	"github.com/seqmap/seqmap/numeric"
	"github.com/seqmap/seqmap/schema"
)

// TermPredicate matches documents whose value equals the given
// expression. Date math applies, so "now/d" matches the moment midnight
// resolves to, not a span.
func (c *Config) TermPredicate(value string, now time.Time) (*numeric.Range, error) {
	ms, err := c.math.Resolve(value, now.UnixMilli())
	if err != nil {
		return nil, err
	}
	return numeric.NewRange(c.name, c.precisionStep, &ms, &ms, true, true), nil
}

// RangePredicate builds a bounded predicate from two expressions. An
// empty or "*" bound leaves that side open. Both bounds resolve against
// the same now. An inclusive upper bound rounds truncated expressions up
// to the last millisecond of their period, unless the field was built
// with that behavior off.
func (c *Config) RangePredicate(lower, upper string, includeLower, includeUpper bool, now time.Time) (*numeric.Range, error) {
	var lo, hi *int64
	nowMs := now.UnixMilli()

	if !openBound(lower) {
		ms, err := c.math.Resolve(lower, nowMs)
		if err != nil {
			return nil, err
		}
		lo = &ms
	}
	if !openBound(upper) {
		var ms int64
		var err error
		if includeUpper && c.parseUpperInclusive {
			ms, err = c.math.ResolveUpperInclusive(upper, nowMs)
		} else {
			ms, err = c.math.Resolve(upper, nowMs)
		}
		if err != nil {
			return nil, err
		}
		hi = &ms
	}
	return numeric.NewRange(c.name, c.precisionStep, lo, hi, includeLower, includeUpper), nil
}

// FuzzyPredicate matches values within a similarity window around the
// expression. The similarity is a duration ("2h") or a plain number
// scaled by the field's fuzzy factor.
func (c *Config) FuzzyPredicate(value, similarity string, now time.Time) (*numeric.Range, error) {
	ms, err := c.math.Resolve(value, now.UnixMilli())
	if err != nil {
		return nil, err
	}
	var delta int64
	if d, err := schema.ParseTimeValue(similarity); err == nil {
		delta = d.Milliseconds()
	} else if f, err := strconv.ParseFloat(similarity, 64); err == nil {
		delta = int64(f * c.fuzzyFactor)
	} else {
		return nil, fmt.Errorf("failed to parse fuzziness [%s]: neither a duration nor a number", similarity)
	}
	lo, hi := ms-delta, ms+delta
	return numeric.NewRange(c.name, c.precisionStep, &lo, &hi, true, true), nil
}

// NullValuePredicate matches documents that carried an explicit null and
// were indexed with the substitute value. Without a configured null
// value no document can match, so there is no predicate. The substitute
// is a literal, date math does not apply to it.
func (c *Config) NullValuePredicate() (*numeric.Range, error) {
	if !c.hasNullValue {
		return nil, nil
	}
	ms, err := c.coerceText(c.nullValue)
	if err != nil {
		return nil, err
	}
	return numeric.NewRange(c.name, c.precisionStep, &ms, &ms, true, true), nil
}

func openBound(s string) bool {
	return s == "" || s == "*"
}
