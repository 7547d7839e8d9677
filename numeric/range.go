package numeric

import (
	"strconv"
	"strings"
)

// Range is an executable numeric range predicate over one field. A nil
// bound leaves that side open. Step records the precision level the
// engine walks when it evaluates the predicate against trie terms.
type Range struct {
	Field        string
	Step         uint32
	Lower        *int64
	Upper        *int64
	IncludeLower bool
	IncludeUpper bool
}

func NewRange(field string, step uint32, lower, upper *int64, includeLower, includeUpper bool) *Range {
	return &Range{
		Field:        field,
		Step:         step,
		Lower:        lower,
		Upper:        upper,
		IncludeLower: includeLower,
		IncludeUpper: includeUpper,
	}
}

// Matches evaluates the predicate against a single decoded value.
func (r *Range) Matches(v int64) bool {
	if r.Lower != nil {
		if r.IncludeLower {
			if v < *r.Lower {
				return false
			}
		} else if v <= *r.Lower {
			return false
		}
	}
	if r.Upper != nil {
		if r.IncludeUpper {
			if v > *r.Upper {
				return false
			}
		} else if v >= *r.Upper {
			return false
		}
	}
	return true
}

func (r *Range) String() string {
	var b strings.Builder
	b.WriteString(r.Field)
	b.WriteByte(':')
	if r.IncludeLower {
		b.WriteByte('[')
	} else {
		b.WriteByte('{')
	}
	writeBound(&b, r.Lower)
	b.WriteString(" TO ")
	writeBound(&b, r.Upper)
	if r.IncludeUpper {
		b.WriteByte(']')
	} else {
		b.WriteByte('}')
	}
	return b.String()
}

func writeBound(b *strings.Builder, bound *int64) {
	if bound == nil {
		b.WriteByte('*')
		return
	}
	b.WriteString(strconv.FormatInt(*bound, 10))
}
