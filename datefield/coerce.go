package datefield

import (
	"fmt"
	"strconv"

	"github.com/seqmap/seqmap/numeric"
	"github.com/seqmap/seqmap/schema"
)

// CoerceValue normalizes a query-side value into canonical epoch
// milliseconds. Numbers are already canonical and pass through as is, a
// byte slice is a previously encoded index term, text is parsed with the
// field's format. Anything else is stringified and treated as text.
func (c *Config) CoerceValue(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case uint64:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case []byte:
		ms, _, err := numeric.DecodeTerm(t)
		if err != nil {
			return 0, fmt.Errorf("failed to decode term of field [%s]: %w", c.name, err)
		}
		return ms, nil
	case string:
		return c.coerceText(t)
	default:
		return c.coerceText(fmt.Sprint(t))
	}
}

// coerceText parses a date string, falling back to a bare integer in the
// field's numeric resolution. The fallback accepts any digit string as a
// raw timestamp, so a date that is malformed yet all digits coerces as a
// number instead of failing.
func (c *Config) coerceText(s string) (int64, error) {
	ms, ferr := c.format.Parse(s)
	if ferr == nil {
		return ms, nil
	}
	n, nerr := strconv.ParseInt(s, 10, 64)
	if nerr == nil {
		return c.timeUnit.Millis(n), nil
	}
	return 0, &schema.ValueParseError{
		Value:     s,
		Pattern:   c.format.Name(),
		FormatErr: ferr,
		NumberErr: nerr,
	}
}
