package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimeValue parses a human duration like "2h", "1.5d" or "500ms".
// The unit suffix is mandatory: a bare number is not a duration here, it
// is a dimensionless factor and callers fall back to their own scaling
// for it (see the fuzzy predicate).
func ParseTimeValue(s string) (time.Duration, error) {
	var num string
	var unit time.Duration

	switch {
	case strings.HasSuffix(s, "ms"):
		num, unit = s[:len(s)-2], time.Millisecond
	case strings.HasSuffix(s, "s"):
		num, unit = s[:len(s)-1], time.Second
	case strings.HasSuffix(s, "m"):
		num, unit = s[:len(s)-1], time.Minute
	case strings.HasSuffix(s, "h"), strings.HasSuffix(s, "H"):
		num, unit = s[:len(s)-1], time.Hour
	case strings.HasSuffix(s, "d"):
		num, unit = s[:len(s)-1], 24*time.Hour
	case strings.HasSuffix(s, "w"):
		num, unit = s[:len(s)-1], 7*24*time.Hour
	default:
		return 0, fmt.Errorf("failed to parse time value [%s]: missing unit", s)
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse time value [%s]: %w", s, err)
	}

	return time.Duration(v * float64(unit)), nil
}
