package schema

import (
	"strconv"
)

// NodeMap is one field definition as it comes out of a mapping file: a bag
// of loosely typed properties. Values are whatever the config decoder
// produced (strings, bools, ints, floats), the accessors below normalize
// them the way the definition parser needs.
type NodeMap map[string]any

// String returns the property rendered as text. Numbers and bools are
// formatted, so `null_value: 1420070400000` reads back as a string.
func (n NodeMap) String(key string) (string, bool) {
	v, ok := n[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

func (n NodeMap) Bool(key string) (bool, bool) {
	v, ok := n[key]
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

func (n NodeMap) Int(key string) (int, bool) {
	v, ok := n[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func (n NodeMap) Float(key string) (float64, bool) {
	v, ok := n[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Has reports key presence, counting an explicit null.
func (n NodeMap) Has(key string) bool {
	_, ok := n[key]
	return ok
}

// IsNull reports whether the property is present and explicitly null.
func (n NodeMap) IsNull(key string) bool {
	v, ok := n[key]
	return ok && v == nil
}
