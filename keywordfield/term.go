package keywordfield

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/seqmap/seqmap/metric"
)

// Term renders one value as the field's index term. The second result is
// false when the value exceeds the token size limit and partial indexing
// is off, the value is then dropped and counted. Case folding of ASCII
// input rewrites the slice in place.
func (c *Config) Term(value []byte) ([]byte, bool) {
	if len(value) > c.maxTokenSize {
		if !c.partialIndexing {
			metric.SkippedKeywords.Inc()
			metric.SkippedKeywordBytes.Add(float64(len(value)))
			return nil, false
		}
		metric.SkippedKeywordBytes.Add(float64(len(value) - c.maxTokenSize))
		value = value[:c.maxTokenSize]
	}
	if c.caseSensitive {
		return value, true
	}
	return foldLower(value), true
}

// foldLower lowercases ASCII bytes in place. Any non-ASCII byte switches
// to a rune-wise mapping that allocates.
func foldLower(s []byte) []byte {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= utf8.RuneSelf {
			return bytes.Map(unicode.ToLower, s)
		}
		if 'A' <= b && b <= 'Z' {
			s[i] = b + 'a' - 'A'
		}
	}
	return s
}
