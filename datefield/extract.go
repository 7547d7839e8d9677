package datefield

import (
	"fmt"

	"github.com/seqmap/seqmap/docstream"
	"github.com/seqmap/seqmap/numeric"
	"github.com/seqmap/seqmap/schema"
)

// ExtractedValue is what one occurrence of the field contributes to the
// index: the canonical milliseconds, the boost it carries, and the
// original text when the value came in as a string. Only textual values
// feed the catch-all field, numbers have no human-readable form to add.
type ExtractedValue struct {
	Millis   int64
	Boost    float64
	Text     string
	AddToAll bool
}

type extraction struct {
	value    int64
	hasValue bool
	text     string
	hasText  bool
	boost    float64
}

// Extract reads one occurrence of the field from the token stream. A
// non-nil external token overrides the stream and must be a scalar.
// A nil result with a nil error means the occurrence produced nothing
// to index (an absent value, or a null without a substitute).
func (c *Config) Extract(cur *docstream.Cursor, external *docstream.Token) (*ExtractedValue, error) {
	ex := extraction{boost: c.boost}

	var tok docstream.Token
	if external != nil {
		tok = *external
	} else {
		var ok bool
		if tok, ok = cur.Next(); !ok {
			return nil, nil
		}
	}

	switch tok.Kind {
	case docstream.KindNull:
		if c.hasNullValue {
			ex.text, ex.hasText = c.nullValue, true
		}
	case docstream.KindNumber:
		c.extractNumber(tok, &ex)
	case docstream.KindString:
		ex.text, ex.hasText = tok.Text(), true
	case docstream.KindObjectStart:
		if external != nil {
			return nil, fmt.Errorf("unexpected token [%s] in field [%s]", tok.Kind, c.name)
		}
		if err := c.extractObject(cur, &ex); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unexpected token [%s] in field [%s]", tok.Kind, c.name)
	}

	// a numeric value is final, it skips text parsing and the catch-all
	if ex.hasValue {
		return &ExtractedValue{Millis: ex.value, Boost: ex.boost}, nil
	}
	if !ex.hasText {
		return nil, nil
	}

	ms, err := c.coerceText(ex.text)
	if err != nil {
		return nil, err
	}
	return &ExtractedValue{Millis: ms, Boost: ex.boost, Text: ex.text, AddToAll: c.addToAll()}, nil
}

// extractNumber converts a numeric token in the field's resolution. A
// token that fails numeric parsing (a bare true or false ends up here)
// falls through to the text path and reports the usual parse failure.
func (c *Config) extractNumber(tok docstream.Token, ex *extraction) {
	if n, err := tok.Int64(); err == nil {
		ex.value, ex.hasValue = c.timeUnit.Millis(n), true
		return
	}
	ex.text, ex.hasText = tok.Text(), true
}

func (c *Config) extractObject(cur *docstream.Cursor, ex *extraction) error {
	var key string
	for {
		tok, ok := cur.Next()
		if !ok {
			return fmt.Errorf("truncated object in field [%s]", c.name)
		}
		switch tok.Kind {
		case docstream.KindObjectEnd:
			return nil
		case docstream.KindFieldName:
			key = tok.Text()
		default:
			switch key {
			case "value", "_value":
				switch tok.Kind {
				case docstream.KindNull:
					if c.hasNullValue {
						ex.text, ex.hasText = c.nullValue, true
					}
				case docstream.KindNumber:
					c.extractNumber(tok, ex)
				case docstream.KindString:
					ex.text, ex.hasText = tok.Text(), true
				default:
					return fmt.Errorf("unexpected token [%s] in field [%s]", tok.Kind, c.name)
				}
			case "boost", "_boost":
				f, err := tok.Float64()
				if err != nil {
					return fmt.Errorf("failed to parse boost of field [%s]: %w", c.name, err)
				}
				ex.boost = f
			default:
				return &schema.UnknownFieldPropertyError{Field: c.name, Prop: key}
			}
		}
	}
}

func (c *Config) addToAll() bool {
	if c.hasIncludeInAll {
		return c.includeInAll
	}
	return true
}

// IndexTerms encodes a canonical value into the trie terms written to
// the index, one per precision level.
func (c *Config) IndexTerms(ms int64) [][]byte {
	return numeric.Terms(ms, c.precisionStep)
}
