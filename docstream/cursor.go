package docstream

import (
	"fmt"

	insaneJSON "github.com/ozontech/insane-json"
)

// Cursor walks a token slice once. Extractors pull tokens with Next and
// never look back, Reset rewinds for reuse of the same payload.
type Cursor struct {
	tokens []Token
	pos    int
}

func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

func (c *Cursor) Next() (Token, bool) {
	if c.pos == len(c.tokens) {
		return Token{}, false
	}
	t := c.tokens[c.pos]
	c.pos++
	return t, true
}

func (c *Cursor) Reset() {
	c.pos = 0
}

// FromNode flattens one field value into tokens: a scalar becomes a
// single token, an object becomes ObjectStart, interleaved FieldName
// and scalar tokens, ObjectEnd. Deeper nesting has no meaning for a
// scalar field and is rejected here rather than in every extractor.
// Token data references the node's buffers and shares their lifetime.
func FromNode(node *insaneJSON.Node) (*Cursor, error) {
	if node.IsArray() {
		return nil, fmt.Errorf("unexpected array value")
	}

	if node.IsObject() {
		tokens := []Token{{Kind: KindObjectStart}}
		for _, field := range node.AsFields() {
			tokens = append(tokens, Token{Kind: KindFieldName, Data: field.AsBytes()})

			value := field.AsFieldValue()
			if value.IsObject() || value.IsArray() {
				return nil, fmt.Errorf("unexpected nested value in property [%s]", field.AsString())
			}
			tokens = append(tokens, scalarToken(value))
		}
		return NewCursor(append(tokens, Token{Kind: KindObjectEnd})), nil
	}

	return NewCursor([]Token{scalarToken(node)}), nil
}

func scalarToken(node *insaneJSON.Node) Token {
	if node.IsNull() || node.IsNil() {
		return Token{Kind: KindNull}
	}

	// the encoded form keeps the quotes, which is the only reliable way
	// to tell a string scalar from a number here
	encoded := node.Encode(nil)
	if len(encoded) > 0 && encoded[0] == '"' {
		return Token{Kind: KindString, Data: node.AsBytes()}
	}
	// numbers and booleans reach the extractors as their raw literal,
	// a boolean then fails value parsing the same way any junk does
	return Token{Kind: KindNumber, Data: encoded}
}
