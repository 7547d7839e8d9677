package docstream

import (
	"testing"

	insaneJSON "github.com/ozontech/insane-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldCursor(t *testing.T, doc, field string) (*Cursor, func()) {
	root := insaneJSON.Spawn()
	require.NoError(t, root.DecodeString(doc))

	cur, err := FromNode(root.Dig(field))
	require.NoError(t, err)
	return cur, func() { insaneJSON.Release(root) }
}

func drain(cur *Cursor) []Token {
	var tokens []Token
	for {
		tok, ok := cur.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func TestFromNodeScalars(t *testing.T) {
	tests := []struct {
		doc  string
		kind Kind
		data string
	}{
		{`{"ts": "2015-01-01"}`, KindString, "2015-01-01"},
		{`{"ts": 1420070400000}`, KindNumber, "1420070400000"},
		{`{"ts": 1.5}`, KindNumber, "1.5"},
		{`{"ts": null}`, KindNull, ""},
		{`{"ts": true}`, KindNumber, "true"},
	}

	for _, tt := range tests {
		cur, release := fieldCursor(t, tt.doc, "ts")

		tokens := drain(cur)
		require.Len(t, tokens, 1, tt.doc)
		assert.Equal(t, tt.kind, tokens[0].Kind, tt.doc)
		assert.Equal(t, tt.data, tokens[0].Text(), tt.doc)

		release()
	}
}

func TestFromNodeObject(t *testing.T) {
	cur, release := fieldCursor(t, `{"ts": {"value": "2015-01-01", "boost": 2.0}}`, "ts")
	defer release()

	tokens := drain(cur)
	require.Len(t, tokens, 6)

	assert.Equal(t, KindObjectStart, tokens[0].Kind)
	assert.Equal(t, KindFieldName, tokens[1].Kind)
	assert.Equal(t, "value", tokens[1].Text())
	assert.Equal(t, KindString, tokens[2].Kind)
	assert.Equal(t, "2015-01-01", tokens[2].Text())
	assert.Equal(t, KindFieldName, tokens[3].Kind)
	assert.Equal(t, "boost", tokens[3].Text())
	assert.Equal(t, KindNumber, tokens[4].Kind)
	assert.Equal(t, KindObjectEnd, tokens[5].Kind)
}

func TestFromNodeRejectsNesting(t *testing.T) {
	root := insaneJSON.Spawn()
	defer insaneJSON.Release(root)

	require.NoError(t, root.DecodeString(`{"a": [1, 2], "b": {"value": {"x": 1}}, "c": {"value": [1]}}`))

	_, err := FromNode(root.Dig("a"))
	assert.Error(t, err)

	_, err = FromNode(root.Dig("b"))
	require.Error(t, err)
	assert.Equal(t, "unexpected nested value in property [value]", err.Error())

	_, err = FromNode(root.Dig("c"))
	assert.Error(t, err)
}

func TestCursorReset(t *testing.T) {
	cur := NewCursor([]Token{{Kind: KindString, Data: []byte("x")}, {Kind: KindNull}})

	first := drain(cur)
	_, ok := cur.Next()
	assert.False(t, ok)

	cur.Reset()
	second := drain(cur)
	assert.Equal(t, first, second)
}

func TestTokenNumbers(t *testing.T) {
	n, err := Token{Kind: KindNumber, Data: []byte("1420070400000")}.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1420070400000), n)

	// fractional literals truncate
	n, err = Token{Kind: KindNumber, Data: []byte("1420070400000.75")}.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1420070400000), n)

	_, err = Token{Kind: KindNumber, Data: []byte("true")}.Int64()
	assert.Error(t, err)

	f, err := Token{Kind: KindNumber, Data: []byte("2.5")}.Float64()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
}
