package keywordfield

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqmap/seqmap/schema"
)

func keywordField(t *testing.T, node schema.NodeMap) *Config {
	t.Helper()
	c, err := Build("message", node)
	require.NoError(t, err)
	return c
}

func TestBuildDefaults(t *testing.T) {
	c := keywordField(t, schema.NodeMap{"type": "keyword"})

	assert.Equal(t, "message", c.Name())
	assert.Equal(t, schema.KindKeyword, c.Kind())
	assert.True(t, c.caseSensitive)
	assert.False(t, c.partialIndexing)
	assert.Equal(t, 72, c.maxTokenSize)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		node schema.NodeMap
		prop string
	}{
		{schema.NodeMap{"type": "date"}, "type"},
		{schema.NodeMap{"type": "keyword", "case_sensitive": "maybe"}, "case_sensitive"},
		{schema.NodeMap{"type": "keyword", "max_token_size": 0}, "max_token_size"},
		{schema.NodeMap{"type": "keyword", "store": true}, "store"},
	}

	for _, tt := range tests {
		_, err := Build("message", tt.node)
		require.Error(t, err, tt.prop)

		var cfgErr *schema.ConfigError
		require.ErrorAs(t, err, &cfgErr, tt.prop)
		assert.Equal(t, tt.prop, cfgErr.Prop)
	}
}

func TestTermSimple(t *testing.T) {
	c := keywordField(t, schema.NodeMap{"type": "keyword"})

	term, ok := c.Term([]byte("woRld"))
	require.True(t, ok)
	assert.Equal(t, []byte("woRld"), term)

	term, ok = c.Term([]byte{})
	require.True(t, ok)
	assert.Empty(t, term)
}

func TestTermCaseFolding(t *testing.T) {
	c := keywordField(t, schema.NodeMap{"type": "keyword", "case_sensitive": false})

	term, ok := c.Term([]byte("heLlo WoRld"))
	require.True(t, ok)
	assert.Equal(t, []byte("hello world"), term)

	term, ok = c.Term([]byte("ПрИвЕт"))
	require.True(t, ok)
	assert.Equal(t, []byte("привет"), term)
}

func TestTermMaxSize(t *testing.T) {
	c := keywordField(t, schema.NodeMap{"type": "keyword", "max_token_size": 10})

	_, ok := c.Term([]byte("hello world"))
	assert.False(t, ok)

	term, ok := c.Term([]byte("hello"))
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), term)
}

func TestTermPartialIndexing(t *testing.T) {
	c := keywordField(t, schema.NodeMap{
		"type":             "keyword",
		"max_token_size":   10,
		"partial_indexing": true,
	})

	long := strings.Repeat("x", 40)
	term, ok := c.Term([]byte(long))
	require.True(t, ok)
	assert.Equal(t, []byte(long[:10]), term)
}

func TestSerialize(t *testing.T) {
	c := keywordField(t, schema.NodeMap{"type": "keyword"})
	assert.Equal(t, schema.NodeMap{"type": "keyword"}, c.Serialize())

	c = keywordField(t, schema.NodeMap{
		"type":             "keyword",
		"case_sensitive":   false,
		"partial_indexing": true,
		"max_token_size":   10,
		"null_value":       "unknown",
	})
	assert.Equal(t, schema.NodeMap{
		"type":             "keyword",
		"case_sensitive":   false,
		"partial_indexing": true,
		"max_token_size":   10,
		"null_value":       "unknown",
	}, c.Serialize())

	rebuilt, err := Build("message", c.Serialize())
	require.NoError(t, err)
	assert.Equal(t, c.Serialize(), rebuilt.Serialize())
}

func TestMerge(t *testing.T) {
	c := keywordField(t, schema.NodeMap{"type": "keyword"})
	incoming := keywordField(t, schema.NodeMap{"type": "keyword", "null_value": "unknown"})

	require.NoError(t, c.Merge(incoming, true))
	_, ok := c.NullValue()
	assert.False(t, ok)

	require.NoError(t, c.Merge(incoming, false))
	nv, ok := c.NullValue()
	require.True(t, ok)
	assert.Equal(t, "unknown", nv)
}
