package mapping

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqmap/seqmap/schema"
)

const testSchemaData = `mapping-list:
  - name: "ts"
    type: "date"
  - name: "created"
    type: "date"
    numeric_resolution: "seconds"
    null_value: "1970-01-02"
  - name: "message"
    type: "keyword"
    case_sensitive: false
`

func readSchema(t *testing.T, data string) *Schema {
	t.Helper()
	s, err := ReadSchema([]byte(data))
	require.NoError(t, err)
	return s
}

func TestReadSchema(t *testing.T) {
	s := readSchema(t, testSchemaData)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"created", "message", "ts"}, s.Names())

	ts, ok := s.Date("ts")
	require.True(t, ok)
	assert.Equal(t, "ts", ts.Name())
	assert.Equal(t, schema.KindDate, ts.Kind())

	created, ok := s.Date("created")
	require.True(t, ok)
	nv, ok := created.NullValue()
	require.True(t, ok)
	assert.Equal(t, "1970-01-02", nv)

	_, ok = s.Keyword("message")
	assert.True(t, ok)

	// kind-typed lookups miss on the wrong kind
	_, ok = s.Date("message")
	assert.False(t, ok)
	_, ok = s.Keyword("ts")
	assert.False(t, ok)
	_, ok = s.Field("nope")
	assert.False(t, ok)
}

func TestReadSchemaSettings(t *testing.T) {
	s := readSchema(t, `settings:
  date_parse_upper_inclusive: false
mapping-list:
  - name: "ts"
    type: "date"
`)

	ts, ok := s.Date("ts")
	require.True(t, ok)

	now := time.Date(2015, time.June, 15, 12, 0, 0, 0, time.UTC)
	r, err := ts.RangePredicate("", "2015-01-02", true, true, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, time.January, 2, 0, 0, 0, 0, time.UTC).UnixMilli(), *r.Upper)
}

func TestReadSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"no fields", `mapping-list: []`},
		{"bad yaml", `mapping-list: [`},
		{"no name", "mapping-list:\n  - type: \"keyword\"\n"},
		{"no type", "mapping-list:\n  - name: \"ts\"\n"},
		{"unknown type", "mapping-list:\n  - name: \"ts\"\n    type: \"geo\"\n"},
		{"duplicate", "mapping-list:\n  - name: \"ts\"\n    type: \"date\"\n  - name: \"ts\"\n    type: \"date\"\n"},
		{"nested prop", "mapping-list:\n  - name: \"ts\"\n    type: \"date\"\n    format:\n      deep: true\n"},
		{"bad field prop", "mapping-list:\n  - name: \"ts\"\n    type: \"date\"\n    precision_step: 128\n"},
	}

	for _, tt := range tests {
		_, err := ReadSchema([]byte(tt.data))
		assert.Error(t, err, tt.name)
	}
}

func TestSchemaMergeSimulate(t *testing.T) {
	s := readSchema(t, testSchemaData)
	incoming := readSchema(t, `mapping-list:
  - name: "ts"
    type: "keyword"
  - name: "message"
    type: "date"
  - name: "fresh"
    type: "keyword"
`)

	err := s.Merge(incoming, true)
	require.Error(t, err)

	// every conflict is reported, nothing is applied
	assert.Contains(t, err.Error(), "mapper [ts] of different type")
	assert.Contains(t, err.Error(), "mapper [message] of different type")

	_, ok := s.Date("ts")
	assert.True(t, ok)
	_, ok = s.Field("fresh")
	assert.False(t, ok)
}

func TestSchemaMergeCommit(t *testing.T) {
	s := readSchema(t, testSchemaData)
	incoming := readSchema(t, `mapping-list:
  - name: "created"
    type: "date"
    numeric_resolution: "seconds"
    null_value: "2000-01-01"
  - name: "fresh"
    type: "keyword"
`)

	require.NoError(t, s.Merge(incoming, false))

	assert.Equal(t, 4, s.Len())
	_, ok := s.Keyword("fresh")
	assert.True(t, ok)

	created, ok := s.Date("created")
	require.True(t, ok)
	nv, ok := created.NullValue()
	require.True(t, ok)
	assert.Equal(t, "2000-01-01", nv)
}

func TestRawSchema(t *testing.T) {
	s := readSchema(t, testSchemaData)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(NewRawSchema(s).Bytes(), &decoded))

	require.Len(t, decoded, 3)
	assert.Equal(t, "date", decoded["ts"]["type"])
	assert.Equal(t, "date_optional_time", decoded["ts"]["format"])
	assert.Equal(t, "seconds", decoded["created"]["numeric_resolution"])
	assert.Equal(t, false, decoded["message"]["case_sensitive"])
}
