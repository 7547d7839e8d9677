package mapping

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initialSchemaData = `mapping-list:
  - name: "ts"
    type: "date"
`

const changedSchemaData = `mapping-list:
  - name: "ts"
    type: "date"
  - name: "trace_id"
    type: "keyword"
`

func writeSchemaFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestProviderWatchUpdates(t *testing.T) {
	dir := t.TempDir()
	schemaFilePath := filepath.Join(dir, "mappings.yaml")
	writeSchemaFile(t, schemaFilePath, initialSchemaData)

	p, err := New(schemaFilePath, WithUpdatePeriod(100*time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, 1, p.Schema().Len())
	_, ok := p.Schema().Date("ts")
	assert.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.WatchUpdates(ctx)

	writeSchemaFile(t, schemaFilePath, changedSchemaData)

	assert.EventuallyWithT(t, func(c *assert.CollectT) {
		_, ok := p.Schema().Keyword("trace_id")
		assert.True(c, ok)
	}, 5*time.Second, 100*time.Millisecond)
}

func TestProviderRejectsIncompatibleUpdate(t *testing.T) {
	dir := t.TempDir()
	schemaFilePath := filepath.Join(dir, "mappings.yaml")
	writeSchemaFile(t, schemaFilePath, initialSchemaData)

	p, err := New(schemaFilePath)
	require.NoError(t, err)

	writeSchemaFile(t, schemaFilePath, `mapping-list:
  - name: "ts"
    type: "keyword"
`)
	p.reload()

	_, ok := p.Schema().Date("ts")
	assert.True(t, ok)

	// a broken file is ignored the same way
	writeSchemaFile(t, schemaFilePath, `mapping-list: [`)
	p.reload()
	assert.Equal(t, 1, p.Schema().Len())
}

func TestProviderNullValueUpdate(t *testing.T) {
	dir := t.TempDir()
	schemaFilePath := filepath.Join(dir, "mappings.yaml")
	writeSchemaFile(t, schemaFilePath, initialSchemaData)

	p, err := New(schemaFilePath)
	require.NoError(t, err)
	updatedAt := p.UpdatedAt()

	writeSchemaFile(t, schemaFilePath, `mapping-list:
  - name: "ts"
    type: "date"
    null_value: "1970-01-02"
`)
	p.reload()

	ts, ok := p.Schema().Date("ts")
	require.True(t, ok)
	nv, ok := ts.NullValue()
	require.True(t, ok)
	assert.Equal(t, "1970-01-02", nv)
	assert.True(t, p.UpdatedAt().After(updatedAt) || p.UpdatedAt().Equal(updatedAt))
}

func TestProviderErrors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	dir := t.TempDir()
	schemaFilePath := filepath.Join(dir, "mappings.yaml")
	writeSchemaFile(t, schemaFilePath, `mapping-list: [`)

	_, err = New(schemaFilePath)
	assert.Error(t, err)
}

func TestProviderStaticSchema(t *testing.T) {
	s := readSchema(t, initialSchemaData)

	p, err := New("", WithSchema(s))
	require.NoError(t, err)
	assert.Same(t, s, p.Schema())
	assert.NotNil(t, p.Raw())
}
