package mapping

import (
	"context"
	"crypto/sha256"
	"os"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/seqmap/seqmap/consts"
	"github.com/seqmap/seqmap/logger"
	"github.com/seqmap/seqmap/metric"
	"github.com/seqmap/seqmap/util"
)

type Option func(*Provider)

func WithUpdatePeriod(up time.Duration) Option {
	return func(p *Provider) {
		p.updatePeriod = up
	}
}

// WithSchema serves a fixed schema and never touches the file.
func WithSchema(s *Schema) Option {
	return func(p *Provider) {
		p.schema = s
		p.raw = NewRawSchema(s)
	}
}

type Provider struct {
	filePath     string
	updatePeriod time.Duration
	checksum     [sha256.Size]byte

	mu        sync.RWMutex
	schema    *Schema
	raw       *RawSchema
	updatedAt atomic.Time
}

func New(filePath string, opts ...Option) (*Provider, error) {
	p := &Provider{
		filePath:     filePath,
		updatePeriod: consts.DefaultSchemaUpdatePeriod,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.schema != nil {
		return p, nil
	}

	if err := p.init(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Provider) Schema() *Schema {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.schema
}

func (p *Provider) Raw() *RawSchema {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.raw
}

// UpdatedAt reports when the schema last changed.
func (p *Provider) UpdatedAt() time.Time {
	return p.updatedAt.Load()
}

// WatchUpdates periodically re-reads the schema file and folds detected
// changes into the live schema.
func (p *Provider) WatchUpdates(ctx context.Context) {
	logger.Info("starting schema file watcher", zap.String("file", p.filePath))

	go util.RunEvery(ctx.Done(), p.updatePeriod, p.reload)
}

func (p *Provider) init() error {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return err
	}

	p.checksum = sha256.Sum256(data)

	s, err := ReadSchema(data)
	if err != nil {
		return err
	}

	p.schema = s
	p.raw = NewRawSchema(s)
	p.updatedAt.Store(time.Now())

	return nil
}

func (p *Provider) reload() {
	logger.Debug("checking schema file for updates...", zap.String("file", p.filePath))

	data, err := os.ReadFile(p.filePath)
	if err != nil {
		logger.Error("error opening schema file", zap.Error(err))
		metric.SchemaReloadErrors.Inc()
		return
	}

	newChecksum := sha256.Sum256(data)
	if newChecksum == p.checksum {
		logger.Debug("no schema updates")
		return
	}

	incoming, err := ReadSchema(data)
	if err != nil {
		logger.Error("failed to read new schema", zap.Error(err))
		metric.SchemaReloadErrors.Inc()
		return
	}

	if err := p.update(incoming); err != nil {
		logger.Error("schema update rejected", zap.Error(err))
		metric.SchemaMergeRejects.Inc()
		return
	}

	p.checksum = newChecksum
	metric.SchemaReloadsTotal.Inc()
	logger.Info("schema updated",
		zap.String("file", p.filePath),
		zap.Int("fields", p.Schema().Len()))
}

// update folds the incoming schema into the live one. Every merge is
// simulated first so a rejected update leaves the schema untouched.
func (p *Provider) update(incoming *Schema) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.schema.Merge(incoming, true); err != nil {
		return err
	}
	if err := p.schema.Merge(incoming, false); err != nil {
		return err
	}

	p.raw = NewRawSchema(p.schema)
	p.updatedAt.Store(time.Now())

	return nil
}
