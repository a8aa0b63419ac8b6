// Package checkpoint persists clusterer state together with the source cursor it corresponds to.
package checkpoint

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/cluster"
)

const (
	defaultMaxRetries      = 3
	defaultInitialInterval = 200 * time.Millisecond
	defaultMaxInterval     = 2 * time.Second
	tmpSuffix              = ".tmp"
)

// Checkpoint is an immutable snapshot of a clustering run.
type Checkpoint struct {
	// Cursor is the next unprocessed source position.
	Cursor    uint64        `msgpack:"cursor"`
	State     cluster.State `msgpack:"state"`
	CreatedAt time.Time     `msgpack:"created_at"`

	clusterer *cluster.Clusterer
}

// Clusterer returns the clusterer rebuilt from State by Load, or nil for a checkpoint that was not loaded.
func (c *Checkpoint) Clusterer() *cluster.Clusterer {
	return c.clusterer
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackOff replaces the retry policy used by Save.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(m *Manager) {
		m.newBackOff = newBackOff
	}
}

// WithNow overrides the clock stamped into saved checkpoints.
func WithNow(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// Manager saves and loads a single checkpoint file. Two managers must not share a path.
type Manager struct {
	path       string
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
	now        func() time.Time
}

// NewManager builds a Manager publishing to path.
func NewManager(path string, logger *zap.Logger, opts ...Option) (*Manager, error) {
	if path == "" {
		return nil, errors.New("checkpoint path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		path:   path,
		logger: logger.Named("checkpoint").With(zap.String("path", path)),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = defaultInitialInterval
			b.MaxInterval = defaultMaxInterval
			return backoff.WithMaxRetries(b, defaultMaxRetries)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Path returns the published checkpoint location.
func (m *Manager) Path() string {
	return m.path
}

// Save publishes {cursor, state} atomically. A failed save leaves the previous checkpoint in place.
func (m *Manager) Save(ctx context.Context, cursor uint64, state cluster.State) error {
	data, err := encode(&Checkpoint{Cursor: cursor, State: state, CreatedAt: m.now().UTC()})
	if err != nil {
		return err
	}

	attempt := 0
	op := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		attempt++
		if err := m.publish(data); err != nil {
			m.logger.Warn("checkpoint write failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(m.newBackOff(), ctx)); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}

	m.logger.Debug("checkpoint saved", zap.Uint64("cursor", cursor), zap.Int("bytes", len(data)))
	return nil
}

// Load returns the published checkpoint, nil when none exists, or an error wrapping ErrCorrupt.
func (m *Manager) Load(ctx context.Context) (*Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmp := m.path + tmpSuffix
	if err := os.Remove(tmp); err == nil {
		m.logger.Warn("removed leftover checkpoint temp file", zap.String("tmp", tmp))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove leftover checkpoint temp file: %w", err)
	}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	cp, err := decode(data)
	if err != nil {
		return nil, err
	}
	c, err := cluster.Restore(cp.State)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	cp.clusterer = c

	m.logger.Info("checkpoint loaded",
		zap.Uint64("cursor", cp.Cursor),
		zap.Int("entities", c.Entities()),
		zap.Time("created_at", cp.CreatedAt),
	)
	return cp, nil
}

func (m *Manager) publish(data []byte) (err error) {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create checkpoint dir: %w", err)
	}

	tmp := m.path + tmpSuffix
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flush temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open checkpoint dir: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("fsync checkpoint dir: %w", err)
	}
	return nil
}
