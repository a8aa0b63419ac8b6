// Package entity drives address clustering from an upstream source with checkpointing and a final
// hand-off to the graph persister.
package entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/cluster"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/service/persister"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/source"
)

// Config holds the tunables of a clustering run. Zero values fall back to defaults.
type Config struct {
	// BatchSize is the window size requested from the source.
	BatchSize uint64
	// QueueSize bounds the number of fetched batches waiting to be applied.
	QueueSize int
	// CheckpointEvery is the number of applied batches between checkpoint saves.
	CheckpointEvery int
	// StartCursor is used when no checkpoint exists.
	StartCursor uint64
	SkipPersist bool
}

func (c Config) withDefaults() Config {
	if c.BatchSize == 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaultQueueSize
	}
	if c.CheckpointEvery <= 0 {
		c.CheckpointEvery = defaultCheckpointEvery
	}
	return c
}

// Progress is reported after every applied batch.
type Progress struct {
	Cursor   uint64
	Entities int
	Batches  int
}

// Summary describes a finished run.
type Summary struct {
	// Cursor is the next unprocessed position.
	Cursor      uint64
	Entities    int
	Clusters    int
	Joined      uint64
	Batches     int
	Restarts    int
	Interrupted bool
	Persisted   bool
	Report      persister.Report
}

type Option func(*Service)

// WithProgress registers a callback invoked from the consuming goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(s *Service) {
		s.progress = fn
	}
}

// WithRestartBackOff replaces the delay policy between fetch restarts.
func WithRestartBackOff(newBackOff func() backoff.BackOff) Option {
	return func(s *Service) {
		s.newBackOff = newBackOff
	}
}

type Service struct {
	logger       *zap.Logger
	coin         model.Coin
	network      model.Network
	source       Source
	checkpointer Checkpointer
	persister    Persister
	metrics      Metrics
	cfg          Config
	sleep        func(context.Context, time.Duration) error
	newBackOff   func() backoff.BackOff
	progress     func(Progress)
}

func NewService(
	src Source,
	checkpointer Checkpointer,
	p Persister,
	metrics Metrics,
	cfg Config,
	coin model.Coin,
	network model.Network,
	logger *zap.Logger,
	opts ...Option,
) (*Service, error) {
	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)

	if src == nil {
		return nil, errors.New("cluster service source is required")
	}
	if checkpointer == nil {
		return nil, errors.New("cluster service checkpointer is required")
	}
	if p == nil && !cfg.SkipPersist {
		return nil, errors.New("cluster service persister is required")
	}
	if metrics == nil {
		return nil, errors.New("cluster service metrics is required")
	}

	s := &Service{
		logger:       logger,
		coin:         coin,
		network:      network,
		source:       src,
		checkpointer: checkpointer,
		persister:    p,
		metrics:      metrics,
		cfg:          cfg.withDefaults(),
		sleep:        clock.SleepWithContext,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = restartInitialInterval
			b.MaxInterval = restartMaxInterval
			b.MaxElapsedTime = 0
			return b
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run clusters the source from the last checkpoint until it is exhausted or ctx is cancelled, saves a final
// checkpoint and persists the clusters. Cancellation is not an error: the run drains, checkpoints and
// persists what it has, and reports Interrupted.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	clusterer, cursor, err := s.resume(ctx)
	if err != nil {
		return Summary{}, err
	}

	run := &run{
		Service:   s,
		clusterer: clusterer,
		cursor:    cursor,
		restart:   s.newBackOff(),
	}
	if err := run.loop(ctx); err != nil {
		return run.summary(), err
	}

	// Everything below must finish even after cancellation.
	final := context.WithoutCancel(ctx)
	run.checkpoint(final)

	clusters := clusterer.Clusters()
	summary := run.summary()
	summary.Clusters = len(clusters)
	summary.Interrupted = ctx.Err() != nil
	s.logger.Info("clustering finished",
		zap.Uint64("cursor", summary.Cursor),
		zap.Int("entities", summary.Entities),
		zap.Int("clusters", summary.Clusters),
		zap.Uint64("joined", summary.Joined),
		zap.Int("batches", summary.Batches),
		zap.Int("restarts", summary.Restarts),
		zap.Bool("interrupted", summary.Interrupted),
	)

	if s.cfg.SkipPersist {
		return summary, nil
	}
	report, err := s.persister.Persist(final, clusters)
	summary.Report = report
	if err != nil {
		s.logger.Error("persist clusters failed", zap.Error(err))
		return summary, fmt.Errorf("persist clusters: %w", err)
	}
	summary.Persisted = true
	return summary, nil
}

func (s *Service) resume(ctx context.Context) (*cluster.Clusterer, uint64, error) {
	cp, err := s.checkpointer.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("load checkpoint: %w", err)
	}
	if cp == nil {
		s.logger.Info("no checkpoint found, starting fresh", zap.Uint64("cursor", s.cfg.StartCursor))
		return cluster.New(), s.cfg.StartCursor, nil
	}

	clusterer := cp.Clusterer()
	if clusterer == nil {
		if clusterer, err = cluster.Restore(cp.State); err != nil {
			return nil, 0, fmt.Errorf("restore checkpoint state: %w", err)
		}
	}
	s.logger.Info("resuming from checkpoint",
		zap.Uint64("cursor", cp.Cursor),
		zap.Int("entities", clusterer.Entities()),
		zap.Time("created_at", cp.CreatedAt),
	)
	return clusterer, cp.Cursor, nil
}

// fetchEvent is what the fetch goroutine hands to the consumer. Exactly one of batch, err or done is set.
// A batch carrying malformed is an empty stand-in for a window the source served malformed.
type fetchEvent struct {
	batch     *model.GroupBatch
	malformed error
	err       error
	done      bool
}

// fetch requests windows from cursor onwards until the source is exhausted, a request fails, or ctx is
// cancelled. A request already in flight is completed even when ctx is cancelled meanwhile.
func (s *Service) fetch(ctx context.Context, cursor uint64, events chan<- fetchEvent) {
	defer close(events)
	logger := s.logger.Named("fetcher")
	requestCtx := context.WithoutCancel(ctx)

	for {
		if ctx.Err() != nil {
			logger.Info("stop requested", zap.Uint64("cursor", cursor))
			events <- fetchEvent{done: true}
			return
		}

		started := time.Now()
		batch, err := s.source.Fetch(requestCtx, cursor, s.cfg.BatchSize)
		if errors.Is(err, source.ErrExhausted) {
			s.metrics.ObserveFetch(nil, 0, started)
			logger.Info("source exhausted", zap.Uint64("cursor", cursor))
			events <- fetchEvent{done: true}
			return
		}
		if err == nil {
			err = batch.Validate(cursor)
		}
		if errors.Is(err, model.ErrMalformedBatch) {
			s.metrics.ObserveFetch(err, 0, started)
			next := skipTarget(batch, cursor)
			events <- fetchEvent{batch: &model.GroupBatch{Cursor: cursor, Next: next}, malformed: err}
			cursor = next
			continue
		}
		if err != nil {
			s.metrics.ObserveFetch(err, 0, started)
			events <- fetchEvent{err: fmt.Errorf("fetch batch at %d: %w", cursor, err)}
			return
		}
		s.metrics.ObserveFetch(nil, len(batch.Groups), started)

		events <- fetchEvent{batch: batch}
		cursor = batch.Next
	}
}

// skipTarget is where fetching resumes after a malformed batch: its Next when that moves forward, otherwise
// the position after cursor.
func skipTarget(batch *model.GroupBatch, cursor uint64) uint64 {
	if batch != nil && batch.Next > cursor {
		return batch.Next
	}
	return cursor + 1
}

// run is the state owned by the consuming goroutine.
type run struct {
	*Service
	clusterer *cluster.Clusterer
	cursor    uint64
	restart   backoff.BackOff

	batches         int
	sinceCheckpoint int
	restarts        int
}

func (r *run) loop(ctx context.Context) error {
	for {
		events := make(chan fetchEvent, r.cfg.QueueSize)
		go r.fetch(ctx, r.cursor, events)

		err := r.consume(ctx, events)
		if err == nil {
			return nil
		}

		delay := r.restart.NextBackOff()
		if delay == backoff.Stop {
			return fmt.Errorf("fetch restarts exhausted: %w", err)
		}
		r.restarts++
		r.metrics.IncRestart()
		r.logger.Warn("fetch failed, restarting",
			zap.Uint64("cursor", r.cursor),
			zap.Duration("sleep", delay),
			zap.Int("restarts", r.restarts),
			zap.Error(err),
		)
		if err := r.sleep(ctx, delay); err != nil {
			r.logger.Info("stop requested during restart backoff", zap.Uint64("cursor", r.cursor))
			return nil
		}
	}
}

// consume applies batches until the fetcher reports end of stream (nil) or a failure. The channel is always
// drained so the fetcher never blocks on exit.
func (r *run) consume(ctx context.Context, events <-chan fetchEvent) error {
	for ev := range events {
		switch {
		case ev.done:
			return nil
		case ev.err != nil:
			return ev.err
		case ev.malformed != nil:
			r.metrics.IncMalformed()
			r.logger.Warn("skipping malformed batch",
				zap.Uint64("cursor", ev.batch.Cursor),
				zap.Uint64("next", ev.batch.Next),
				zap.Error(ev.malformed),
			)
		}
		r.apply(ev.batch)
		r.restart.Reset()

		// After cancellation only the final checkpoint is written.
		r.sinceCheckpoint++
		if r.sinceCheckpoint >= r.cfg.CheckpointEvery && ctx.Err() == nil {
			r.checkpoint(ctx)
		}
	}
	return errors.New("fetcher stopped without end of stream")
}

func (r *run) apply(batch *model.GroupBatch) {
	started := time.Now()
	for _, group := range batch.Groups {
		if err := group.Validate(); err != nil {
			r.metrics.IncMalformed()
			r.logger.Warn("skipping malformed group", zap.Uint64("cursor", batch.Cursor), zap.Error(err))
			continue
		}
		r.clusterer.Update(group.Addresses)
	}
	r.metrics.ObserveApplyBatch(len(batch.Groups), started)
	if batch.Empty() {
		r.logger.Debug("empty batch", zap.Uint64("cursor", batch.Cursor), zap.Uint64("next", batch.Next))
	}

	r.cursor = batch.Next
	r.batches++
	r.metrics.SetProgress(r.cursor, r.clusterer.Entities())
	if r.progress != nil {
		r.progress(Progress{Cursor: r.cursor, Entities: r.clusterer.Entities(), Batches: r.batches})
	}
}

// checkpoint saves the current state. Failures leave the previous checkpoint in place and are not fatal.
func (r *run) checkpoint(ctx context.Context) {
	started := time.Now()
	err := r.checkpointer.Save(ctx, r.cursor, r.clusterer.State())
	r.metrics.ObserveCheckpoint(err, started)
	if err != nil {
		r.logger.Warn("checkpoint save failed", zap.Uint64("cursor", r.cursor), zap.Error(err))
		return
	}
	r.sinceCheckpoint = 0
	r.logger.Info("checkpoint saved", zap.Uint64("cursor", r.cursor), zap.Int("entities", r.clusterer.Entities()))
}

func (r *run) summary() Summary {
	return Summary{
		Cursor:   r.cursor,
		Entities: r.clusterer.Entities(),
		Joined:   r.clusterer.Joined(),
		Batches:  r.batches,
		Restarts: r.restarts,
	}
}
