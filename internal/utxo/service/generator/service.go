// Package generator derives P2PKH and P2WPKH addresses for raw public-key addresses stored in ClickHouse, so
// that the clustering source can fold every form of a key into one group.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-entities/pkg/batcher"
)

type Config struct {
	StartHeight uint64
	// MaxHeight caps the walk; zero means the highest contiguously processed height.
	MaxHeight  uint64
	WindowSize uint64
	FlushSize  int
}

type Summary struct {
	// Height is the last height covered.
	Height    uint64
	Windows   int
	Keys      int
	Invalid   int
	Generated int
}

type Service struct {
	logger  *zap.Logger
	coin    model.Coin
	network model.Network
	repo    Repository
	deriver Deriver
	metrics Metrics
	cfg     Config
}

type window struct {
	from, to uint64
	keys     []model.PublicKeyAddress
}

func NewService(
	repo Repository,
	deriver Deriver,
	metrics Metrics,
	cfg Config,
	coin model.Coin,
	network model.Network,
	logger *zap.Logger,
) (*Service, error) {
	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)

	if repo == nil {
		return nil, errors.New("pubkey generator repository is required")
	}
	if deriver == nil {
		return nil, errors.New("pubkey generator deriver is required")
	}
	if metrics == nil {
		return nil, errors.New("pubkey generator metrics is required")
	}
	if cfg.WindowSize == 0 {
		cfg.WindowSize = defaultWindowSize
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = defaultFlushSize
	}

	return &Service{
		logger:  logger,
		coin:    coin,
		network: network,
		repo:    repo,
		deriver: deriver,
		metrics: metrics,
		cfg:     cfg,
	}, nil
}

// Run walks height windows from StartHeight up to the tip once. One goroutine fetches public keys, another
// derives addresses and queues them for batched inserts.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	tip, err := s.repo.MaxContiguousBlockHeightByStatuses(ctx, s.coin, s.network, []model.BlockStatus{model.BlockProcessed})
	if errors.Is(err, model.ErrNoBlocks) {
		s.logger.Info("nothing to generate, no processed blocks")
		return Summary{}, nil
	}
	if err != nil {
		return Summary{}, fmt.Errorf("get tip: %w", err)
	}
	if s.cfg.MaxHeight > 0 && s.cfg.MaxHeight < tip {
		tip = s.cfg.MaxHeight
	}
	if s.cfg.StartHeight > tip {
		s.logger.Info("nothing to generate", zap.Uint64("start_height", s.cfg.StartHeight), zap.Uint64("tip", tip))
		return Summary{}, nil
	}
	s.logger.Info("generating addresses", zap.Uint64("from", s.cfg.StartHeight), zap.Uint64("to", tip))

	var summary Summary
	g, gctx := errgroup.WithContext(ctx)
	windows := make(chan window, windowQueueSize)

	g.Go(func() error {
		defer close(windows)
		return s.produce(gctx, tip, windows)
	})
	g.Go(func() error {
		return s.consume(gctx, windows, &summary)
	})

	if err := g.Wait(); err != nil {
		return summary, err
	}
	s.logger.Info("generation finished",
		zap.Uint64("height", summary.Height),
		zap.Int("keys", summary.Keys),
		zap.Int("invalid", summary.Invalid),
		zap.Int("generated", summary.Generated),
	)
	return summary, nil
}

func (s *Service) produce(ctx context.Context, tip uint64, out chan<- window) error {
	for from := s.cfg.StartHeight; from <= tip; from += s.cfg.WindowSize {
		to := min(from+s.cfg.WindowSize, tip+1)

		started := time.Now()
		keys, err := s.repo.PublicKeyAddressesByHeightRange(ctx, s.coin, s.network, from, to)
		s.metrics.ObserveFetch(err, len(keys), started)
		if err != nil {
			return fmt.Errorf("fetch public keys [%d, %d): %w", from, to, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- window{from: from, to: to, keys: keys}:
		}
	}
	return nil
}

func (s *Service) consume(ctx context.Context, windows <-chan window, summary *Summary) (err error) {
	b := batcher.New(s.logger.Named("batcher"), s.write, s.cfg.FlushSize, flushInterval, flushRatePerSecond)
	b.Start(ctx)
	defer func() {
		if stopErr := b.Stop(); stopErr != nil && err == nil {
			err = fmt.Errorf("write generated addresses: %w", stopErr)
		}
	}()

	for w := range windows {
		for _, key := range w.keys {
			generated, err := s.deriver.Derive(key.Address)
			if err != nil {
				summary.Invalid++
				s.metrics.IncInvalidKey()
				s.logger.Debug("skipping invalid public key", zap.String("address", key.Address), zap.Error(err))
				continue
			}
			for _, ga := range generated {
				ga.Coin = s.coin
				ga.Network = s.network
				ga.BlockHeight = key.BlockHeight
				if err := b.Add(ctx, ga); err != nil {
					return err
				}
				summary.Generated++
			}
		}
		summary.Windows++
		summary.Keys += len(w.keys)
		summary.Height = w.to - 1
		s.logger.Debug("window processed", zap.Uint64("from", w.from), zap.Uint64("to", w.to), zap.Int("keys", len(w.keys)))
	}
	return ctx.Err()
}

func (s *Service) write(ctx context.Context, addresses []model.GeneratedAddress) error {
	err := s.repo.InsertGeneratedAddresses(ctx, addresses)
	s.metrics.ObserveWrite(err, len(addresses))
	return err
}
