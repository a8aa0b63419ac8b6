package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// ClickhouseSource serves address groups by block height. Its cursor is a block height and a window never
// reaches past the highest height up to which every block is processed.
type ClickhouseSource struct {
	repo          Repository
	coin          model.Coin
	network       model.Network
	withGenerated bool
	logger        *zap.Logger
}

// ClickhouseOption configures a ClickhouseSource.
type ClickhouseOption func(*ClickhouseSource)

// WithGeneratedGroups adds, per window, one group per public key holding the key and its derived addresses.
func WithGeneratedGroups() ClickhouseOption {
	return func(s *ClickhouseSource) {
		s.withGenerated = true
	}
}

// NewClickhouseSource builds a ClickhouseSource for coin and network.
func NewClickhouseSource(repo Repository, coin model.Coin, network model.Network, logger *zap.Logger, opts ...ClickhouseOption) (*ClickhouseSource, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ClickhouseSource{
		repo:    repo,
		coin:    coin,
		network: network,
		logger: logger.Named("clickhouse_source").With(
			zap.String("coin", string(coin)),
			zap.String("network", string(network)),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Tip returns the highest block height the source will serve. It wraps model.ErrNoBlocks while genesis is
// not yet processed.
func (s *ClickhouseSource) Tip(ctx context.Context) (uint64, error) {
	tip, err := s.repo.MaxContiguousBlockHeightByStatuses(ctx, s.coin, s.network, []model.BlockStatus{model.BlockProcessed})
	if err != nil {
		return 0, fmt.Errorf("load processed tip: %w", err)
	}
	return tip, nil
}

// Fetch returns the groups of blocks [cursor, min(cursor+limit, tip+1)).
func (s *ClickhouseSource) Fetch(ctx context.Context, cursor, limit uint64) (*model.GroupBatch, error) {
	if limit == 0 {
		return nil, errors.New("limit must be positive")
	}

	tip, err := s.Tip(ctx)
	if errors.Is(err, model.ErrNoBlocks) {
		return nil, ErrExhausted
	}
	if err != nil {
		return nil, err
	}
	if cursor > tip {
		return nil, ErrExhausted
	}
	next := min(cursor+limit, tip+1)

	groups, err := s.repo.AddressGroupsByHeightRange(ctx, s.coin, s.network, cursor, next)
	if err != nil {
		return nil, fmt.Errorf("load address groups [%d, %d): %w", cursor, next, err)
	}
	groups = s.dropInvalid(groups)

	if s.withGenerated {
		generated, err := s.repo.GeneratedAddressGroupsByHeightRange(ctx, s.coin, s.network, cursor, next)
		if err != nil {
			return nil, fmt.Errorf("load generated address groups [%d, %d): %w", cursor, next, err)
		}
		groups = append(groups, generated...)
	}

	return &model.GroupBatch{Cursor: cursor, Next: next, Groups: groups}, nil
}

func (s *ClickhouseSource) dropInvalid(groups []model.AddressGroup) []model.AddressGroup {
	kept := groups[:0]
	for _, g := range groups {
		if _, err := chainhash.NewHashFromStr(g.TxID); err != nil || len(g.TxID) != chainhash.MaxHashStringSize {
			s.logger.Warn("dropping group with invalid txid", zap.String("txid", g.TxID), zap.Error(err))
			continue
		}
		kept = append(kept, g)
	}
	return kept
}
