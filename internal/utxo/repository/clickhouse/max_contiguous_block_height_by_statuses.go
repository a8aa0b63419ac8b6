package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// MaxContiguousBlockHeightByStatuses returns the highest height H such that every block in [0, H] has one of the
// given statuses. It returns model.ErrNoBlocks when not even genesis qualifies.
func (r *Repository) MaxContiguousBlockHeightByStatuses(ctx context.Context, coin model.Coin, network model.Network, statuses []model.BlockStatus) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_contiguous_block_height_by_status", coin, network, 1, err, start)
	}()

	if len(statuses) == 0 {
		err = errors.New("statuses is required")
		return 0, err
	}

	bound := make([]string, 0, len(statuses))
	for _, s := range statuses {
		bound = append(bound, string(s))
	}

	// Heights are dense from genesis, so a height equal to its ordinal closes an unbroken prefix.
	const query = `
SELECT max(height), count()
FROM (
	SELECT
		height,
		row_number() OVER (ORDER BY height) - 1 AS ordinal
	FROM (
		SELECT height
		FROM utxo_blocks
		WHERE coin = ? AND network = ?
		GROUP BY height
		HAVING argMax(status, updated_at) IN ?
	)
)
WHERE ordinal = height`

	var (
		height uint64
		blocks uint64
	)
	if err = r.conn.QueryRow(ctx, query, coin, network, bound).Scan(&height, &blocks); err != nil {
		return 0, fmt.Errorf("query max contiguous block height: %w", err)
	}
	if blocks == 0 {
		return 0, model.ErrNoBlocks
	}
	return height, nil
}
