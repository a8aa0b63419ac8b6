package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// AddressGroupsByHeightRange returns, per non-coinbase transaction mined in [from, to), the distinct addresses
// that funded its inputs. Groups are ordered by block height, then txid.
func (r *Repository) AddressGroupsByHeightRange(ctx context.Context, coin model.Coin, network model.Network, from, to uint64) ([]model.AddressGroup, error) {
	start := time.Now()
	var (
		err    error
		groups []model.AddressGroup
	)
	defer func() {
		r.metrics.Observe("address_groups_by_height_range", coin, network, len(groups), err, start)
	}()

	if to <= from {
		return nil, nil
	}

	const query = `
SELECT
	txid,
	groupUniqArrayArray(addresses) AS input_addresses
FROM utxo_transaction_inputs
WHERE coin = ? AND network = ? AND block_height >= ? AND block_height < ? AND is_coinbase = false
GROUP BY txid
HAVING length(input_addresses) > 1
ORDER BY min(block_height) ASC, txid ASC`

	rows, err := r.conn.Query(ctx, query, coin, network, from, to)
	if err != nil {
		return nil, fmt.Errorf("query address groups by height range: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var group model.AddressGroup
		if err = rows.Scan(&group.TxID, &group.Addresses); err != nil {
			return nil, fmt.Errorf("scan address group: %w", err)
		}
		groups = append(groups, group)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address groups: %w", err)
	}

	return groups, nil
}
