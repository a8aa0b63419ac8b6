package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// GeneratedAddressGroupsByHeightRange returns one group per public key first seen in [from, to): the public-key
// address itself followed by the addresses derived from it. The group's TxID carries the public-key address.
func (r *Repository) GeneratedAddressGroupsByHeightRange(ctx context.Context, coin model.Coin, network model.Network, from, to uint64) ([]model.AddressGroup, error) {
	start := time.Now()
	var (
		err    error
		groups []model.AddressGroup
	)
	defer func() {
		r.metrics.Observe("generated_address_groups_by_height_range", coin, network, len(groups), err, start)
	}()

	if to <= from {
		return nil, nil
	}

	const query = `
SELECT
	public_key,
	groupUniqArray(address) AS generated
FROM utxo_generated_addresses
WHERE coin = ? AND network = ? AND block_height >= ? AND block_height < ?
GROUP BY public_key
ORDER BY public_key ASC`

	rows, err := r.conn.Query(ctx, query, coin, network, from, to)
	if err != nil {
		return nil, fmt.Errorf("query generated address groups: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			publicKey string
			generated []string
		)
		if err = rows.Scan(&publicKey, &generated); err != nil {
			return nil, fmt.Errorf("scan generated address group: %w", err)
		}
		addresses := make([]model.Address, 0, len(generated)+1)
		addresses = append(addresses, publicKey)
		addresses = append(addresses, generated...)
		groups = append(groups, model.AddressGroup{TxID: publicKey, Addresses: addresses})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generated address groups: %w", err)
	}

	return groups, nil
}
