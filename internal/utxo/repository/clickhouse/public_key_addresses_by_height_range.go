package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// PublicKeyAddressesByHeightRange returns raw public-key addresses paid by outputs in [from, to) that have no
// generated addresses yet, each with the lowest height it appears at.
func (r *Repository) PublicKeyAddressesByHeightRange(ctx context.Context, coin model.Coin, network model.Network, from, to uint64) ([]model.PublicKeyAddress, error) {
	start := time.Now()
	var (
		err    error
		result []model.PublicKeyAddress
	)
	defer func() {
		r.metrics.Observe("public_key_addresses_by_height_range", coin, network, len(result), err, start)
	}()

	if to <= from {
		return nil, nil
	}

	const query = `
SELECT
	min(block_height) AS first_height,
	address
FROM utxo_transaction_outputs
ARRAY JOIN addresses AS address
WHERE coin = ? AND network = ? AND block_height >= ? AND block_height < ?
	AND startsWith(address, 'pk_')
	AND address NOT IN (
		SELECT public_key FROM utxo_generated_addresses WHERE coin = ? AND network = ?
	)
GROUP BY address
ORDER BY first_height ASC, address ASC`

	rows, err := r.conn.Query(ctx, query, coin, network, from, to, coin, network)
	if err != nil {
		return nil, fmt.Errorf("query public key addresses: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var pk model.PublicKeyAddress
		if err = rows.Scan(&pk.BlockHeight, &pk.Address); err != nil {
			return nil, fmt.Errorf("scan public key address: %w", err)
		}
		result = append(result, pk)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate public key addresses: %w", err)
	}

	return result, nil
}
