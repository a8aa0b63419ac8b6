package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// InsertGeneratedAddresses stores addresses derived from public keys.
func (r *Repository) InsertGeneratedAddresses(ctx context.Context, addresses []model.GeneratedAddress) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_generated_addresses", firstCoin(addresses), firstNetwork(addresses), len(addresses), err, start)
	}()

	if len(addresses) == 0 {
		return nil
	}

	const query = `
INSERT INTO utxo_generated_addresses (
	coin,
	network,
	block_height,
	public_key,
	address,
	kind
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare generated addresses batch: %w", err)
	}

	for _, a := range addresses {
		if err = batch.Append(
			string(a.Coin),
			string(a.Network),
			a.BlockHeight,
			a.PublicKey,
			a.Address,
			string(a.Kind),
		); err != nil {
			return fmt.Errorf("append generated address: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert generated addresses: %w", err)
	}
	return nil
}

func firstCoin(addresses []model.GeneratedAddress) model.Coin {
	if len(addresses) == 0 {
		return ""
	}
	return addresses[0].Coin
}

func firstNetwork(addresses []model.GeneratedAddress) model.Network {
	if len(addresses) == 0 {
		return ""
	}
	return addresses[0].Network
}
