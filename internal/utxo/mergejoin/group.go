package mergejoin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// GroupByTransaction folds consecutive rows sharing a txid into one AddressGroup.
// Rows must be ordered by txid; a txid seen again after another one starts a new group.
func GroupByTransaction(ctx context.Context, rows InputAddressReader, emit func(model.AddressGroup) error) (int, error) {
	var (
		current model.AddressGroup
		started bool
		groups  int
		read    int
	)

	flush := func() error {
		if !started {
			return nil
		}
		current.Addresses = model.DistinctAddresses(current.Addresses)
		groups++
		return emit(current)
	}

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return groups, fmt.Errorf("read input address row: %w", err)
		}
		read++
		if read%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return groups, err
			}
		}

		if started && row.TxID == current.TxID {
			current.Addresses = append(current.Addresses, row.Address)
			continue
		}
		if err := flush(); err != nil {
			return groups, err
		}
		current = model.AddressGroup{TxID: row.TxID, Addresses: []model.Address{row.Address}}
		started = true
	}

	if err := flush(); err != nil {
		return groups, err
	}
	return groups, nil
}
