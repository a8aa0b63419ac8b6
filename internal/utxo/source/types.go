// Package source provides upstream batch sources of per-transaction address groups.
//
// A source is asked for the window of groups starting at a cursor. It returns a batch whose Next cursor
// is where the following request must start, ErrExhausted when nothing remains, or any other error for a
// failure worth retrying.
package source

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ErrExhausted is returned when no data remains at the requested cursor.
var ErrExhausted = errors.New("source exhausted")

type (
	// Repository is the storage a ClickhouseSource reads from.
	Repository interface {
		MaxContiguousBlockHeightByStatuses(ctx context.Context, coin model.Coin, network model.Network, statuses []model.BlockStatus) (uint64, error)
		AddressGroupsByHeightRange(ctx context.Context, coin model.Coin, network model.Network, from, to uint64) ([]model.AddressGroup, error)
		GeneratedAddressGroupsByHeightRange(ctx context.Context, coin model.Coin, network model.Network, from, to uint64) ([]model.AddressGroup, error)
	}
)
