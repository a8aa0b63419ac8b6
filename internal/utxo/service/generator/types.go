package generator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		MaxContiguousBlockHeightByStatuses(ctx context.Context, coin model.Coin, network model.Network, statuses []model.BlockStatus) (uint64, error)
		PublicKeyAddressesByHeightRange(ctx context.Context, coin model.Coin, network model.Network, from, to uint64) ([]model.PublicKeyAddress, error)
		InsertGeneratedAddresses(ctx context.Context, addresses []model.GeneratedAddress) error
	}
	Deriver interface {
		Derive(addr model.Address) ([]model.GeneratedAddress, error)
	}
	Metrics interface {
		ObserveFetch(err error, keys int, started time.Time)
		IncInvalidKey()
		ObserveWrite(err error, rows int)
	}
)
