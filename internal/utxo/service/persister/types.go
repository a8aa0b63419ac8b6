package persister

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// GraphStore is the persistent entity graph.
	GraphStore interface {
		EntitiesByAddresses(ctx context.Context, addrs []model.Address) ([]model.EntityLinks, error)
		CreateEntity(ctx context.Context, entity model.PersistedEntity) error
		LinkAddresses(ctx context.Context, key model.Address, addrs []model.Address) error
		MergeEntities(ctx context.Context, survivor model.PersistedEntity, merged []model.Address) error
		DeleteEntities(ctx context.Context, keys []model.Address) error
		DeleteOrphanEntities(ctx context.Context) (int, error)
	}
	Metrics interface {
		ObserveReconcile(outcome string, err error, started time.Time)
		ObservePersist(err error, clusters int, started time.Time)
	}
)
