package entity

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/checkpoint"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/cluster"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/service/persister"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source returns the window of address groups starting at cursor. It returns source.ErrExhausted
	// when nothing is left; any other error is transient.
	Source interface {
		Fetch(ctx context.Context, cursor, limit uint64) (*model.GroupBatch, error)
	}
	Checkpointer interface {
		Load(ctx context.Context) (*checkpoint.Checkpoint, error)
		Save(ctx context.Context, cursor uint64, state cluster.State) error
	}
	Persister interface {
		Persist(ctx context.Context, clusters []model.Cluster) (persister.Report, error)
	}
	Metrics interface {
		ObserveFetch(err error, groups int, started time.Time)
		ObserveApplyBatch(groups int, started time.Time)
		ObserveCheckpoint(err error, started time.Time)
		IncRestart()
		IncMalformed()
		SetProgress(cursor uint64, entities int)
	}
)
