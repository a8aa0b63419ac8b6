package clickhouse

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// CreateEntity writes an entity record. Writing an existing key replaces its label.
func (s *GraphStore) CreateEntity(ctx context.Context, entity model.PersistedEntity) error {
	start := time.Now()
	var err error
	defer func() {
		s.observe("create_entity", 1, err, start)
	}()

	if entity.Key == "" {
		err = errors.New("entity key is required")
		return err
	}

	err = s.insertEntities(ctx, []entityRow{{entity: entity}})
	return err
}
