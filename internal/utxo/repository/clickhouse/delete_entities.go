package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// DeleteEntities removes the entity records for keys together with every address link pointing at them.
func (s *GraphStore) DeleteEntities(ctx context.Context, keys []model.Address) error {
	start := time.Now()
	var err error
	defer func() {
		s.observe("delete_entities", len(keys), err, start)
	}()

	if len(keys) == 0 {
		return nil
	}

	links, err := s.linkedAddresses(ctx, keys)
	if err != nil {
		return err
	}
	if err = s.insertLinks(ctx, links, true); err != nil {
		return fmt.Errorf("delete address links: %w", err)
	}

	if err = s.insertEntities(ctx, tombstones(keys)); err != nil {
		return fmt.Errorf("delete entities: %w", err)
	}
	return nil
}
