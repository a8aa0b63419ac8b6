package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// MergeEntities moves every address linked to the merged keys onto survivor, then stores survivor with its
// label and deletes the merged entity records in a single insert. A merge interrupted between the two
// writes leaves merged records without links; DeleteOrphanEntities removes them.
func (s *GraphStore) MergeEntities(ctx context.Context, survivor model.PersistedEntity, merged []model.Address) error {
	start := time.Now()
	var err error
	defer func() {
		s.observe("merge_entities", len(merged), err, start)
	}()

	if survivor.Key == "" {
		err = errors.New("survivor key is required")
		return err
	}

	var victims []model.Address
	for _, key := range merged {
		if key != survivor.Key {
			victims = append(victims, key)
		}
	}

	links, err := s.linkedAddresses(ctx, victims)
	if err != nil {
		return err
	}
	for i := range links {
		links[i].entityKey = survivor.Key
	}
	if err = s.insertLinks(ctx, links, false); err != nil {
		return fmt.Errorf("relink addresses: %w", err)
	}

	entities := append([]entityRow{{entity: survivor}}, tombstones(victims)...)
	if err = s.insertEntities(ctx, entities); err != nil {
		return fmt.Errorf("store survivor and delete merged entities: %w", err)
	}
	return nil
}
