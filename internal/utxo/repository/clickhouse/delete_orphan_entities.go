package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// DeleteOrphanEntities deletes every entity record that no address links to and returns how many it deleted.
// It must not run concurrently with writers that create an entity before linking it.
func (s *GraphStore) DeleteOrphanEntities(ctx context.Context) (int, error) {
	start := time.Now()
	var (
		err     error
		orphans []model.Address
	)
	defer func() {
		s.observe("delete_orphan_entities", len(orphans), err, start)
	}()

	if orphans, err = s.orphanKeys(ctx); err != nil {
		return 0, err
	}
	if err = s.insertEntities(ctx, tombstones(orphans)); err != nil {
		return 0, fmt.Errorf("delete orphan entities: %w", err)
	}
	return len(orphans), nil
}

func (s *GraphStore) orphanKeys(ctx context.Context) (keys []model.Address, err error) {
	const query = `
SELECT entity_key
FROM utxo_entities FINAL
WHERE coin = ? AND network = ? AND entity_key NOT IN (
	SELECT entity_key
	FROM utxo_address_entities FINAL
	WHERE coin = ? AND network = ?
)
ORDER BY entity_key ASC`

	rows, err := s.repo.conn.Query(ctx, query, s.coin, s.network, s.coin, s.network)
	if err != nil {
		return nil, fmt.Errorf("query orphan entities: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan orphan entity: %w", err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orphan entities: %w", err)
	}
	return keys, nil
}
