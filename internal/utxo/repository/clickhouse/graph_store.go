package clickhouse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

const lookupChunkSize = 5000

// GraphStore keeps persisted entities and address links of one coin/network in
// utxo_entities and utxo_address_entities. Both tables are ReplacingMergeTree keyed by
// entity and address respectively, so every write is an insert of a newer version and
// deletions are tombstones. Reads use FINAL, which hides tombstoned rows.
type GraphStore struct {
	repo    *Repository
	coin    model.Coin
	network model.Network

	mu          sync.Mutex
	lastVersion uint64
}

// GraphStore binds the entity graph tables to a coin and network.
func (r *Repository) GraphStore(coin model.Coin, network model.Network) *GraphStore {
	return &GraphStore{repo: r, coin: coin, network: network}
}

// nextVersion returns a strictly increasing row version based on wall-clock nanoseconds.
func (s *GraphStore) nextVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := uint64(time.Now().UnixNano())
	if v <= s.lastVersion {
		v = s.lastVersion + 1
	}
	s.lastVersion = v
	return v
}

func (s *GraphStore) observe(operation string, rows int, err error, started time.Time) {
	s.repo.metrics.Observe(operation, s.coin, s.network, rows, err, started)
}

type linkRow struct {
	address   model.Address
	entityKey model.Address
}

type entityRow struct {
	entity  model.PersistedEntity
	deleted bool
}

func tombstones(keys []model.Address) []entityRow {
	rows := make([]entityRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, entityRow{entity: model.PersistedEntity{Key: key}, deleted: true})
	}
	return rows
}

// insertEntities writes all rows in one insert block, so they become visible together.
func (s *GraphStore) insertEntities(ctx context.Context, rows []entityRow) error {
	if len(rows) == 0 {
		return nil
	}

	const query = `
INSERT INTO utxo_entities (
	coin,
	network,
	entity_key,
	label,
	version,
	is_deleted
) VALUES`

	batch, err := s.repo.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare entities batch: %w", err)
	}

	version := s.nextVersion()
	for _, row := range rows {
		if err = batch.Append(
			string(s.coin),
			string(s.network),
			row.entity.Key,
			row.entity.Label,
			version,
			boolToUint8(row.deleted),
		); err != nil {
			return fmt.Errorf("append entity: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert entities: %w", err)
	}
	return nil
}

func (s *GraphStore) insertLinks(ctx context.Context, links []linkRow, deleted bool) error {
	if len(links) == 0 {
		return nil
	}

	const query = `
INSERT INTO utxo_address_entities (
	coin,
	network,
	address,
	entity_key,
	version,
	is_deleted
) VALUES`

	batch, err := s.repo.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare address links batch: %w", err)
	}

	version := s.nextVersion()
	for _, l := range links {
		if err = batch.Append(
			string(s.coin),
			string(s.network),
			l.address,
			l.entityKey,
			version,
			boolToUint8(deleted),
		); err != nil {
			return fmt.Errorf("append address link: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert address links: %w", err)
	}
	return nil
}

// linkedAddresses returns every live link pointing at one of keys.
func (s *GraphStore) linkedAddresses(ctx context.Context, keys []model.Address) (links []linkRow, err error) {
	if len(keys) == 0 {
		return nil, nil
	}

	const query = `
SELECT
	address,
	entity_key
FROM utxo_address_entities FINAL
WHERE coin = ? AND network = ? AND entity_key IN ?
ORDER BY address ASC`

	rows, err := s.repo.conn.Query(ctx, query, s.coin, s.network, keys)
	if err != nil {
		return nil, fmt.Errorf("query linked addresses: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var l linkRow
		if err = rows.Scan(&l.address, &l.entityKey); err != nil {
			return nil, fmt.Errorf("scan linked address: %w", err)
		}
		links = append(links, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate linked addresses: %w", err)
	}
	return links, nil
}

func boolToUint8(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
