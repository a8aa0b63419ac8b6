package clickhouse

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// EntitiesByAddresses returns the persisted entities linked to any of addrs, each with the subset of addrs
// linked to it, ordered by entity key. A link to an entity record that does not exist is reported as
// model.ErrUnexpectedTopology.
func (s *GraphStore) EntitiesByAddresses(ctx context.Context, addrs []model.Address) ([]model.EntityLinks, error) {
	start := time.Now()
	var (
		err    error
		result []model.EntityLinks
	)
	defer func() {
		s.observe("entities_by_addresses", len(result), err, start)
	}()

	byKey := make(map[model.Address]*model.EntityLinks)
	for lo := 0; lo < len(addrs); lo += lookupChunkSize {
		hi := min(lo+lookupChunkSize, len(addrs))
		if err = s.entitiesByAddressChunk(ctx, addrs[lo:hi], byKey); err != nil {
			return nil, err
		}
	}

	result = make([]model.EntityLinks, 0, len(byKey))
	for _, links := range byKey {
		sort.Strings(links.Addresses)
		result = append(result, *links)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Entity.Key < result[j].Entity.Key
	})
	return result, nil
}

func (s *GraphStore) entitiesByAddressChunk(ctx context.Context, addrs []model.Address, byKey map[model.Address]*model.EntityLinks) (err error) {
	const query = `
SELECT
	l.entity_key,
	e.ekey,
	e.label,
	groupArray(l.address)
FROM
(
	SELECT address, entity_key
	FROM utxo_address_entities FINAL
	WHERE coin = ? AND network = ? AND address IN ?
) AS l
LEFT JOIN
(
	SELECT entity_key AS ekey, label
	FROM utxo_entities FINAL
	WHERE coin = ? AND network = ?
) AS e ON l.entity_key = e.ekey
GROUP BY l.entity_key, e.ekey, e.label`

	rows, err := s.repo.conn.Query(ctx, query, s.coin, s.network, addrs, s.coin, s.network)
	if err != nil {
		return fmt.Errorf("query entities by addresses: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			key, found, label string
			linked            []string
		)
		if err = rows.Scan(&key, &found, &label, &linked); err != nil {
			return fmt.Errorf("scan entity links: %w", err)
		}
		if found == "" {
			return fmt.Errorf("%w: %d addresses linked to missing entity %q", model.ErrUnexpectedTopology, len(linked), key)
		}

		links, ok := byKey[key]
		if !ok {
			links = &model.EntityLinks{Entity: model.PersistedEntity{Key: key, Label: label}}
			byKey[key] = links
		}
		links.Addresses = append(links.Addresses, linked...)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate entity links: %w", err)
	}
	return nil
}
