// Package memory holds in-memory implementations of storage used for dry runs and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// GraphStore keeps entities and address links in maps. It is safe for concurrent use.
type GraphStore struct {
	mu       sync.RWMutex
	entities map[model.Address]string
	links    map[model.Address]model.Address
}

// Snapshot is a point-in-time copy of a GraphStore.
type Snapshot struct {
	// Entities maps entity key to label.
	Entities map[model.Address]string
	// Links maps address to entity key.
	Links map[model.Address]model.Address
}

// Members groups linked addresses by entity key, each list sorted.
func (s Snapshot) Members() map[model.Address][]model.Address {
	out := make(map[model.Address][]model.Address, len(s.Entities))
	for addr, key := range s.Links {
		out[key] = append(out[key], addr)
	}
	for key := range out {
		sort.Strings(out[key])
	}
	return out
}

func NewGraphStore() *GraphStore {
	return &GraphStore{
		entities: make(map[model.Address]string),
		links:    make(map[model.Address]model.Address),
	}
}

func (s *GraphStore) EntitiesByAddresses(ctx context.Context, addrs []model.Address) ([]model.EntityLinks, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	byKey := make(map[model.Address]*model.EntityLinks)
	seen := make(map[model.Address]struct{}, len(addrs))
	for _, addr := range addrs {
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}

		key, ok := s.links[addr]
		if !ok {
			continue
		}
		label, ok := s.entities[key]
		if !ok {
			return nil, fmt.Errorf("%w: address %q linked to missing entity %q", model.ErrUnexpectedTopology, addr, key)
		}
		links, ok := byKey[key]
		if !ok {
			links = &model.EntityLinks{Entity: model.PersistedEntity{Key: key, Label: label}}
			byKey[key] = links
		}
		links.Addresses = append(links.Addresses, addr)
	}

	result := make([]model.EntityLinks, 0, len(byKey))
	for _, links := range byKey {
		sort.Strings(links.Addresses)
		result = append(result, *links)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Entity.Key < result[j].Entity.Key
	})
	return result, nil
}

func (s *GraphStore) CreateEntity(ctx context.Context, entity model.PersistedEntity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entity.Key == "" {
		return errors.New("entity key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities[entity.Key] = entity.Label
	return nil
}

func (s *GraphStore) LinkAddresses(ctx context.Context, key model.Address, addrs []model.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return errors.New("entity key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, addr := range addrs {
		s.links[addr] = key
	}
	return nil
}

func (s *GraphStore) MergeEntities(ctx context.Context, survivor model.PersistedEntity, merged []model.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if survivor.Key == "" {
		return errors.New("survivor key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	victims := make(map[model.Address]struct{}, len(merged))
	for _, key := range merged {
		if key != survivor.Key {
			victims[key] = struct{}{}
		}
	}
	for addr, key := range s.links {
		if _, ok := victims[key]; ok {
			s.links[addr] = survivor.Key
		}
	}
	s.entities[survivor.Key] = survivor.Label
	for key := range victims {
		delete(s.entities, key)
	}
	return nil
}

func (s *GraphStore) DeleteEntities(ctx context.Context, keys []model.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := make(map[model.Address]struct{}, len(keys))
	for _, key := range keys {
		doomed[key] = struct{}{}
		delete(s.entities, key)
	}
	for addr, key := range s.links {
		if _, ok := doomed[key]; ok {
			delete(s.links, addr)
		}
	}
	return nil
}

// DeleteOrphanEntities deletes entity records that no address links to.
func (s *GraphStore) DeleteOrphanEntities(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	linked := make(map[model.Address]struct{}, len(s.entities))
	for _, key := range s.links {
		linked[key] = struct{}{}
	}
	deleted := 0
	for key := range s.entities {
		if _, ok := linked[key]; !ok {
			delete(s.entities, key)
			deleted++
		}
	}
	return deleted, nil
}

// Snapshot copies the current contents.
func (s *GraphStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Entities: make(map[model.Address]string, len(s.entities)),
		Links:    make(map[model.Address]model.Address, len(s.links)),
	}
	for k, v := range s.entities {
		snap.Entities[k] = v
	}
	for k, v := range s.links {
		snap.Links[k] = v
	}
	return snap
}
