// Package cluster implements the common-input-ownership clustering of addresses.
package cluster

import (
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// Clusterer is a disjoint-set over addresses. Entity ids are allocated from a counter owned by the
// clusterer; when groups join several entities the smallest id survives.
//
// Clusterer is not safe for concurrent use.
type Clusterer struct {
	nextID    uint64
	entities  map[uint64]map[model.Address]struct{}
	addresses map[model.Address]uint64
	joined    uint64
}

// New returns an empty Clusterer.
func New() *Clusterer {
	return &Clusterer{
		entities:  make(map[uint64]map[model.Address]struct{}),
		addresses: make(map[model.Address]uint64),
	}
}

// Update applies one address group. Groups with fewer than two distinct addresses carry no signal.
func (c *Clusterer) Update(group []model.Address) {
	if len(group) <= 1 {
		return
	}

	members := make(map[model.Address]struct{}, len(group))
	for _, addr := range group {
		members[addr] = struct{}{}
	}
	if len(members) <= 1 {
		return
	}

	found := make(map[uint64]struct{})
	for addr := range members {
		if id, ok := c.addresses[addr]; ok {
			found[id] = struct{}{}
		}
	}

	if len(found) == 0 {
		id := c.nextID
		c.nextID++
		for addr := range members {
			c.addresses[addr] = id
		}
		c.entities[id] = members
		return
	}

	canonical := minID(found)
	target := c.entities[canonical]
	for id := range found {
		if id == canonical {
			continue
		}
		for addr := range c.entities[id] {
			target[addr] = struct{}{}
			c.addresses[addr] = canonical
		}
		delete(c.entities, id)
		c.joined++
	}
	for addr := range members {
		target[addr] = struct{}{}
		c.addresses[addr] = canonical
	}
}

// EntityOf returns the entity id currently owning addr.
func (c *Clusterer) EntityOf(addr model.Address) (uint64, bool) {
	id, ok := c.addresses[addr]
	return id, ok
}

// Entities returns the number of live entities.
func (c *Clusterer) Entities() int {
	return len(c.entities)
}

// Addresses returns the number of clustered addresses.
func (c *Clusterer) Addresses() int {
	return len(c.addresses)
}

// Joined returns how many entities were absorbed by merges so far.
func (c *Clusterer) Joined() uint64 {
	return c.joined
}

// Clusters returns every entity with more than one address, ordered by representative address.
func (c *Clusterer) Clusters() []model.Cluster {
	out := make([]model.Cluster, 0, len(c.entities))
	for id, set := range c.entities {
		if len(set) <= 1 {
			continue
		}
		out = append(out, model.Cluster{ID: id, Addresses: sortedAddresses(set)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func minID(ids map[uint64]struct{}) uint64 {
	first := true
	var m uint64
	for id := range ids {
		if first || id < m {
			m = id
			first = false
		}
	}
	return m
}

func sortedAddresses(set map[model.Address]struct{}) []model.Address {
	out := make([]model.Address, 0, len(set))
	for addr := range set {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}
