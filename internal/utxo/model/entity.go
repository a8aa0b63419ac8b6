package model

import "errors"

// ErrUnexpectedTopology reports graph store data that breaks the entity model,
// such as an address linked to an entity record that does not exist.
var ErrUnexpectedTopology = errors.New("unexpected entity topology")

// Cluster is an in-memory entity: addresses believed to share an owner.
// Addresses are sorted ascending.
type Cluster struct {
	ID        uint64
	Addresses []Address
}

// Key returns the representative address of the cluster: its smallest address.
func (c Cluster) Key() Address {
	if len(c.Addresses) == 0 {
		return ""
	}
	return c.Addresses[0]
}

// PersistedEntity is an entity node of the graph store.
type PersistedEntity struct {
	Key   Address
	Label string
}

// EntityLinks is a persisted entity together with the subset of queried addresses linked to it.
type EntityLinks struct {
	Entity    PersistedEntity
	Addresses []Address
}
