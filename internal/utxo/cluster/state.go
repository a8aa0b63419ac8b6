package cluster

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// ErrInvalidState reports a State that is not a valid partition.
var ErrInvalidState = errors.New("invalid cluster state")

// State is the serializable form of a Clusterer.
type State struct {
	NextID    uint64                     `msgpack:"next_id"`
	Joined    uint64                     `msgpack:"joined"`
	Entities  map[uint64][]model.Address `msgpack:"entities"`
	Addresses map[model.Address]uint64   `msgpack:"addresses"`
}

// State copies the clusterer into its serializable form.
func (c *Clusterer) State() State {
	st := State{
		NextID:    c.nextID,
		Joined:    c.joined,
		Entities:  make(map[uint64][]model.Address, len(c.entities)),
		Addresses: make(map[model.Address]uint64, len(c.addresses)),
	}
	for id, set := range c.entities {
		st.Entities[id] = sortedAddresses(set)
	}
	for addr, id := range c.addresses {
		st.Addresses[addr] = id
	}
	return st
}

// Restore rebuilds a Clusterer from st after checking that both maps describe the same partition.
func Restore(st State) (*Clusterer, error) {
	c := &Clusterer{
		nextID:    st.NextID,
		joined:    st.Joined,
		entities:  make(map[uint64]map[model.Address]struct{}, len(st.Entities)),
		addresses: make(map[model.Address]uint64, len(st.Addresses)),
	}

	members := 0
	for id, addrs := range st.Entities {
		if id >= st.NextID {
			return nil, fmt.Errorf("%w: entity id %d not below counter %d", ErrInvalidState, id, st.NextID)
		}
		if len(addrs) == 0 {
			return nil, fmt.Errorf("%w: entity %d has no addresses", ErrInvalidState, id)
		}
		set := make(map[model.Address]struct{}, len(addrs))
		for _, addr := range addrs {
			owner, ok := st.Addresses[addr]
			if !ok || owner != id {
				return nil, fmt.Errorf("%w: address %q of entity %d maps to %d", ErrInvalidState, addr, id, owner)
			}
			if _, dup := set[addr]; dup {
				return nil, fmt.Errorf("%w: address %q listed twice in entity %d", ErrInvalidState, addr, id)
			}
			set[addr] = struct{}{}
			c.addresses[addr] = id
		}
		members += len(set)
		c.entities[id] = set
	}
	if members != len(st.Addresses) {
		return nil, fmt.Errorf("%w: %d addresses indexed, %d owned by entities", ErrInvalidState, len(st.Addresses), members)
	}

	return c, nil
}
