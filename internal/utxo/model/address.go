package model

import "sort"

// Address is an opaque canonical address identifier. Two addresses are equal only when byte-identical.
type Address = string

// AddressGroup holds the addresses that funded the inputs of a single transaction.
type AddressGroup struct {
	TxID      string
	Addresses []Address
}

// Distinct returns the group's addresses without duplicates, sorted ascending.
func (g AddressGroup) Distinct() []Address {
	return DistinctAddresses(g.Addresses)
}

// DistinctAddresses returns a sorted copy of addrs without duplicates.
func DistinctAddresses(addrs []Address) []Address {
	if len(addrs) == 0 {
		return nil
	}
	out := append([]Address(nil), addrs...)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
