// Package mergejoin correlates transaction inputs with the addresses that funded them by merge-joining
// two relations sorted by output reference.
package mergejoin

import (
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// ErrUnsorted is returned when order checking is enabled and a relation goes backwards.
var ErrUnsorted = errors.New("relation not sorted by join key")

type (
	// InputRef is a row of R1: a transaction input spending an output reference.
	InputRef struct {
		TxID      string
		OutputRef string
	}
	// OutputAddress is a row of R2: an output reference paying an address.
	OutputAddress struct {
		OutputRef string
		Address   model.Address
	}
	// InputAddress is a joined row: an address that funded an input of a transaction.
	InputAddress struct {
		TxID    string
		Address model.Address
	}
)

type (
	// InputReader yields R1 rows in ascending OutputRef order and io.EOF at the end.
	InputReader interface {
		Next() (InputRef, error)
	}
	// OutputReader yields R2 rows in ascending OutputRef order and io.EOF at the end.
	OutputReader interface {
		Next() (OutputAddress, error)
	}
	// InputAddressReader yields joined rows ordered by TxID and io.EOF at the end.
	InputAddressReader interface {
		Next() (InputAddress, error)
	}
)

// Stats summarizes a join.
type Stats struct {
	Inputs    uint64
	Matched   uint64
	Unmatched uint64
	// Ambiguous counts inputs whose output reference pays more than one distinct address.
	Ambiguous uint64
}
