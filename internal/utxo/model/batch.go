package model

import (
	"errors"
	"fmt"
)

// ErrMalformedBatch reports a batch or group that cannot be applied to clustering state.
var ErrMalformedBatch = errors.New("malformed batch")

// GroupBatch is a window of address groups fetched from an upstream source.
// Cursor is the first position covered by the window, Next is the next unprocessed position.
type GroupBatch struct {
	Cursor uint64
	Next   uint64
	Groups []AddressGroup
}

// Validate checks that the batch starts at cursor and advances past it. Groups are validated one by one
// by the consumer so that a bad group does not discard the whole window.
func (b *GroupBatch) Validate(cursor uint64) error {
	if b == nil {
		return fmt.Errorf("%w: nil batch", ErrMalformedBatch)
	}
	if b.Cursor != cursor {
		return fmt.Errorf("%w: batch starts at %d, requested %d", ErrMalformedBatch, b.Cursor, cursor)
	}
	if b.Next <= b.Cursor {
		return fmt.Errorf("%w: next cursor %d does not advance past %d", ErrMalformedBatch, b.Next, b.Cursor)
	}
	return nil
}

// Empty reports whether the batch carries no groups.
func (b *GroupBatch) Empty() bool {
	return b == nil || len(b.Groups) == 0
}

// Validate rejects groups carrying an empty address.
func (g AddressGroup) Validate() error {
	for _, addr := range g.Addresses {
		if addr == "" {
			return fmt.Errorf("%w: empty address in tx %q", ErrMalformedBatch, g.TxID)
		}
	}
	return nil
}
