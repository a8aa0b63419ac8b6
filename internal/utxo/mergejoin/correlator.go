package mergejoin

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const ctxCheckInterval = 4096

// Option configures a Correlator.
type Option func(*Correlator)

// WithOrderCheck makes Join fail with ErrUnsorted as soon as either relation goes backwards.
// Without it unsorted input silently produces wrong output.
func WithOrderCheck() Option {
	return func(c *Correlator) {
		c.orderCheck = true
	}
}

// Correlator merge-joins R1 (txid, outputRef) with R2 (outputRef, address) in a single forward pass.
type Correlator struct {
	orderCheck bool
}

// New builds a Correlator.
func New(opts ...Option) *Correlator {
	c := &Correlator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type outputCursor struct {
	reader     OutputReader
	row        OutputAddress
	ok         bool
	orderCheck bool
}

func (c *outputCursor) advance() error {
	row, err := c.reader.Next()
	if errors.Is(err, io.EOF) {
		c.ok = false
		return nil
	}
	if err != nil {
		return fmt.Errorf("read output row: %w", err)
	}
	if c.orderCheck && c.ok && row.OutputRef < c.row.OutputRef {
		return fmt.Errorf("%w: output %q after %q", ErrUnsorted, row.OutputRef, c.row.OutputRef)
	}
	c.row = row
	c.ok = true
	return nil
}

type match struct {
	key       string
	address   string
	ambiguous bool
	valid     bool
}

// Join streams inputs against outputs and calls emit for every input with a single funding address.
// The output cursor never rewinds; the last match is kept so that repeated output references in R1 reuse it.
func (c *Correlator) Join(ctx context.Context, inputs InputReader, outputs OutputReader, emit func(InputAddress) error) (Stats, error) {
	var stats Stats

	cursor := &outputCursor{reader: outputs, orderCheck: c.orderCheck}
	if err := cursor.advance(); err != nil {
		return stats, err
	}

	var (
		last    match
		prevRef string
	)
	for {
		in, err := inputs.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("read input row: %w", err)
		}
		if stats.Inputs%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		if c.orderCheck && stats.Inputs > 0 && in.OutputRef < prevRef {
			return stats, fmt.Errorf("%w: input %q after %q", ErrUnsorted, in.OutputRef, prevRef)
		}
		prevRef = in.OutputRef
		stats.Inputs++

		if !last.valid || last.key != in.OutputRef {
			last, err = c.seek(cursor, in.OutputRef)
			if err != nil {
				return stats, err
			}
		}

		switch {
		case !last.valid:
			stats.Unmatched++
		case last.ambiguous:
			stats.Ambiguous++
		default:
			if err := emit(InputAddress{TxID: in.TxID, Address: last.address}); err != nil {
				return stats, err
			}
			stats.Matched++
		}
	}
}

// seek advances the cursor up to key and consumes every row carrying it.
func (c *Correlator) seek(cursor *outputCursor, key string) (match, error) {
	for cursor.ok && cursor.row.OutputRef < key {
		if err := cursor.advance(); err != nil {
			return match{}, err
		}
	}
	if !cursor.ok || cursor.row.OutputRef != key {
		return match{}, nil
	}

	m := match{key: key, address: cursor.row.Address, valid: true}
	for {
		if err := cursor.advance(); err != nil {
			return match{}, err
		}
		if !cursor.ok || cursor.row.OutputRef != key {
			return m, nil
		}
		if cursor.row.Address != m.address {
			m.ambiguous = true
		}
	}
}
