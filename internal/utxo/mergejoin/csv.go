package mergejoin

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// CSV relations are headerless two-column files: rel_input (txid, output_ref),
// rel_output_address (output_ref, address) and input_addresses (txid, address).

type pairReader struct {
	r           *csv.Reader
	line        int
	onMalformed func(error)
}

// CSVOption configures a CSV relation reader.
type CSVOption func(*pairReader)

// WithMalformedRowHandler is called with the parse error of every row the reader skips.
func WithMalformedRowHandler(fn func(error)) CSVOption {
	return func(p *pairReader) {
		p.onMalformed = fn
	}
}

func newPairReader(r io.Reader, opts ...CSVOption) *pairReader {
	cr := csv.NewReader(bufio.NewReaderSize(r, 1<<20))
	cr.FieldsPerRecord = 2
	cr.ReuseRecord = true
	p := &pairReader{r: cr}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// next returns the following well-formed row. Rows that fail to parse are skipped; csv.Reader resumes
// at the next record after a parse error.
func (p *pairReader) next() (string, string, error) {
	for {
		rec, err := p.r.Read()
		if errors.Is(err, io.EOF) {
			return "", "", io.EOF
		}
		p.line++
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			if p.onMalformed != nil {
				p.onMalformed(err)
			}
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("csv line %d: %w", p.line, err)
		}
		return rec[0], rec[1], nil
	}
}

// CSVInputReader reads R1 rows.
type CSVInputReader struct{ p *pairReader }

// NewCSVInputReader reads (txid, output_ref) rows from r.
func NewCSVInputReader(r io.Reader, opts ...CSVOption) *CSVInputReader {
	return &CSVInputReader{p: newPairReader(r, opts...)}
}

// Next implements InputReader.
func (r *CSVInputReader) Next() (InputRef, error) {
	txid, ref, err := r.p.next()
	if err != nil {
		return InputRef{}, err
	}
	return InputRef{TxID: txid, OutputRef: ref}, nil
}

// CSVOutputReader reads R2 rows.
type CSVOutputReader struct{ p *pairReader }

// NewCSVOutputReader reads (output_ref, address) rows from r.
func NewCSVOutputReader(r io.Reader, opts ...CSVOption) *CSVOutputReader {
	return &CSVOutputReader{p: newPairReader(r, opts...)}
}

// Next implements OutputReader.
func (r *CSVOutputReader) Next() (OutputAddress, error) {
	ref, addr, err := r.p.next()
	if err != nil {
		return OutputAddress{}, err
	}
	return OutputAddress{OutputRef: ref, Address: addr}, nil
}

// CSVInputAddressReader reads joined rows.
type CSVInputAddressReader struct{ p *pairReader }

// NewCSVInputAddressReader reads (txid, address) rows from r.
func NewCSVInputAddressReader(r io.Reader, opts ...CSVOption) *CSVInputAddressReader {
	return &CSVInputAddressReader{p: newPairReader(r, opts...)}
}

// Next implements InputAddressReader.
func (r *CSVInputAddressReader) Next() (InputAddress, error) {
	txid, addr, err := r.p.next()
	if err != nil {
		return InputAddress{}, err
	}
	return InputAddress{TxID: txid, Address: addr}, nil
}

// CSVInputAddressWriter writes joined rows.
type CSVInputAddressWriter struct {
	bw *bufio.Writer
	w  *csv.Writer
}

// NewCSVInputAddressWriter writes (txid, address) rows to w. Call Flush when done.
func NewCSVInputAddressWriter(w io.Writer) *CSVInputAddressWriter {
	bw := bufio.NewWriterSize(w, 1<<20)
	return &CSVInputAddressWriter{bw: bw, w: csv.NewWriter(bw)}
}

// Write appends one row.
func (w *CSVInputAddressWriter) Write(row InputAddress) error {
	return w.w.Write([]string{row.TxID, row.Address})
}

// Flush flushes buffered rows to the underlying writer.
func (w *CSVInputAddressWriter) Flush() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return w.bw.Flush()
}
