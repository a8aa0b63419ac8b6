package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/mergejoin"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

// CSVSource serves address groups from a (txid, address) file sorted by txid. Its cursor is the index of
// a transaction group in the file.
type CSVSource struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	file    *os.File
	rows    *mergejoin.CSVInputAddressReader
	pos     uint64
	pending *mergejoin.InputAddress
	eof     bool
	skipped uint64
}

// NewCSVSource builds a CSVSource reading path. The file is opened lazily.
func NewCSVSource(path string, logger *zap.Logger) (*CSVSource, error) {
	if path == "" {
		return nil, errors.New("csv path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVSource{
		path:   path,
		logger: logger.Named("csv_source").With(zap.String("path", path)),
	}, nil
}

// Fetch returns up to limit groups starting at the group with index cursor.
func (s *CSVSource) Fetch(ctx context.Context, cursor, limit uint64) (*model.GroupBatch, error) {
	if limit == 0 {
		return nil, errors.New("limit must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil || cursor < s.pos {
		if err := s.reopen(); err != nil {
			return nil, err
		}
	}
	for s.pos < cursor {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, ok, err := s.nextGroup()
		if err != nil {
			return nil, s.fail(err)
		}
		if !ok {
			return nil, ErrExhausted
		}
	}

	batch := &model.GroupBatch{Cursor: cursor}
	for uint64(len(batch.Groups)) < limit {
		group, ok, err := s.nextGroup()
		if err != nil {
			return nil, s.fail(err)
		}
		if !ok {
			break
		}
		batch.Groups = append(batch.Groups, group)
	}
	if len(batch.Groups) == 0 {
		return nil, ErrExhausted
	}
	batch.Next = s.pos
	return batch, nil
}

// Skipped returns how many malformed rows were skipped since the source was built. Rows read again after a
// rewind are counted again.
func (s *CSVSource) Skipped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Close releases the underlying file.
func (s *CSVSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeFile()
}

func (s *CSVSource) reopen() error {
	if err := s.closeFile(); err != nil {
		s.logger.Warn("close csv before reopen", zap.Error(err))
	}
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open csv source: %w", err)
	}
	s.file = f
	s.rows = mergejoin.NewCSVInputAddressReader(f, mergejoin.WithMalformedRowHandler(func(err error) {
		s.skipped++
		s.logger.Warn("skipping malformed row", zap.Uint64("group", s.pos), zap.Error(err))
	}))
	s.pos = 0
	s.pending = nil
	s.eof = false
	return nil
}

func (s *CSVSource) closeFile() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.rows = nil
	return err
}

// fail drops the reader so that the next Fetch starts from a clean position.
func (s *CSVSource) fail(err error) error {
	if cerr := s.closeFile(); cerr != nil {
		s.logger.Warn("close csv after failure", zap.Error(cerr))
	}
	return fmt.Errorf("read csv source at group %d: %w", s.pos, err)
}

// nextGroup folds consecutive rows with the same txid and advances pos.
func (s *CSVSource) nextGroup() (model.AddressGroup, bool, error) {
	if s.pending == nil && !s.eof {
		if err := s.readRow(); err != nil {
			return model.AddressGroup{}, false, err
		}
	}
	if s.pending == nil {
		return model.AddressGroup{}, false, nil
	}

	group := model.AddressGroup{TxID: s.pending.TxID, Addresses: []model.Address{s.pending.Address}}
	for {
		if err := s.readRow(); err != nil {
			return model.AddressGroup{}, false, err
		}
		if s.pending == nil || s.pending.TxID != group.TxID {
			break
		}
		group.Addresses = append(group.Addresses, s.pending.Address)
	}
	group.Addresses = model.DistinctAddresses(group.Addresses)
	s.pos++
	return group, true, nil
}

func (s *CSVSource) readRow() error {
	row, err := s.rows.Next()
	if errors.Is(err, io.EOF) {
		s.pending = nil
		s.eof = true
		return nil
	}
	if err != nil {
		return err
	}
	s.pending = &row
	return nil
}
