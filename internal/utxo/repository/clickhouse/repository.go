// Package clickhouse reads upstream address groups and stores the entity graph in ClickHouse.
package clickhouse

import (
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics receives one observation per repository operation with the number of rows it read or wrote.
	Metrics interface {
		Observe(operation string, coin model.Coin, network model.Network, rows int, err error, started time.Time)
	}
)

// Repository is shared by the group sources, the graph store and the pubkey generator.
type Repository struct {
	conn    clickhouse.Conn
	metrics Metrics
}

// Option adjusts the connection options parsed from the DSN.
type Option func(*clickhouse.Options)

// WithMaxOpenConns caps the connection pool. Persister workers each hold one connection while writing.
func WithMaxOpenConns(n int) Option {
	return func(o *clickhouse.Options) {
		if n > 0 {
			o.MaxOpenConns = n
		}
	}
}

// WithMaxExecutionTime bounds every query on the server side.
func WithMaxExecutionTime(d time.Duration) Option {
	return func(o *clickhouse.Options) {
		if d <= 0 {
			return
		}
		if o.Settings == nil {
			o.Settings = clickhouse.Settings{}
		}
		o.Settings["max_execution_time"] = int(d.Seconds())
	}
}

func NewRepository(dsn string, metrics Metrics, opts ...Option) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	for _, opt := range opts {
		opt(options)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, metrics: metrics}, nil
}

func (r *Repository) Close() error {
	return r.conn.Close()
}
