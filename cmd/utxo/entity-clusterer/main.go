package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/checkpoint"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/repository/memory"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/service/entity"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/service/persister"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/source"
	"github.com/goodnatureofminers/blockinsight7000-entities/pkg/safe"
)

type config struct {
	Coin            model.Coin    `long:"coin" env:"ENTITY_CLUSTERER_COIN" description:"coin name" required:"true"`
	Network         model.Network `long:"network" env:"ENTITY_CLUSTERER_NETWORK" description:"network name" required:"true"`
	ClickhouseDSN   string        `long:"clickhouse-dsn" env:"ENTITY_CLUSTERER_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Source          string        `long:"source" env:"ENTITY_CLUSTERER_SOURCE" description:"where address groups come from" choice:"clickhouse" choice:"csv" default:"clickhouse"`
	InputAddresses  string        `long:"input-addresses" env:"ENTITY_CLUSTERER_INPUT_ADDRESSES" description:"(txid, address) CSV sorted by txid, for --source=csv"`
	WithGenerated   bool          `long:"with-generated" env:"ENTITY_CLUSTERER_WITH_GENERATED" description:"fold public keys with their generated addresses (clickhouse source)"`
	Store           string        `long:"store" env:"ENTITY_CLUSTERER_STORE" description:"entity graph store" choice:"clickhouse" choice:"memory" default:"clickhouse"`
	CheckpointPath  string        `long:"checkpoint-path" env:"ENTITY_CLUSTERER_CHECKPOINT_PATH" description:"checkpoint file" default:"entities.ckpt"`
	BatchSize       uint64        `long:"batch-size" env:"ENTITY_CLUSTERER_BATCH_SIZE" description:"blocks or transactions per fetch" default:"1000"`
	QueueSize       int           `long:"queue-size" env:"ENTITY_CLUSTERER_QUEUE_SIZE" description:"fetched batches buffered ahead of the clusterer" default:"4"`
	CheckpointEvery int           `long:"checkpoint-every" env:"ENTITY_CLUSTERER_CHECKPOINT_EVERY" description:"applied batches between checkpoints" default:"50"`
	StartCursor     uint64        `long:"start-cursor" env:"ENTITY_CLUSTERER_START_CURSOR" description:"first position when no checkpoint exists"`
	SkipPersist     bool          `long:"skip-persist" env:"ENTITY_CLUSTERER_SKIP_PERSIST" description:"cluster and checkpoint only"`
	PersistWorkers  int           `long:"persist-workers" env:"ENTITY_CLUSTERER_PERSIST_WORKERS" description:"clusters reconciled concurrently" default:"1"`
	QueryTimeout    time.Duration `long:"query-timeout" env:"ENTITY_CLUSTERER_QUERY_TIMEOUT" description:"server-side limit per ClickHouse query, 0 disables" default:"10m"`
	Progress        bool          `long:"progress" env:"ENTITY_CLUSTERER_PROGRESS" description:"show a progress bar"`
	MetricsAddr     string        `long:"metrics-addr" env:"ENTITY_CLUSTERER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if (cfg.Source == "clickhouse" || cfg.Store == "clickhouse") && cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}
	if cfg.Source == "csv" && cfg.InputAddresses == "" {
		logger.Fatal("--input-addresses is required for the csv source")
	}

	// The first signal drains the run; restoring default handling lets a second one kill the process.
	go func() {
		<-ctx.Done()
		stop()
		logger.Warn("stop requested, finishing current batch; signal again to abort")
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("entity clusterer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	metrics.StartServer(ctx, cfg.MetricsAddr, logger)
	coin := cfg.Coin

	var repo *clickhouse.Repository
	if cfg.ClickhouseDSN != "" {
		var err error
		repo, err = clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository(),
			clickhouse.WithMaxOpenConns(cfg.PersistWorkers+2),
			clickhouse.WithMaxExecutionTime(cfg.QueryTimeout),
		)
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close repository", zap.Error(err))
			}
		}()
	}

	var (
		src   entity.Source
		total int64 = -1
	)
	switch cfg.Source {
	case "clickhouse":
		var opts []source.ClickhouseOption
		if cfg.WithGenerated {
			opts = append(opts, source.WithGeneratedGroups())
		}
		chSource, err := source.NewClickhouseSource(repo, coin, cfg.Network, logger, opts...)
		if err != nil {
			return fmt.Errorf("init clickhouse source: %w", err)
		}
		if cfg.Progress {
			tip, err := chSource.Tip(ctx)
			switch {
			case errors.Is(err, model.ErrNoBlocks):
				// Nothing processed yet, keep the bar indeterminate.
			case err != nil:
				return fmt.Errorf("get source tip: %w", err)
			default:
				if total, err = safe.Int64(tip + 1); err != nil {
					return err
				}
			}
		}
		src = chSource
	case "csv":
		csvSource, err := source.NewCSVSource(cfg.InputAddresses, logger)
		if err != nil {
			return fmt.Errorf("init csv source: %w", err)
		}
		defer func() {
			if err := csvSource.Close(); err != nil {
				logger.Warn("close csv source", zap.Error(err))
			}
		}()
		src = csvSource
	}

	var (
		store    persister.GraphStore
		memStore *memory.GraphStore
	)
	switch cfg.Store {
	case "clickhouse":
		store = repo.GraphStore(coin, cfg.Network)
	case "memory":
		memStore = memory.NewGraphStore()
		store = memStore
	}
	graphPersister, err := persister.New(store, metrics.NewGraphPersister(coin, cfg.Network), logger,
		persister.WithWorkers(cfg.PersistWorkers),
	)
	if err != nil {
		return fmt.Errorf("init persister: %w", err)
	}

	manager, err := checkpoint.NewManager(cfg.CheckpointPath, logger)
	if err != nil {
		return fmt.Errorf("init checkpoint manager: %w", err)
	}

	var opts []entity.Option
	if cfg.Progress {
		bar := progressbar.Default(total, "clustering")
		defer func() {
			_ = bar.Finish()
		}()
		opts = append(opts, entity.WithProgress(func(p entity.Progress) {
			if cursor, err := safe.Int64(p.Cursor); err == nil {
				_ = bar.Set64(cursor)
			}
		}))
	}

	svc, err := entity.NewService(
		src,
		manager,
		graphPersister,
		metrics.NewClusterService(coin, cfg.Network),
		entity.Config{
			BatchSize:       cfg.BatchSize,
			QueueSize:       cfg.QueueSize,
			CheckpointEvery: cfg.CheckpointEvery,
			StartCursor:     cfg.StartCursor,
			SkipPersist:     cfg.SkipPersist,
		},
		coin,
		cfg.Network,
		logger,
		opts...,
	)
	if err != nil {
		return err
	}

	summary, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("entity clusterer done",
		zap.Uint64("cursor", summary.Cursor),
		zap.Int("clusters", summary.Clusters),
		zap.Bool("interrupted", summary.Interrupted),
		zap.Int("created", summary.Report.Created),
		zap.Int("extended", summary.Report.Extended),
		zap.Int("merged", summary.Report.Merged),
		zap.Int("unchanged", summary.Report.Unchanged),
		zap.Int("skipped", summary.Report.Skipped),
		zap.Int("orphans", summary.Report.Orphans),
	)
	if memStore != nil {
		snap := memStore.Snapshot()
		logger.Info("memory store contents", zap.Int("entities", len(snap.Entities)), zap.Int("links", len(snap.Links)))
	}
	return nil
}
