package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/pubkey"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/service/generator"
)

type config struct {
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"PUBKEY_GENERATOR_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Coin          model.Coin    `long:"coin" env:"PUBKEY_GENERATOR_COIN" description:"coin name" required:"true"`
	Network       model.Network `long:"network" env:"PUBKEY_GENERATOR_NETWORK" description:"network name" required:"true"`
	StartHeight   uint64        `long:"start-height" env:"PUBKEY_GENERATOR_START_HEIGHT" description:"first block height to scan"`
	MaxHeight     uint64        `long:"max-height" env:"PUBKEY_GENERATOR_MAX_HEIGHT" description:"last block height to scan, 0 for the processed tip"`
	BatchSize     uint64        `long:"batch-size" env:"PUBKEY_GENERATOR_BATCH_SIZE" description:"block heights per window" default:"1000"`
	FlushSize     int           `long:"flush-size" env:"PUBKEY_GENERATOR_FLUSH_SIZE" description:"generated rows per insert" default:"10000"`
	MetricsAddr   string        `long:"metrics-addr" env:"PUBKEY_GENERATOR_METRICS_ADDR" description:"address for metrics server" default:":2113"`
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

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("pubkey generator failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	metrics.StartServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	deriver, err := pubkey.NewDeriver(cfg.Network)
	if err != nil {
		return fmt.Errorf("init deriver: %w", err)
	}

	svc, err := generator.NewService(
		repo,
		deriver,
		metrics.NewPubkeyGenerator(cfg.Coin, cfg.Network),
		generator.Config{
			StartHeight: cfg.StartHeight,
			MaxHeight:   cfg.MaxHeight,
			WindowSize:  cfg.BatchSize,
			FlushSize:   cfg.FlushSize,
		},
		cfg.Coin,
		cfg.Network,
		logger,
	)
	if err != nil {
		return err
	}
	_, err = svc.Run(ctx)
	return err
}
