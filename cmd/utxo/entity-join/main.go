package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-entities/internal/utxo/mergejoin"
)

type config struct {
	Inputs      string `long:"inputs" env:"ENTITY_JOIN_INPUTS" description:"(txid, output_ref) CSV sorted by output_ref" required:"true"`
	Outputs     string `long:"outputs" env:"ENTITY_JOIN_OUTPUTS" description:"(output_ref, address) CSV sorted by output_ref" required:"true"`
	Out         string `long:"out" env:"ENTITY_JOIN_OUT" description:"(txid, address) CSV to write; sort it by txid before clustering" default:"input_addresses.csv"`
	StrictOrder bool   `long:"strict-order" env:"ENTITY_JOIN_STRICT_ORDER" description:"fail when a relation is not sorted by output_ref"`
	Progress    bool   `long:"progress" env:"ENTITY_JOIN_PROGRESS" description:"show a progress bar over the inputs file"`
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
		logger.Fatal("entity join failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) (err error) {
	inputs, err := os.Open(cfg.Inputs)
	if err != nil {
		return fmt.Errorf("open inputs: %w", err)
	}
	defer inputs.Close()

	outputs, err := os.Open(cfg.Outputs)
	if err != nil {
		return fmt.Errorf("open outputs: %w", err)
	}
	defer outputs.Close()

	out, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("create out: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close out: %w", cerr)
		}
	}()

	var inputsReader io.Reader = inputs
	if cfg.Progress {
		info, err := inputs.Stat()
		if err != nil {
			return fmt.Errorf("stat inputs: %w", err)
		}
		bar := progressbar.DefaultBytes(info.Size(), "joining")
		defer func() {
			_ = bar.Finish()
		}()
		inputsReader = io.TeeReader(inputs, bar)
	}

	var opts []mergejoin.Option
	if cfg.StrictOrder {
		opts = append(opts, mergejoin.WithOrderCheck())
	}
	writer := mergejoin.NewCSVInputAddressWriter(out)

	logger.Info("joining relations",
		zap.String("inputs", cfg.Inputs),
		zap.String("outputs", cfg.Outputs),
		zap.Bool("strict_order", cfg.StrictOrder),
	)
	var skipped int
	skip := func(relation string) mergejoin.CSVOption {
		return mergejoin.WithMalformedRowHandler(func(err error) {
			skipped++
			logger.Warn("skipping malformed row", zap.String("relation", relation), zap.Error(err))
		})
	}
	stats, err := mergejoin.New(opts...).Join(ctx,
		mergejoin.NewCSVInputReader(inputsReader, skip("inputs")),
		mergejoin.NewCSVOutputReader(outputs, skip("outputs")),
		writer.Write,
	)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush out: %w", err)
	}

	logger.Info("join finished",
		zap.String("out", cfg.Out),
		zap.Uint64("inputs", stats.Inputs),
		zap.Uint64("matched", stats.Matched),
		zap.Uint64("unmatched", stats.Unmatched),
		zap.Uint64("ambiguous", stats.Ambiguous),
		zap.Int("skipped_rows", skipped),
	)
	return nil
}
