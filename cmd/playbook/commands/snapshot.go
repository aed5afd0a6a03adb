// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/playbook/lib/cli"
	"github.com/bureau-foundation/playbook/lib/export"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/search"
	"github.com/bureau-foundation/playbook/lib/snapshot"
)

func snapshotCommand(registry *playbook.Playbook, streams Streams) *cli.Command {
	var common settings
	var (
		query       string
		outDir      string
		bundlePath  string
		compression string
	)

	return &cli.Command{
		Name:    "snapshot",
		Summary: "Capture scenarios to files or a bundle",
		Description: `Render every matching scenario offscreen, exactly as the gallery
previews do, and write the frames out. Without --bundle each frame is
written as <out>/<Kind>/<name>.ans (styled) and .txt (plain). With
--bundle the frames go into one compressed file that 'playbook inspect'
reads.

Exits 1 when any scenario failed to capture; the rest are still
written.`,
		Usage: "playbook snapshot [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := common.flagSet("snapshot")
			flagSet.StringVarP(&query, "query", "q", "", "only scenarios whose name or kind contains this text")
			flagSet.StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
			flagSet.StringVar(&bundlePath, "bundle", "", "write a single bundle file instead of per-scenario files")
			flagSet.StringVar(&compression, "compression", "", "bundle compression: zstd, lz4, or none (default from config)")
			return flagSet
		},
		Examples: []cli.Example{
			{Description: "Write dark frames of every button", Command: "playbook snapshot --scheme dark -q button"},
			{Description: "Bundle everything for review", Command: "playbook snapshot --bundle frames.plbk"},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0]).
					WithHint("Use --query to select scenarios.")
			}
			cfg, err := common.load()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Export.Dir
			}
			if compression == "" {
				compression = cfg.Export.Compression
			}
			bundleCompression, err := export.ParseCompression(compression)
			if err != nil {
				return cli.Validation("%w", err)
			}

			pipelineConfig, err := cfg.Pipeline()
			if err != nil {
				return cli.Validation("%w", err)
			}
			logger, closeLog, err := newLogger(
				slog.NewTextHandler(streams.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
				common.logOutput,
			)
			if err != nil {
				return err
			}
			defer closeLog()
			registry.SetLogger(logger)
			pipelineConfig.Logger = logger

			var filter *string
			if query != "" {
				filter = &query
			}
			data := search.Filter(registry.Stores(), filter).Flatten()
			if len(data) == 0 {
				return cli.NotFound("no scenarios match %q", query)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shots, failed, err := captureAll(ctx, pipelineConfig, data)
			if err != nil {
				return err
			}
			for _, entry := range failed {
				fmt.Fprintf(streams.Stderr, "failed %s: %v\n", entry.ID, entry.Err)
			}

			if bundlePath != "" {
				used, err := writeBundleFile(bundlePath, cfg.Name, shots, bundleCompression)
				if err != nil {
					return cli.Internal("writing bundle: %w", err)
				}
				fmt.Fprintf(streams.Stdout, "wrote %d scenarios to %s (%s)\n", len(shots), bundlePath, used)
			} else {
				paths, err := export.WriteFiles(outDir, shots)
				if err != nil {
					return cli.Internal("writing files: %w", err)
				}
				fmt.Fprintf(streams.Stdout, "wrote %d scenarios to %s (%d files)\n", len(shots), outDir, len(paths))
			}

			if len(failed) > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// captureAll runs one pipeline batch over data with every entry eager
// and returns the captured shots in data order plus the failures.
func captureAll(ctx context.Context, config snapshot.Config, data []search.Data) ([]export.Shot, []snapshot.Entry, error) {
	config.Limit = len(data)
	pipeline := snapshot.New(config)
	defer pipeline.Close()

	select {
	case <-pipeline.Prepare(ctx, data):
	case <-ctx.Done():
		return nil, nil, cli.Internal("snapshot interrupted: %w", ctx.Err())
	}
	if ctx.Err() != nil {
		return nil, nil, cli.Internal("snapshot interrupted: %w", ctx.Err())
	}

	var shots []export.Shot
	var failed []snapshot.Entry
	for _, item := range data {
		entry, ok := pipeline.Entry(item.ID)
		if !ok {
			continue
		}
		switch entry.State {
		case snapshot.Captured:
			shots = append(shots, export.NewShot(item.ID, item.Scenario.Layout, entry.Image))
		default:
			if entry.Err == nil {
				entry.Err = fmt.Errorf("not captured (%s)", entry.State)
			}
			failed = append(failed, entry)
		}
	}
	return shots, failed, nil
}

func writeBundleFile(path, name string, shots []export.Shot, compression export.Compression) (export.Compression, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	used, err := export.WriteBundle(file, name, shots, compression)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return used, err
}
