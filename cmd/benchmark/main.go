package main

import (
	"context"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/urfave/cli/v3"
)

const (
	cpuProfileKey = "cpuprofile"
	verboseKey    = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure tag based invalidation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  cpuProfileKey,
				Usage: "Write a CPU profile to this file",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log every flush pass",
			},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			propagateCommand(),
			graphCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("benchmark failed", slog.Any("error", err))
		os.Exit(1)
	}
}

var profile *os.File

func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if cmd.Bool(verboseKey) {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	path := cmd.String(cpuProfileKey)
	if path == "" {
		return ctx, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return ctx, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return ctx, err
	}
	profile = f
	slog.Info("cpu profiling", slog.String("path", path))
	return ctx, nil
}

func teardown(ctx context.Context, cmd *cli.Command) error {
	if profile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	return profile.Close()
}
