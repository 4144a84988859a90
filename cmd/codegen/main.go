package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/delaneyj/tagparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	genericParamCountKey = "count"
	outKey               = "out"
	packageKey           = "package"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the ComputedN helpers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Highest number of inputs to generate a helper for",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "File to write",
				Value: "formula/computed_gen.go",
			},
			&cli.StringFlag{
				Name:  packageKey,
				Usage: "Package clause of the generated file",
				Value: "formula",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("codegen failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	out := cmd.String(outKey)
	slog.Info("codegen started", slog.String("out", out))
	defer func() {
		slog.Info("codegen finished", slog.Duration("took", time.Since(start)))
	}()

	genericParamCount := cmd.Uint(genericParamCountKey)
	contents := templates.ComputedGen(cmd.String(packageKey), int(genericParamCount))
	return os.WriteFile(out, []byte(contents), 0644)
}
