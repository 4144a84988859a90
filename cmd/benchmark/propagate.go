package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/delaneyj/tagparty/effect"
	"github.com/delaneyj/tagparty/formula"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	maxSizeKey = "max-size"
)

var sizes = []int{1, 10, 100, 1_000}

func propagateCommand() *cli.Command {
	return &cli.Command{
		Name:  "propagate",
		Usage: "Write one cell feeding w chains of h caches, each ending in an effect",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes per configuration",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  maxSizeKey,
				Usage: "Skip widths and heights above this",
				Value: 1_000,
			},
		},
		Action: propagate,
	}
}

func addOne(v int) int {
	return v + 1
}

func propagate(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Int(itersKey))
	maxSize := int(cmd.Int(maxSizeKey))

	start := time.Now()
	slog.Info("propagate started", slog.Int("iters", iters))
	defer func() {
		slog.Info("propagate finished", slog.Duration("took", time.Since(start)))
	}()

	tbl := table.NewWriter()
	tbl.SetTitle("Tag propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range sizes {
		for _, h := range sizes {
			if w > maxSize || h > maxSize {
				continue
			}
			calc, err := propagateOnce(w, h, iters)
			if err != nil {
				return err
			}
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return nil
}

func propagateOnce(w, h, iters int) (*tachymeter.Metrics, error) {
	var effectErr error
	s := effect.NewScheduler(
		effect.WithLogger(slog.Default()),
		effect.WithErrorHandler(func(label string, err error) {
			effectErr = fmt.Errorf("%s: %w", label, err)
		}),
	)
	rt := s.Runtime()

	src := formula.NewCell(rt, 1, formula.WithLabel("src"))
	for i := 0; i < w; i++ {
		var last formula.Readable[int] = src
		for j := 0; j < h; j++ {
			last = formula.Computed1(rt, last, addOne)
		}
		leaf := last
		s.Effect(fmt.Sprintf("leaf %d", i), func() error {
			if got, want := leaf.Read(), src.Peek()+h; got != want {
				return fmt.Errorf("leaf is %d, want %d", got, want)
			}
			return nil
		})
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Write(src.Peek() + 1)
		tach.AddTime(time.Since(start))
		if effectErr != nil {
			return nil, effectErr
		}
	}
	return tach.Calc(), nil
}
