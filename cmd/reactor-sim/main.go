// Command reactor-sim runs a scenario file against a batch-cycle facility,
// wiring a naive supplier and demand schedule through the facility's
// request/bid surface and recording events through the configured sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"reactorcore/internal/core"
	"reactorcore/internal/exchange"
	"reactorcore/internal/scenario"
	"reactorcore/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reactor-sim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var scenarioPath string
	var steps int
	fs.StringVar(&scenarioPath, "scenario", "", "path to scenario yaml (required)")
	fs.IntVar(&steps, "steps", 0, "override scenario duration")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if scenarioPath == "" {
		fmt.Fprintln(stderr, "reactor-sim: -scenario is required")
		fs.Usage()
		return 2
	}
	if err := run(context.Background(), scenarioPath, steps, stdout); err != nil {
		fmt.Fprintf(stderr, "reactor-sim: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, scenarioPath string, steps int, stdout io.Writer) error {
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	duration := sc.Duration
	if steps > 0 {
		duration = steps
	}

	recorder, err := core.OpenRecorder()
	if err != nil {
		return fmt.Errorf("open recorder: %w", err)
	}
	defer func() {
		if closer, ok := recorder.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	var snapStore domain.SnapshotStore
	if sc.SnapshotEvery > 0 {
		snapStore, err = core.OpenSnapshotStore(ctx)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
	}

	logger := core.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	facility, err := core.New(sc.Facility,
		core.WithRecorder(recorder),
		core.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	supplier := exchange.Supplier{Compositions: sc.Supply}
	shippedTotal := 0

	for t := 0; t < duration; t++ {
		facility.ApplyChanges(t)
		if err := facility.BeginStep(ctx, t); err != nil {
			return err
		}

		groups, err := facility.Requests()
		if err != nil {
			return err
		}
		if deliveries := supplier.Fill(groups); len(deliveries) > 0 {
			if err := facility.AcceptTrades(ctx, t, deliveries); err != nil {
				return err
			}
		}

		if orders := sc.OrdersAt(t); len(orders) > 0 {
			demand := make(map[string][]domain.Order)
			for _, o := range orders {
				demand[o.Commodity] = append(demand[o.Commodity], o)
			}
			bidGroups, err := facility.Bids(demand)
			if err != nil {
				return err
			}
			shipped, err := facility.SupplyTrades(ctx, t, exchange.Match(bidGroups))
			if err != nil {
				return err
			}
			shippedTotal += len(shipped)
		}

		facility.EndStep(ctx, t)

		for _, v := range facility.CheckInvariants() {
			if v.Severity == domain.SeverityBlock {
				return fmt.Errorf("step %d: invariant %s violated: %s", t, v.Rule, v.Message)
			}
			fmt.Fprintf(stdout, "warn: step %d: %s: %s\n", t, v.Rule, v.Message)
		}

		if snapStore != nil && sc.SnapshotEvery > 0 && (t+1)%sc.SnapshotEvery == 0 {
			key := fmt.Sprintf("%s/step-%06d", facility.Name(), t)
			if err := snapStore.Save(ctx, key, facility.Snapshot(t)); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
		}
	}

	fmt.Fprintf(stdout, "%s: ran %d steps, cycle step %d, core %d/%d, fresh %d, spent %d, shipped %d assemblies\n",
		facility.Name(), duration, facility.CycleStep(),
		facility.CoreCount(), facility.Config().NAssemCore,
		facility.FreshCount(), facility.SpentCount(), shippedTotal)
	return nil
}
