package remote

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/g5kbench/cassbench/internal/inventory"
	"github.com/g5kbench/cassbench/internal/plan"
)

// DefaultParallelism bounds how many hosts a batch works on at once.
const DefaultParallelism = 16

// Batch runs the plan on every host. Steps run in order on a host; hosts run
// concurrently up to parallelism. Batch returns once every host is done, with
// the first error encountered. An error cancels the hosts still running.
func Batch(ctx context.Context, e Executor, hosts []*inventory.Host, parallelism int, p *plan.Plan) error {
	if p.Empty() || len(hosts) == 0 {
		return nil
	}
	if err := plan.NewDefaultValidationPipeline().Validate(p); err != nil {
		return err
	}
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	log.Info("running batch", "plan", p.Name, "hosts", len(hosts), "steps", p.Size())
	steps := p.Steps()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for _, h := range hosts {
		g.Go(func() error {
			for _, a := range steps {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := Perform(gctx, e, h, a); err != nil {
					return err
				}
			}
			log.Debug("batch done on host", "plan", p.Name, "host", h.Address)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch %v: %w", p.Name, err)
	}
	return nil
}
