package main

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sandgrid/internal/sims/sand"
)

type benchResult struct {
	seed     int64
	elapsed  time.Duration
	ticksSec float64
	grains   int
	checksum uint64
}

func newBenchCmd(logger *zap.Logger) *cobra.Command {
	flags := &worldFlags{}
	var (
		ticks   int
		seeds   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure stepping throughput across seeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			if workers < 1 {
				workers = 1
			}
			if seeds < 1 {
				seeds = 1
			}

			jobs := make(chan int64)
			results := make([]benchResult, 0, seeds)
			var (
				mu sync.Mutex
				wg sync.WaitGroup
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for seed := range jobs {
						world := sand.NewWithConfig(cfg)
						world.Reset(seed)
						start := time.Now()
						for t := 0; t < ticks; t++ {
							world.Step()
						}
						r := benchResult{
							seed:     seed,
							elapsed:  time.Since(start),
							grains:   len(world.Particles()),
							checksum: world.Checksum(),
						}
						if r.elapsed > 0 {
							r.ticksSec = float64(ticks) / r.elapsed.Seconds()
						}
						mu.Lock()
						results = append(results, r)
						mu.Unlock()
					}
				}()
			}
			for s := 0; s < seeds; s++ {
				jobs <- cfg.Seed + int64(s)
			}
			close(jobs)
			wg.Wait()

			sort.Slice(results, func(i, j int) bool { return results[i].seed < results[j].seed })
			var total float64
			for _, r := range results {
				total += r.ticksSec
				logger.Info("bench",
					zap.Int64("seed", r.seed),
					zap.Duration("elapsed", r.elapsed),
					zap.Float64("ticks_per_sec", r.ticksSec),
					zap.Int("grains", r.grains),
					zap.Uint64("checksum", r.checksum),
				)
			}
			logger.Info("bench complete",
				zap.Int("seeds", seeds),
				zap.Int("ticks", ticks),
				zap.Int("workers", workers),
				zap.Float64("avg_ticks_per_sec", total/float64(len(results))),
			)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().IntVar(&ticks, "ticks", 2000, "ticks to simulate per seed")
	cmd.Flags().IntVar(&seeds, "seeds", 4, "number of consecutive seeds to run")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel world evaluations")
	return cmd
}
