package cmd

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/analogrelay/optbridge"
	"github.com/analogrelay/optbridge/internal/logger"
)

func newBenchCmd() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark concurrent resolutions",
		Long: `Runs resolutions from several workers for a fixed duration and reports throughput
and mean latency. With --flip-fallback a separate goroutine keeps rewriting the
fallback value while workers read it.`,
		Args: cobra.NoArgs,
		RunE: runBench,
	}

	benchCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "Number of concurrent workers")
	benchCmd.Flags().DurationP("duration", "t", 10*time.Second, "Duration to run the benchmark")
	benchCmd.Flags().StringP("producer", "p", "static", "Producer to call (static, native)")
	benchCmd.Flags().Int32P("value", "v", 7, "Payload the producer returns")
	benchCmd.Flags().BoolP("absent", "a", false, "Producer reports no value")
	benchCmd.Flags().Int32P("fallback", "f", optbridge.DefaultReserveValue, "Fallback value used when the producer reports absence")
	benchCmd.Flags().Bool("flip-fallback", false, "Rewrite the fallback value concurrently during the run")
	return benchCmd
}

type BenchmarkResults struct {
	RunID        string        `json:"runId"`
	TotalOps     int           `json:"totalOps"`
	PresentOps   int           `json:"presentOps"`
	FallbackOps  int           `json:"fallbackOps"`
	Flips        int           `json:"flips"`
	ElapsedTime  time.Duration `json:"elapsedTime"`
	OpsPerSecond float64       `json:"opsPerSecond"`
	LatencyNs    float64       `json:"latencyNs"`
}

type benchCounters struct {
	ops     atomic.Int64
	present atomic.Int64
	latency atomic.Int64
	flips   atomic.Int64
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	value, err := cmd.Flags().GetInt32("value")
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	absent, err := cmd.Flags().GetBool("absent")
	if err != nil {
		return fmt.Errorf("failed to get absent: %w", err)
	}
	flip, err := cmd.Flags().GetBool("flip-fallback")
	if err != nil {
		return fmt.Errorf("failed to get flip-fallback: %w", err)
	}

	env := optbridge.Encode(optbridge.Some(value))
	if absent {
		env = optbridge.Encode(optbridge.None())
	}

	producer, err := newProducer(cfg.Producer, env)
	if err != nil {
		return fmt.Errorf("failed to create producer: %w", err)
	}

	runID := uuid.NewString()
	ctx := logger.ContextWithRunID(cmd.Context(), runID)
	log = log.WithContext(ctx)
	log.InfoWith("starting bench",
		"producer", cfg.Producer,
		"workers", cfg.Bench.Workers,
		"duration", cfg.Bench.Duration,
		"flip_fallback", flip)

	resolver := optbridge.NewResolver(producer, optbridge.WithLogger(log))
	results, err := executeBenchmark(ctx, resolver, cfg.Bench.Workers, cfg.Bench.Duration, flip)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}
	results.RunID = runID

	printResults(cmd.OutOrStdout(), cfg.Producer, results)
	return nil
}

func executeBenchmark(ctx context.Context, resolver *optbridge.Resolver, workers int, duration time.Duration, flip bool) (*BenchmarkResults, error) {
	startTime := time.Now()

	benchCtx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	var counters benchCounters
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			workerBenchmark(benchCtx, resolver, &counters)
		}()
	}

	if flip {
		wg.Add(1)
		go func() {
			defer wg.Done()
			flipFallback(benchCtx, resolver.Fallback(), &counters)
		}()
	}

	<-benchCtx.Done()
	wg.Wait()

	actualElapsed := time.Since(startTime)
	finalOps := counters.ops.Load()
	if finalOps == 0 {
		return nil, fmt.Errorf("no operations completed")
	}
	present := counters.present.Load()

	return &BenchmarkResults{
		TotalOps:     int(finalOps),
		PresentOps:   int(present),
		FallbackOps:  int(finalOps - present),
		Flips:        int(counters.flips.Load()),
		ElapsedTime:  actualElapsed,
		OpsPerSecond: float64(finalOps) / actualElapsed.Seconds(),
		LatencyNs:    float64(counters.latency.Load()) / float64(finalOps),
	}, nil
}

func workerBenchmark(ctx context.Context, resolver *optbridge.Resolver, counters *benchCounters) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			opStart := time.Now()
			_, present := resolver.Lookup()
			opLatency := time.Since(opStart)

			if present {
				counters.present.Add(1)
			}
			counters.ops.Add(1)
			counters.latency.Add(opLatency.Nanoseconds())
		}
	}
}

// flipFallback keeps writing fresh fallback values until ctx is done.
func flipFallback(ctx context.Context, fb *optbridge.Fallback, counters *benchCounters) {
	next := int32(-1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			fb.Set(next)
			next--
			counters.flips.Add(1)
			runtime.Gosched()
		}
	}
}

func printResults(out io.Writer, producer string, results *BenchmarkResults) {
	fmt.Fprintf(out, "\n=== Benchmark Results ===\n")
	fmt.Fprintf(out, "Run: %s\n", results.RunID)
	fmt.Fprintf(out, "Total ops: %d\n", results.TotalOps)
	fmt.Fprintf(out, "Present: %d\n", results.PresentOps)
	fmt.Fprintf(out, "Fallback: %d\n", results.FallbackOps)
	if results.Flips > 0 {
		fmt.Fprintf(out, "Fallback rewrites: %d\n", results.Flips)
	}
	fmt.Fprintf(out, "Total elapsed time: %v\n", results.ElapsedTime.Round(time.Millisecond))
	fmt.Fprintf(out, "Ops/sec: %.2f\n", results.OpsPerSecond)
	fmt.Fprintf(out, "Latency (mean): %.2f ns\n", results.LatencyNs)
	fmt.Fprintf(out, "========================\n")

	fmt.Fprintf(out, "\n| Producer | Total Ops | Duration (ms) | Ops/sec | Latency (ns) |\n")
	fmt.Fprintf(out, "|----------|-----------|---------------|---------|--------------|\n")
	fmt.Fprintf(out, "| %s | %d | %d | %.2f | %.2f |\n",
		producer,
		results.TotalOps,
		results.ElapsedTime.Milliseconds(),
		results.OpsPerSecond,
		results.LatencyNs)
}
