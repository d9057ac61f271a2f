package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/symptomatic/internal/model"
	"github.com/ppiankov/symptomatic/internal/pipeline"
	"github.com/ppiankov/symptomatic/internal/worker"
)

var (
	concurrency  int
	requestsPS   float64
	outputPath   string
	batchTimeout time.Duration
	batchDelay   time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <requests.jsonl>",
	Short: "Run predictions for many requests from a JSONL file in parallel",
	Long: `Batch processes multiple prediction requests concurrently:
- Read requests from input file (one JSON object per line)
- Validate and predict each request with configurable worker count
- Optionally throttle request rate
- Write one JSON result per line, in input order

Each line looks like:
  {"id": "p1", "symptoms": "cough and fever", "severity": 6, "duration": "3 days"}

Example:
  symptomatic batch requests.jsonl
  symptomatic batch requests.jsonl --concurrency 8 --output results.jsonl
  symptomatic batch requests.jsonl --rps 50
  symptomatic batch requests.jsonl --concurrency 1 --delay 200ms`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().Float64Var(&requestsPS, "rps", 0, "max requests per second (0 = unlimited)")
	batchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output JSONL path (default: stdout)")
	batchCmd.Flags().DurationVar(&batchDelay, "delay", 0, "extra pause per request after rate limiting (overrides rate_limiting.delay)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared with predict
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the prediction cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (overrides cache.dir)")
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	file := args[0]

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	applyOutputFlags(cmd, cfg)
	if cmd.Flags().Changed("concurrency") || cfg.Concurrency.Workers <= 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if cmd.Flags().Changed("rps") {
		cfg.RateLimiting.RequestsPerSecond = requestsPS
	}
	if cmd.Flags().Changed("delay") {
		cfg.RateLimiting.Delay = batchDelay
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	dest := "stdout"
	if outputPath != "" {
		dest = outputPath
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Symptomatic Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	if cfg.RateLimiting.RequestsPerSecond > 0 {
		fmt.Fprintf(os.Stderr, "  Rate limit:   %.1f req/s (burst %d)\n", cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	}
	if cfg.RateLimiting.Delay > 0 {
		fmt.Fprintf(os.Stderr, "  Delay:        %v per request\n", cfg.RateLimiting.Delay)
	}
	fmt.Fprintf(os.Stderr, "  Output:       %s\n", dest)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create pipeline
	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	// Create batch processor
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize).
		WithDelay(cfg.RateLimiting.Delay)

	// Process requests
	fmt.Fprintf(os.Stderr, "⚙️  Reading requests from file...\n")
	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Processed %d requests\n", len(outcomes))

	// Write results
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, createErr := os.Create(outputPath)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output: %w", closeErr)
			}
		}()
		w = f
	}
	if err := worker.WriteResults(w, outcomes); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	printBatchSummary(os.Stderr, outcomes, dest)
	return nil
}

// printBatchSummary reports per-status totals
func printBatchSummary(w io.Writer, outcomes []*worker.PredictOutcome, dest string) {
	counts := map[model.PredictionStatus]int{}
	failures := 0
	cached := 0

	for _, o := range outcomes {
		if o.Error != nil {
			failures++
			fmt.Fprintf(w, "✗ %s: %v\n", o.Request.ID, o.Error)
			continue
		}
		counts[o.Result.Status]++
		if o.Cached {
			cached++
		}
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Batch Complete\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Total:     %d requests\n", len(outcomes))
	fmt.Fprintf(w, "  Matched:   %d\n", counts[model.StatusOK])
	fmt.Fprintf(w, "  No match:  %d\n", counts[model.StatusNoMatch])
	fmt.Fprintf(w, "  Degraded:  %d\n", counts[model.StatusError])
	fmt.Fprintf(w, "  Rejected:  %d\n", failures)
	if cached > 0 {
		fmt.Fprintf(w, "  Cached:    %d\n", cached)
	}
	fmt.Fprintf(w, "  Output:    %s\n", dest)
	fmt.Fprintf(w, "\n")
}
