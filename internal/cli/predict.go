package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/symptomatic/internal/engine"
	"github.com/ppiankov/symptomatic/internal/model"
	"github.com/ppiankov/symptomatic/internal/pipeline"
	"github.com/ppiankov/symptomatic/internal/validate"
)

var (
	symptoms       string
	severity       int
	duration       string
	additionalInfo string
	outJSON        string
	outMD          string
	explainKey     string
	noCache        bool
	noFooter       bool
	cacheDir       string
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict likely conditions for a symptom description",
	Long: `Predict normalizes a free-text symptom description and scores it against
the condition catalog:
- Recognize canonical symptoms from synonyms and surface forms
- Score symptom overlap, severity fit and duration fit per condition
- Keep conditions above the confidence threshold
- Rank by confidence and explain the top result

Example:
  symptomatic predict --symptoms "runny nose, sneezing, sore throat" --severity 2 --duration "2 days"
  symptomatic predict --symptoms "pounding headache and nausea" --severity 8 --duration "sudden onset" --json -
  symptomatic predict --symptoms "headache" --severity 4 --duration "3 weeks" --explain hypertension`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)

	// Request flags
	predictCmd.Flags().StringVarP(&symptoms, "symptoms", "s", "", "free-text symptom description (required)")
	predictCmd.Flags().IntVar(&severity, "severity", 0, "severity from 1 to 10 (required)")
	predictCmd.Flags().StringVarP(&duration, "duration", "d", "", `how long symptoms have lasted, e.g. "2 days" or "sudden onset" (required)`)
	predictCmd.Flags().StringVar(&additionalInfo, "info", "", "additional context (not scored)")
	_ = predictCmd.MarkFlagRequired("symptoms")
	_ = predictCmd.MarkFlagRequired("severity")
	_ = predictCmd.MarkFlagRequired("duration")

	// Output flags
	predictCmd.Flags().StringVar(&outJSON, "json", "", `output JSON path ("-" for stdout)`)
	predictCmd.Flags().StringVar(&outMD, "md", "", `output Markdown path ("-" for stdout)`)
	predictCmd.Flags().StringVar(&explainKey, "explain", "", "show the unthresholded score breakdown for one condition key")
	predictCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Cache flags
	predictCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the prediction cache")
	predictCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (overrides cache.dir)")
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	applyOutputFlags(cmd, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	req := model.PredictionRequest{
		Symptoms:       symptoms,
		Severity:       severity,
		Duration:       duration,
		AdditionalInfo: additionalInfo,
	}

	res, err := p.Predict(ctx, req)
	if err != nil {
		var verrs validate.Errors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fmt.Fprintf(os.Stderr, "✗ %s\n", fe.Error())
			}
			return fmt.Errorf("invalid request: %d field(s) rejected", len(verrs))
		}
		return fmt.Errorf("predict failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Recognized %d symptom(s)\n", len(res.Result.Symptoms))
		fmt.Fprintf(os.Stderr, "✓ %d prediction(s), status %s\n", len(res.Result.Predictions), res.Result.Status)
		if res.Cached {
			fmt.Fprintf(os.Stderr, "✓ Served from cache\n")
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderResult(res, outJSON, outMD, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if explainKey != "" {
		sc, err := p.Engine().Explain(req, explainKey)
		if errors.Is(err, engine.ErrUnknownCondition) {
			return fmt.Errorf("unknown condition key %q (see 'symptomatic conditions list')", explainKey)
		}
		if err != nil {
			return fmt.Errorf("explain failed: %w", err)
		}
		printBreakdown(breakdownWriter(cmd, outJSON, outMD), sc, p.Engine().Threshold())
	}

	return nil
}

// breakdownWriter keeps stdout machine-readable when a report is sent there
func breakdownWriter(cmd *cobra.Command, jsonPath, mdPath string) io.Writer {
	if jsonPath == "-" || mdPath == "-" {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// applyOutputFlags lets explicitly set command flags override config
func applyOutputFlags(cmd *cobra.Command, cfg *model.Config) {
	if f := cmd.Flags().Lookup("no-cache"); f != nil && f.Changed {
		cfg.Cache.Enabled = !noCache
	}
	if f := cmd.Flags().Lookup("cache-dir"); f != nil && f.Changed {
		cfg.Cache.Dir = cacheDir
	}
	if f := cmd.Flags().Lookup("no-footer"); f != nil && f.Changed {
		cfg.Output.IncludeFooter = !noFooter
	}
}
