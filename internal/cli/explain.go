package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/symptomatic/internal/model"
)

// printBreakdown shows how one condition's confidence was composed
func printBreakdown(w io.Writer, sc model.ScoredCondition, threshold float64) {
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Breakdown: %s (%s)\n", sc.Condition, sc.Key)
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Symptom fit:   %.2f\n", sc.Breakdown.Symptom)
	fmt.Fprintf(w, "  Severity fit:  %.2f\n", sc.Breakdown.Severity)
	fmt.Fprintf(w, "  Duration fit:  %.2f\n", sc.Breakdown.Duration)
	fmt.Fprintf(w, "  Formula:       %s\n", sc.Breakdown.Formula)
	fmt.Fprintf(w, "  Raw score:     %.4f\n", sc.Breakdown.Raw)
	fmt.Fprintf(w, "  Confidence:    %.2f\n", sc.Confidence)
	if len(sc.MatchedSymptoms) > 0 {
		fmt.Fprintf(w, "  Matched:       %s\n", strings.Join(sc.MatchedSymptoms, ", "))
	} else {
		fmt.Fprintf(w, "  Matched:       (none)\n")
	}

	verdict := "above"
	if sc.Breakdown.Raw <= threshold {
		verdict = "at or below"
	}
	fmt.Fprintf(w, "  Verdict:       %s threshold %.2f\n\n", verdict, threshold)
}
