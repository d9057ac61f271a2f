package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/symptomatic/internal/rank"
)

const footer = "_This assessment is generated by a rule-based engine and is not a medical diagnosis. " +
	"Always consult a qualified healthcare professional._\n"

// Renderer writes prediction results as JSON, Markdown or a console summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON encodes the engine result as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, res *PredictResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Result)
}

// RenderJSON writes the engine result to path
func (r *Renderer) RenderJSON(res *PredictResult, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return r.WriteJSON(f, res)
}

// RenderMarkdown writes a Markdown report to path
func (r *Renderer) RenderMarkdown(res *PredictResult, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(res)), 0644)
}

// Markdown builds the Markdown report
func (r *Renderer) Markdown(res *PredictResult) string {
	var b strings.Builder
	result := res.Result

	b.WriteString("# Symptom Assessment\n\n")
	fmt.Fprintf(&b, "- **Symptoms:** %s\n", res.Request.Symptoms)
	fmt.Fprintf(&b, "- **Severity:** %d/10\n", res.Request.Severity)
	fmt.Fprintf(&b, "- **Duration:** %s\n", res.Request.Duration)
	if res.Request.AdditionalInfo != "" {
		fmt.Fprintf(&b, "- **Additional info:** %s\n", res.Request.AdditionalInfo)
	}
	if len(result.Symptoms) > 0 {
		fmt.Fprintf(&b, "- **Recognized:** %s\n", strings.Join(result.Symptoms, ", "))
	}
	fmt.Fprintf(&b, "- **Status:** %s\n", result.Status)
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", result.Timestamp.Format(time.RFC3339))

	b.WriteString("## Summary\n\n")
	b.WriteString(result.Explanation)
	b.WriteString("\n\n")

	if len(result.Predictions) > 0 {
		b.WriteString("## Predictions\n\n")
		b.WriteString("| # | Condition | Confidence | Matched symptoms |\n")
		b.WriteString("|---|-----------|------------|------------------|\n")
		for i, p := range result.Predictions {
			fmt.Fprintf(&b, "| %d | %s | %.0f%% | %s |\n", i+1, p.Condition, p.Confidence*100, strings.Join(p.MatchedSymptoms, ", "))
		}
		b.WriteString("\n")

		for i, p := range result.Predictions {
			fmt.Fprintf(&b, "### %d. %s (%s)\n\n", i+1, p.Condition, rank.Qualifier(p.Confidence))
			if p.Description != "" {
				b.WriteString(p.Description)
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "**Score breakdown:** symptom %.2f, severity %.2f, duration %.2f (`%s`)\n\n",
				p.Breakdown.Symptom, p.Breakdown.Severity, p.Breakdown.Duration, p.Breakdown.Formula)
			if len(p.Recommendations) > 0 {
				b.WriteString("**Recommendations:**\n\n")
				for _, rec := range p.Recommendations {
					fmt.Fprintf(&b, "- %s\n", rec)
				}
				b.WriteString("\n")
			}
		}
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString(footer)
	}

	return b.String()
}

// RenderSummary prints a short console summary
func (r *Renderer) RenderSummary(w io.Writer, res *PredictResult) {
	result := res.Result

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Symptom Assessment\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Status:      %s\n", result.Status)
	fmt.Fprintf(w, "  Confidence:  %.0f%%\n", result.Confidence*100)
	if len(result.Symptoms) > 0 {
		fmt.Fprintf(w, "  Recognized:  %s\n", strings.Join(result.Symptoms, ", "))
	}
	if res.Cached {
		fmt.Fprintf(w, "  Source:      cache\n")
	}
	fmt.Fprintf(w, "\n")

	for i, p := range result.Predictions {
		fmt.Fprintf(w, "  %d. %-22s %3.0f%%  (%s)\n", i+1, p.Condition, p.Confidence*100, strings.Join(p.MatchedSymptoms, ", "))
	}
	if len(result.Predictions) > 0 {
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "  %s\n", result.Explanation)
	fmt.Fprintf(w, "\n")
}
