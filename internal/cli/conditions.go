package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/symptomatic/internal/knowledge"
	"github.com/ppiankov/symptomatic/internal/model"
)

var conditionsJSON bool

// conditionsCmd represents the conditions command
var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "Inspect the condition catalog",
	Long: `Inspect the condition catalog the engine scores against.

The built-in catalog is used unless --catalog or catalog.path points at a
YAML file with the same layout 'conditions export' writes.`,
}

var conditionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog conditions in scoring order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		if conditionsJSON {
			return writeJSON(cmd.OutOrStdout(), catalog.All())
		}
		printConditionList(cmd.OutOrStdout(), catalog.All())
		return nil
	},
}

var conditionsShowCmd = &cobra.Command{
	Use:   "show <name-or-key>",
	Short: "Show one condition",
	Long:  `Show one condition, looked up by key or case-insensitive display name.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		def, ok := catalog.FindByKey(query)
		if !ok {
			def, ok = catalog.FindByName(query)
		}
		if !ok {
			return fmt.Errorf("condition %q not found (see 'symptomatic conditions list')", query)
		}

		if conditionsJSON {
			return writeJSON(cmd.OutOrStdout(), def)
		}
		printCondition(cmd.OutOrStdout(), def)
		return nil
	},
}

var conditionsExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the catalog as YAML",
	Long:  `Write the active catalog as YAML, to stdout or to path. The output can be edited and loaded back with --catalog.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		data, err := knowledge.Marshal(catalog)
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote catalog: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(conditionsCmd)
	conditionsCmd.AddCommand(conditionsListCmd)
	conditionsCmd.AddCommand(conditionsShowCmd)
	conditionsCmd.AddCommand(conditionsExportCmd)

	conditionsCmd.PersistentFlags().BoolVar(&conditionsJSON, "json", false, "print JSON instead of text")
}

func loadCatalog() (*knowledge.Catalog, error) {
	cfg, _, err := setup()
	if err != nil {
		return nil, err
	}
	catalog, err := knowledge.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog, nil
}

func printConditionList(w io.Writer, defs []model.ConditionDefinition) {
	for _, d := range defs {
		fmt.Fprintf(w, "  %-20s %-22s severity %d-%d  %s\n",
			d.Key, d.Name, d.SeverityRange[0], d.SeverityRange[len(d.SeverityRange)-1], presentationLabel(d.Presentation))
	}
}

func printCondition(w io.Writer, d model.ConditionDefinition) {
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  %s (%s)\n", d.Name, d.Key)
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  %s\n\n", d.Description)
	fmt.Fprintf(w, "  Presentation:  %s\n", presentationLabel(d.Presentation))
	fmt.Fprintf(w, "  Severity:      %s\n", joinInts(d.SeverityRange))
	fmt.Fprintf(w, "  Symptoms:      %s\n", strings.Join(d.Symptoms, ", "))
	fmt.Fprintf(w, "\n  Recommendations:\n")
	for _, rec := range d.Recommendations {
		fmt.Fprintf(w, "    - %s\n", rec)
	}
	fmt.Fprintf(w, "\n")
}

func presentationLabel(p model.Presentation) string {
	if p == "" {
		return string(model.PresentationNeutral)
	}
	return string(p)
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
