package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/symptomatic/internal/normalize"
)

var (
	normalizeJSON  bool
	normalizeVocab bool
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize [text...]",
	Short: "Show the canonical symptoms recognized in text",
	Long: `Normalize runs only the symptom recognizer and prints the canonical
tokens found in the text, in synonym table order.

Example:
  symptomatic normalize "head pain, feeling sick, high temperature"
  symptomatic normalize --vocabulary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		n, err := normalize.LoadTable(cfg.Catalog.SynonymsPath)
		if err != nil {
			return fmt.Errorf("load synonyms: %w", err)
		}

		out := cmd.OutOrStdout()
		if normalizeVocab {
			if normalizeJSON {
				return writeJSON(out, n.Table())
			}
			for _, m := range n.Table() {
				fmt.Fprintf(out, "%-22s %s\n", m.Token, strings.Join(m.Forms, ", "))
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("text is required (or use --vocabulary)")
		}

		tokens := n.Normalize(strings.Join(args, " ")).Tokens()
		if normalizeJSON {
			return writeJSON(out, tokens)
		}
		for _, tok := range tokens {
			fmt.Fprintln(out, tok)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().BoolVar(&normalizeJSON, "json", false, "print JSON instead of text")
	normalizeCmd.Flags().BoolVar(&normalizeVocab, "vocabulary", false, "print the synonym table instead of normalizing")
}
