package normalize

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/symptomatic/internal/model"
)

// ErrInvalidTable is wrapped by synonym table validation failures
var ErrInvalidTable = errors.New("invalid synonym table")

// Mapping ties one canonical token to the surface forms that indicate it
type Mapping struct {
	Token string   `json:"token" yaml:"token"`
	Forms []string `json:"forms" yaml:"forms"`
}

// Normalizer turns free text into canonical symptom tokens by substring
// matching against a fixed synonym table. It is immutable and safe for
// concurrent use.
type Normalizer struct {
	table []Mapping
}

// New builds a normalizer. Table order is kept; it defines token order in
// the resulting sets. Surface forms are lower-cased.
func New(table []Mapping) (*Normalizer, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no mappings", ErrInvalidTable)
	}

	n := &Normalizer{table: make([]Mapping, 0, len(table))}
	for i, m := range table {
		token := strings.TrimSpace(m.Token)
		if token == "" {
			return nil, fmt.Errorf("%w: mapping #%d has no token", ErrInvalidTable, i)
		}

		forms := make([]string, 0, len(m.Forms))
		for _, f := range m.Forms {
			f = prepare(f)
			if f != "" {
				forms = append(forms, f)
			}
		}
		if len(forms) == 0 {
			return nil, fmt.Errorf("%w: %s has no surface forms", ErrInvalidTable, token)
		}

		n.table = append(n.table, Mapping{Token: token, Forms: forms})
	}

	return n, nil
}

// Normalize extracts the canonical tokens mentioned in text.
// Empty or whitespace-only text yields an empty set.
func (n *Normalizer) Normalize(text string) model.SymptomSet {
	var set model.SymptomSet

	lower := prepare(text)
	if lower == "" {
		return set
	}

	for _, m := range n.table {
		for _, form := range m.Forms {
			if strings.Contains(lower, form) {
				set.Add(m.Token)
				break // First match suffices
			}
		}
	}

	return set
}

// Table returns a copy of the synonym table
func (n *Normalizer) Table() []Mapping {
	out := make([]Mapping, len(n.table))
	for i, m := range n.table {
		out[i] = Mapping{Token: m.Token, Forms: append([]string(nil), m.Forms...)}
	}
	return out
}

// prepare folds compatibility characters (full-width letters, ligatures)
// and lower-cases the text
func prepare(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(text)))
}

// tableFile is the on-disk YAML layout of a synonym table
type tableFile struct {
	Synonyms []Mapping `yaml:"synonyms"`
}

// ParseTable decodes a YAML synonym table document
func ParseTable(data []byte) (*Normalizer, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode synonyms: %w", err)
	}
	return New(file.Synonyms)
}

// LoadTable reads a YAML synonym table from path, or returns the built-in
// table when path is empty
func LoadTable(path string) (*Normalizer, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms: %w", err)
	}
	n, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return n, nil
}
