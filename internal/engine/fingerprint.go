package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ppiankov/symptomatic/internal/model"
	"github.com/ppiankov/symptomatic/internal/normalize"
)

// synonymTable is implemented by normalizers that can expose their table
type synonymTable interface {
	Table() []normalize.Mapping
}

// fingerprintInput lists everything besides the request that shapes a result
type fingerprintInput struct {
	Conditions     []model.ConditionDefinition `json:"conditions"`
	Synonyms       []normalize.Mapping         `json:"synonyms,omitempty"`
	Normalizer     string                      `json:"normalizer,omitempty"`
	Weights        model.Weights               `json:"weights"`
	Threshold      float64                     `json:"threshold"`
	MaxPredictions int                         `json:"max_predictions"`
}

// Fingerprint hashes the catalog, synonym table and scoring parameters.
// Two engines with equal fingerprints produce the same predictions for the
// same request, so it can scope cached results.
func (e *Engine) Fingerprint() string {
	in := fingerprintInput{
		Conditions:     e.conditions.All(),
		Weights:        e.scorer.Weights(),
		Threshold:      e.scorer.Threshold(),
		MaxPredictions: e.ranker.MaxPredictions(),
	}
	if t, ok := e.normalizer.(synonymTable); ok {
		in.Synonyms = t.Table()
	} else {
		in.Normalizer = fmt.Sprintf("%T", e.normalizer)
	}

	data, err := json.Marshal(in)
	if err != nil {
		// NaN or infinite parameters do not encode as JSON
		data = []byte(fmt.Sprintf("%#v", in))
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}
