package model

import (
	"slices"
	"strings"
)

// SymptomSet is a deduplicated set of canonical symptom tokens.
// Tokens() keeps insertion order, which the normalizer makes equal to
// synonym table order. The zero value is an empty, usable set.
type SymptomSet struct {
	tokens []string
	index  map[string]struct{}
}

// NewSymptomSet builds a set from tokens, dropping duplicates and blanks
func NewSymptomSet(tokens ...string) SymptomSet {
	var s SymptomSet
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add inserts token and reports whether it was new
func (s *SymptomSet) Add(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[token]; ok {
		return false
	}
	s.index[token] = struct{}{}
	s.tokens = append(s.tokens, token)
	return true
}

// Contains reports whether token is in the set
func (s SymptomSet) Contains(token string) bool {
	_, ok := s.index[token]
	return ok
}

// Len returns the number of tokens
func (s SymptomSet) Len() int {
	return len(s.tokens)
}

// IsEmpty reports whether the set has no tokens
func (s SymptomSet) IsEmpty() bool {
	return len(s.tokens) == 0
}

// Tokens returns the tokens in insertion order
func (s SymptomSet) Tokens() []string {
	return slices.Clone(s.tokens)
}

// Sorted returns the tokens in lexical order
func (s SymptomSet) Sorted() []string {
	out := slices.Clone(s.tokens)
	slices.Sort(out)
	return out
}

// Equal reports whether both sets hold the same tokens, ignoring order
func (s SymptomSet) Equal(other SymptomSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, t := range s.tokens {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// Intersect returns the tokens of s that the condition lists, in s order
func (s SymptomSet) Intersect(c ConditionDefinition) []string {
	matched := make([]string, 0)
	for _, t := range s.tokens {
		if c.HasSymptom(t) {
			matched = append(matched, t)
		}
	}
	return matched
}
