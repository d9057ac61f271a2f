package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/symptomatic/internal/model"
)

// ErrInvalidCondition is wrapped by every definition validation failure
var ErrInvalidCondition = errors.New("invalid condition definition")

// Catalog is an immutable, ordered set of condition definitions.
// It is safe for concurrent reads once constructed.
type Catalog struct {
	conditions []model.ConditionDefinition
	byKey      map[string]int
}

// New validates defs and builds a catalog that preserves declaration order
func New(defs []model.ConditionDefinition) (*Catalog, error) {
	c := &Catalog{
		conditions: make([]model.ConditionDefinition, 0, len(defs)),
		byKey:      make(map[string]int, len(defs)),
	}

	var errs []error
	for i, def := range defs {
		if err := Validate(def); err != nil {
			errs = append(errs, fmt.Errorf("condition #%d: %w", i, err))
			continue
		}
		if _, dup := c.byKey[def.Key]; dup {
			errs = append(errs, fmt.Errorf("condition #%d: %w: duplicate key %q", i, ErrInvalidCondition, def.Key))
			continue
		}
		c.byKey[def.Key] = len(c.conditions)
		c.conditions = append(c.conditions, def.Clone())
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return c, nil
}

// Validate checks a single definition against the catalog invariants
func Validate(def model.ConditionDefinition) error {
	if strings.TrimSpace(def.Key) == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidCondition)
	}
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: %s: empty name", ErrInvalidCondition, def.Key)
	}
	if len(def.Symptoms) == 0 {
		return fmt.Errorf("%w: %s: no canonical symptoms", ErrInvalidCondition, def.Key)
	}
	for _, s := range def.Symptoms {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: %s: blank symptom token", ErrInvalidCondition, def.Key)
		}
	}
	if len(def.SeverityRange) == 0 {
		return fmt.Errorf("%w: %s: empty severity range", ErrInvalidCondition, def.Key)
	}
	for _, sev := range def.SeverityRange {
		if sev < 1 || sev > 10 {
			return fmt.Errorf("%w: %s: severity %d outside 1-10", ErrInvalidCondition, def.Key, sev)
		}
	}
	if !def.Presentation.Valid() {
		return fmt.Errorf("%w: %s: unknown presentation %q", ErrInvalidCondition, def.Key, def.Presentation)
	}
	return nil
}

// All returns every definition in declaration order.
// The returned values are copies.
func (c *Catalog) All() []model.ConditionDefinition {
	out := make([]model.ConditionDefinition, len(c.conditions))
	for i, def := range c.conditions {
		out[i] = def.Clone()
	}
	return out
}

// Len returns the number of conditions
func (c *Catalog) Len() int {
	return len(c.conditions)
}

// FindByName looks up a condition by display name, ignoring case
func (c *Catalog) FindByName(name string) (model.ConditionDefinition, bool) {
	for _, def := range c.conditions {
		if strings.EqualFold(def.Name, name) {
			return def.Clone(), true
		}
	}
	return model.ConditionDefinition{}, false
}

// FindByKey looks up a condition by its stable key
func (c *Catalog) FindByKey(key string) (model.ConditionDefinition, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return model.ConditionDefinition{}, false
	}
	return c.conditions[i].Clone(), true
}
