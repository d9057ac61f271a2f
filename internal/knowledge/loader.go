package knowledge

import (
	"fmt"
	"os"

	"github.com/ppiankov/symptomatic/internal/model"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML layout of a catalog
type catalogFile struct {
	Conditions []model.ConditionDefinition `yaml:"conditions"`
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(file.Conditions) == 0 {
		return nil, fmt.Errorf("%w: catalog has no conditions", ErrInvalidCondition)
	}
	return New(file.Conditions)
}

// LoadFile reads a YAML catalog from path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the reference catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Marshal encodes a catalog in the same YAML layout LoadFile reads
func Marshal(c *Catalog) ([]byte, error) {
	data, err := yaml.Marshal(catalogFile{Conditions: c.All()})
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}
