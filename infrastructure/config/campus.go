package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"campusnav-backend/domain/core/aggregates"
	pkgerrors "campusnav-backend/pkg/errors"
	"campusnav-backend/pkg/validation"
)

//go:embed campus_default.yaml
var defaultCampusYAML []byte

// LocationEntry is one location in a campus document
type LocationEntry struct {
	Key       string   `yaml:"key" validate:"required"`
	Name      string   `yaml:"name,omitempty"`
	Latitude  float64  `yaml:"latitude"`
	Longitude float64  `yaml:"longitude"`
	Neighbors []string `yaml:"neighbors,omitempty"`
}

// CampusDocument is the on-disk schema for a campus map
type CampusDocument struct {
	Name      string          `yaml:"name"`
	Locations []LocationEntry `yaml:"locations" validate:"required,min=1,dive"`
}

// DefaultCampusYAML returns the embedded default campus document as bytes
func DefaultCampusYAML() []byte {
	return defaultCampusYAML
}

// ParseCampus decodes a campus document and builds the immutable aggregate.
// Every structural problem surfaces as a malformed-graph error so callers can
// fail startup instead of serving requests against a broken map.
func ParseCampus(data []byte) (*aggregates.Campus, error) {
	var doc CampusDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.NewMalformedGraphError("campus document is not valid YAML").WithCause(err)
	}

	if err := validation.ValidateStruct(&doc); err != nil {
		return nil, pkgerrors.NewMalformedGraphError("campus document is incomplete").WithCause(err)
	}

	if doc.Name == "" {
		doc.Name = "Campus"
	}

	definitions := make([]aggregates.LocationDefinition, 0, len(doc.Locations))
	for _, entry := range doc.Locations {
		definitions = append(definitions, aggregates.LocationDefinition{
			Key:       entry.Key,
			Name:      entry.Name,
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
			Neighbors: entry.Neighbors,
		})
	}

	return aggregates.NewCampus(doc.Name, definitions)
}

// LoadCampus reads a campus document from path. An empty path loads the
// embedded default campus.
func LoadCampus(path string) (*aggregates.Campus, error) {
	if path == "" {
		return ParseCampus(defaultCampusYAML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read campus file %s: %w", path, err)
	}

	campus, err := ParseCampus(data)
	if err != nil {
		return nil, fmt.Errorf("campus file %s: %w", path, err)
	}

	return campus, nil
}
