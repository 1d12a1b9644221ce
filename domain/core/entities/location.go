package entities

import (
	"campusnav-backend/domain/core/valueobjects"
	pkgerrors "campusnav-backend/pkg/errors"
)

// Location is an entity representing a named place on the campus.
// Identity is the normalized key; the display name is what narration and
// map popups show to people.
type Location struct {
	key        valueobjects.LocationKey
	name       string
	coordinate valueobjects.Coordinate
}

// NewLocation creates a location with validation. An empty name falls back
// to the title-cased key.
func NewLocation(key valueobjects.LocationKey, name string, coordinate valueobjects.Coordinate) (*Location, error) {
	if key.IsZero() {
		return nil, pkgerrors.NewValidationError("location key cannot be empty")
	}

	if name == "" {
		name = key.DisplayName()
	}

	return &Location{
		key:        key,
		name:       name,
		coordinate: coordinate,
	}, nil
}

// Key returns the canonical identity of the location
func (l *Location) Key() valueobjects.LocationKey {
	return l.key
}

// Name returns the human-readable display name
func (l *Location) Name() string {
	return l.name
}

// Coordinate returns the geographic position of the location
func (l *Location) Coordinate() valueobjects.Coordinate {
	return l.coordinate
}

// Equals checks entity identity, which is the key alone
func (l *Location) Equals(other *Location) bool {
	if other == nil {
		return false
	}
	return l.key.Equals(other.key)
}
