package aggregates

import (
	"fmt"

	"campusnav-backend/domain/core/entities"
	"campusnav-backend/domain/core/valueobjects"
	pkgerrors "campusnav-backend/pkg/errors"
)

// LocationDefinition is the raw material for building a campus: one named
// location with its coordinate and its explicit neighbor list, in source
// order.
type LocationDefinition struct {
	Key       string
	Name      string
	Latitude  float64
	Longitude float64
	Neighbors []string
}

// Campus is the aggregate root for the navigation graph. It is constructed
// once at startup from static definitions and immutable afterwards: a broken
// definition fails construction and the process, never a request.
//
// The adjacency relation is undirected. Neighbor lists keep their source
// insertion order; when an edge is declared on only one side, the missing
// reverse entry is appended after that side's explicit entries, so explicit
// order keeps deciding search tie-breaks.
type Campus struct {
	name      string
	locations map[valueobjects.LocationKey]*entities.Location
	adjacency map[valueobjects.LocationKey][]valueobjects.LocationKey
	order     []valueobjects.LocationKey
}

// NewCampus builds and validates the campus graph
func NewCampus(name string, definitions []LocationDefinition) (*Campus, error) {
	if len(definitions) == 0 {
		return nil, pkgerrors.NewMalformedGraphError("campus must define at least one location")
	}

	campus := &Campus{
		name:      name,
		locations: make(map[valueobjects.LocationKey]*entities.Location, len(definitions)),
		adjacency: make(map[valueobjects.LocationKey][]valueobjects.LocationKey, len(definitions)),
		order:     make([]valueobjects.LocationKey, 0, len(definitions)),
	}

	// First pass: register every location so neighbor references can be
	// resolved regardless of declaration order.
	for _, def := range definitions {
		key, err := valueobjects.NewLocationKey(def.Key)
		if err != nil {
			return nil, pkgerrors.NewMalformedGraphError("location with empty key in campus definition")
		}

		if _, exists := campus.locations[key]; exists {
			return nil, pkgerrors.NewMalformedGraphError(
				fmt.Sprintf("duplicate location '%s' in campus definition", key.String()))
		}

		coordinate, err := valueobjects.NewCoordinate(def.Latitude, def.Longitude)
		if err != nil {
			return nil, pkgerrors.NewMalformedGraphError(
				fmt.Sprintf("location '%s' has an invalid coordinate", key.String())).WithCause(err)
		}

		location, err := entities.NewLocation(key, def.Name, coordinate)
		if err != nil {
			return nil, pkgerrors.NewMalformedGraphError(
				fmt.Sprintf("location '%s' is invalid", key.String())).WithCause(err)
		}

		campus.locations[key] = location
		campus.adjacency[key] = nil
		campus.order = append(campus.order, key)
	}

	// Second pass: resolve explicit neighbor lists.
	for _, def := range definitions {
		key, _ := valueobjects.NewLocationKey(def.Key)

		for _, rawNeighbor := range def.Neighbors {
			neighbor, err := valueobjects.NewLocationKey(rawNeighbor)
			if err != nil {
				return nil, pkgerrors.NewMalformedGraphError(
					fmt.Sprintf("location '%s' lists an empty neighbor", key.String()))
			}

			if neighbor.Equals(key) {
				return nil, pkgerrors.NewMalformedGraphError(
					fmt.Sprintf("location '%s' lists itself as a neighbor", key.String()))
			}

			if _, exists := campus.locations[neighbor]; !exists {
				return nil, pkgerrors.NewMalformedGraphError(
					fmt.Sprintf("location '%s' references undefined neighbor '%s'",
						key.String(), neighbor.String()))
			}

			if containsKey(campus.adjacency[key], neighbor) {
				return nil, pkgerrors.NewMalformedGraphError(
					fmt.Sprintf("location '%s' lists neighbor '%s' more than once",
						key.String(), neighbor.String()))
			}

			campus.adjacency[key] = append(campus.adjacency[key], neighbor)
		}
	}

	// Third pass: mirror one-sided edges to make the relation undirected.
	for _, key := range campus.order {
		for _, neighbor := range campus.adjacency[key] {
			if !containsKey(campus.adjacency[neighbor], key) {
				campus.adjacency[neighbor] = append(campus.adjacency[neighbor], key)
			}
		}
	}

	return campus, nil
}

// Name returns the campus name
func (c *Campus) Name() string {
	return c.name
}

// Lookup normalizes raw input and fetches the matching location
func (c *Campus) Lookup(raw string) (*entities.Location, bool) {
	key, err := valueobjects.NewLocationKey(raw)
	if err != nil {
		return nil, false
	}
	return c.Location(key)
}

// Location fetches a location by its canonical key
func (c *Campus) Location(key valueobjects.LocationKey) (*entities.Location, bool) {
	location, ok := c.locations[key]
	return location, ok
}

// Contains checks whether the key names a campus location
func (c *Campus) Contains(key valueobjects.LocationKey) bool {
	_, ok := c.locations[key]
	return ok
}

// Neighbors returns the ordered neighbor list of a location. The slice is a
// copy; the aggregate stays immutable.
func (c *Campus) Neighbors(key valueobjects.LocationKey) []valueobjects.LocationKey {
	stored, ok := c.adjacency[key]
	if !ok {
		return nil
	}
	neighbors := make([]valueobjects.LocationKey, len(stored))
	copy(neighbors, stored)
	return neighbors
}

// Locations returns every location in definition order
func (c *Campus) Locations() []*entities.Location {
	locations := make([]*entities.Location, 0, len(c.order))
	for _, key := range c.order {
		locations = append(locations, c.locations[key])
	}
	return locations
}

// LocationCount returns the number of locations on the campus
func (c *Campus) LocationCount() int {
	return len(c.locations)
}

// EdgeCount returns the number of undirected walkway edges
func (c *Campus) EdgeCount() int {
	total := 0
	for _, neighbors := range c.adjacency {
		total += len(neighbors)
	}
	return total / 2
}

func containsKey(keys []valueobjects.LocationKey, key valueobjects.LocationKey) bool {
	for _, k := range keys {
		if k.Equals(key) {
			return true
		}
	}
	return false
}
