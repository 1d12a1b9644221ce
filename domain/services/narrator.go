package services

import (
	"fmt"

	"campusnav-backend/domain/core/aggregates"
	"campusnav-backend/domain/core/valueobjects"
)

// Default pacing constants: 80 m per walkway hop at a 4.8 km/h walking
// speed, so one hop costs about a minute.
const (
	DefaultHopDistanceMeters           = 80.0
	DefaultWalkingSpeedMetersPerMinute = 80.0
)

// Route is the narrated outcome of a path computation.
type Route struct {
	Path            []valueobjects.LocationKey
	Instructions    []string
	DistanceMeters  float64
	DurationMinutes int
}

// RouteNarrator turns a path into spoken-style walking instructions with a
// distance and time estimate. Narration is deterministic: the instruction
// list always has exactly one entry per path element.
type RouteNarrator struct {
	hopDistanceMeters           float64
	walkingSpeedMetersPerMinute float64
}

// NewRouteNarrator creates a narrator. Non-positive pacing values fall back
// to the defaults.
func NewRouteNarrator(hopDistanceMeters, walkingSpeedMetersPerMinute float64) *RouteNarrator {
	if hopDistanceMeters <= 0 {
		hopDistanceMeters = DefaultHopDistanceMeters
	}
	if walkingSpeedMetersPerMinute <= 0 {
		walkingSpeedMetersPerMinute = DefaultWalkingSpeedMetersPerMinute
	}
	return &RouteNarrator{
		hopDistanceMeters:           hopDistanceMeters,
		walkingSpeedMetersPerMinute: walkingSpeedMetersPerMinute,
	}
}

// Narrate builds the instruction list for a path. A single-element path
// narrates only an "already there" message with zero distance; otherwise the
// first instruction announces the start, each intermediate hop gets a
// "proceed" instruction, and the final instruction announces arrival at the
// end location.
func (n *RouteNarrator) Narrate(campus *aggregates.Campus, path []valueobjects.LocationKey) Route {
	if len(path) == 0 {
		return Route{}
	}

	if len(path) == 1 {
		return Route{
			Path:         path,
			Instructions: []string{fmt.Sprintf("You are already at %s.", n.displayName(campus, path[0]))},
		}
	}

	instructions := make([]string, 0, len(path))
	instructions = append(instructions, fmt.Sprintf("Starting from %s.", n.displayName(campus, path[0])))
	for _, key := range path[1 : len(path)-1] {
		instructions = append(instructions, fmt.Sprintf("Proceed to %s.", n.displayName(campus, key)))
	}
	instructions = append(instructions, fmt.Sprintf("You have reached %s.", n.displayName(campus, path[len(path)-1])))

	distance := float64(len(path)-1) * n.hopDistanceMeters
	minutes := int(distance / n.walkingSpeedMetersPerMinute)

	return Route{
		Path:            path,
		Instructions:    instructions,
		DistanceMeters:  distance,
		DurationMinutes: minutes,
	}
}

// displayName resolves the human-readable name, falling back to the
// title-cased key when the campus cannot resolve it.
func (n *RouteNarrator) displayName(campus *aggregates.Campus, key valueobjects.LocationKey) string {
	if campus != nil {
		if location, ok := campus.Location(key); ok {
			return location.Name()
		}
	}
	return key.DisplayName()
}
