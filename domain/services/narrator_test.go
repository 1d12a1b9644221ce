package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav-backend/domain/core/aggregates"
	"campusnav-backend/domain/core/valueobjects"
)

func TestNarrate_MultiHopRoute(t *testing.T) {
	// Arrange
	campus := diamondCampus(t)
	narrator := NewRouteNarrator(80, 80)
	path := []valueobjects.LocationKey{key(t, "gate"), key(t, "library"), key(t, "stadium")}

	// Act
	route := narrator.Narrate(campus, path)

	// Assert
	require.Len(t, route.Instructions, len(path))
	assert.Equal(t, "Starting from Gate.", route.Instructions[0])
	assert.Equal(t, "Proceed to Library.", route.Instructions[1])
	assert.Equal(t, "You have reached Stadium.", route.Instructions[2])
	assert.Equal(t, 160.0, route.DistanceMeters)
	assert.Equal(t, 2, route.DurationMinutes)
	assert.Equal(t, path, route.Path)
}

func TestNarrate_TwoStopRoute(t *testing.T) {
	// Arrange
	campus := diamondCampus(t)
	narrator := NewRouteNarrator(80, 80)
	path := []valueobjects.LocationKey{key(t, "gate"), key(t, "quad")}

	// Act
	route := narrator.Narrate(campus, path)

	// Assert
	assert.Equal(t, []string{"Starting from Gate.", "You have reached Quad."}, route.Instructions)
	assert.Equal(t, 80.0, route.DistanceMeters)
	assert.Equal(t, 1, route.DurationMinutes)
}

func TestNarrate_AlreadyThere(t *testing.T) {
	// Arrange
	campus := diamondCampus(t)
	narrator := NewRouteNarrator(80, 80)
	path := []valueobjects.LocationKey{key(t, "library")}

	// Act
	route := narrator.Narrate(campus, path)

	// Assert
	assert.Equal(t, []string{"You are already at Library."}, route.Instructions)
	assert.Zero(t, route.DistanceMeters)
	assert.Zero(t, route.DurationMinutes)
}

func TestNarrate_InstructionCountEqualsPathLength(t *testing.T) {
	// Arrange: a chain of five quads in a row.
	definitions := make([]aggregates.LocationDefinition, 5)
	for i := range definitions {
		definitions[i] = aggregates.LocationDefinition{
			Key:       fmt.Sprintf("block %d", i+1),
			Latitude:  30.27 + float64(i)*0.0005,
			Longitude: 78.99,
		}
		if i > 0 {
			definitions[i].Neighbors = []string{fmt.Sprintf("block %d", i)}
		}
	}
	campus := buildCampus(t, definitions)
	narrator := NewRouteNarrator(80, 80)

	var path []valueobjects.LocationKey
	for i := 1; i <= 5; i++ {
		path = append(path, key(t, fmt.Sprintf("block %d", i)))

		// Act
		route := narrator.Narrate(campus, path)

		// Assert
		assert.Len(t, route.Instructions, len(path))
		assert.Contains(t, route.Instructions[len(route.Instructions)-1], fmt.Sprintf("Block %d", i))
		if len(path) > 1 {
			assert.Contains(t, route.Instructions[0], "Block 1")
		}
	}
}

func TestNarrate_UsesDisplayNames(t *testing.T) {
	// Arrange: the source data carries an explicit display name.
	campus := buildCampus(t, []aggregates.LocationDefinition{
		{Key: "cse block", Name: "CSE Block", Latitude: 30.2747, Longitude: 78.9927, Neighbors: []string{"gate 2"}},
		{Key: "gate 2", Latitude: 30.2739, Longitude: 78.9934},
	})
	narrator := NewRouteNarrator(80, 80)
	path := []valueobjects.LocationKey{key(t, "gate 2"), key(t, "cse block")}

	// Act
	route := narrator.Narrate(campus, path)

	// Assert
	assert.Equal(t, "Starting from Gate 2.", route.Instructions[0])
	assert.Equal(t, "You have reached CSE Block.", route.Instructions[1])
}

func TestNarrate_TruncatesDurationToWholeMinutes(t *testing.T) {
	tests := []struct {
		name         string
		hopDistance  float64
		speed        float64
		hops         int
		wantDistance float64
		wantMinutes  int
	}{
		{"one short hop rounds down to zero", 50, 80, 1, 50, 0},
		{"three short hops", 50, 80, 3, 150, 1},
		{"exact minute boundary", 80, 80, 4, 320, 4},
		{"slow walker", 80, 60, 2, 160, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange: a straight chain long enough for the hop count.
			definitions := make([]aggregates.LocationDefinition, tt.hops+1)
			for i := range definitions {
				definitions[i] = aggregates.LocationDefinition{
					Key:       fmt.Sprintf("stop %d", i+1),
					Latitude:  30.27 + float64(i)*0.0005,
					Longitude: 78.99,
				}
				if i > 0 {
					definitions[i].Neighbors = []string{fmt.Sprintf("stop %d", i)}
				}
			}
			campus := buildCampus(t, definitions)
			narrator := NewRouteNarrator(tt.hopDistance, tt.speed)

			path := make([]valueobjects.LocationKey, tt.hops+1)
			for i := range path {
				path[i] = key(t, fmt.Sprintf("stop %d", i+1))
			}

			// Act
			route := narrator.Narrate(campus, path)

			// Assert
			assert.Equal(t, tt.wantDistance, route.DistanceMeters)
			assert.Equal(t, tt.wantMinutes, route.DurationMinutes)
		})
	}
}

func TestNarrate_EmptyPath(t *testing.T) {
	narrator := NewRouteNarrator(80, 80)

	route := narrator.Narrate(diamondCampus(t), nil)

	assert.Empty(t, route.Instructions)
	assert.Zero(t, route.DistanceMeters)
}

func TestNewRouteNarrator_DefaultsForNonPositiveValues(t *testing.T) {
	// Arrange
	campus := diamondCampus(t)
	narrator := NewRouteNarrator(0, -5)
	path := []valueobjects.LocationKey{key(t, "gate"), key(t, "library")}

	// Act
	route := narrator.Narrate(campus, path)

	// Assert
	assert.Equal(t, DefaultHopDistanceMeters, route.DistanceMeters)
	assert.Equal(t, 1, route.DurationMinutes)
}
