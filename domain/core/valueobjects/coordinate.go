package valueobjects

import (
	"math"

	pkgerrors "campusnav-backend/pkg/errors"
)

const earthRadiusMeters = 6371000.0

// Coordinate is a value object representing a geographic point on campus
type Coordinate struct {
	latitude  float64
	longitude float64
}

// NewCoordinate creates a coordinate with validation
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	if !isValidCoordinate(latitude) || !isValidCoordinate(longitude) {
		return Coordinate{}, pkgerrors.NewValidationError("invalid coordinate: must be finite numbers")
	}
	if latitude < -90 || latitude > 90 {
		return Coordinate{}, pkgerrors.NewValidationError("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return Coordinate{}, pkgerrors.NewValidationError("longitude must be between -180 and 180")
	}
	return Coordinate{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude in degrees
func (c Coordinate) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in degrees
func (c Coordinate) Longitude() float64 {
	return c.longitude
}

// DistanceTo calculates the ground distance in meters to another coordinate.
// An equirectangular approximation is accurate enough at campus scale.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	lat1 := c.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (other.longitude - c.longitude) * math.Pi / 180

	x := dLon * math.Cos((lat1+lat2)/2)
	return earthRadiusMeters * math.Sqrt(x*x+dLat*dLat)
}

// Equals checks if two coordinates are equal
func (c Coordinate) Equals(other Coordinate) bool {
	const epsilon = 1e-9
	return math.Abs(c.latitude-other.latitude) < epsilon &&
		math.Abs(c.longitude-other.longitude) < epsilon
}

// isValidCoordinate checks if a coordinate component is a valid finite number
func isValidCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
