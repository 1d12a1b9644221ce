package valueobjects

import (
	"strings"

	pkgerrors "campusnav-backend/pkg/errors"
)

// LocationKey is a value object holding the canonical identity of a campus
// location. Raw input is trimmed and lower-cased, so " Library " and
// "library" name the same place everywhere in the system.
type LocationKey struct {
	value string
}

// NormalizeLocationKey applies the canonical form to raw input without
// constructing a key. Lookups and keys must agree on this form.
func NormalizeLocationKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NewLocationKey creates a location key from raw input with validation
func NewLocationKey(raw string) (LocationKey, error) {
	normalized := NormalizeLocationKey(raw)
	if normalized == "" {
		return LocationKey{}, pkgerrors.NewValidationError("location key cannot be empty")
	}
	return LocationKey{value: normalized}, nil
}

// String returns the canonical form of the key
func (k LocationKey) String() string {
	return k.value
}

// IsZero checks if the key is the zero value
func (k LocationKey) IsZero() bool {
	return k.value == ""
}

// Equals checks if two keys identify the same location
func (k LocationKey) Equals(other LocationKey) bool {
	return k.value == other.value
}

// DisplayName derives a human-readable form of the key, title-casing each
// word ("cse block" becomes "Cse Block"). Used when the source data carries
// no explicit name.
func (k LocationKey) DisplayName() string {
	words := strings.Fields(k.value)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
