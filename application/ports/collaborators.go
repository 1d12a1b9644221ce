// Package ports declares the interfaces between the navigation core and its
// collaborators. These are ports in hexagonal architecture - the core never
// knows which adapter is behind them.
package ports

import (
	"context"
	"time"

	"campusnav-backend/domain/core/aggregates"
	"campusnav-backend/domain/core/valueobjects"
	"campusnav-backend/domain/services"
)

// PathFinder computes a shortest path between two campus locations.
type PathFinder interface {
	// FindPath returns the path from start to end, both inclusive
	FindPath(ctx context.Context, campus *aggregates.Campus, start, end valueobjects.LocationKey) ([]valueobjects.LocationKey, error)
}

// RouteNarrator turns a path into walking instructions with estimates.
type RouteNarrator interface {
	// Narrate builds the instruction list for a path
	Narrate(campus *aggregates.Campus, path []valueobjects.LocationKey) services.Route
}

// VoiceSink receives route instructions for spoken delivery. Sinks are
// explicit instances with a lifecycle: Close releases the engine and must be
// called exactly once when the process shuts down.
type VoiceSink interface {
	// Speak delivers the instructions in order
	Speak(ctx context.Context, instructions []string) error

	// Close releases the underlying engine
	Close() error
}

// Artifact is the opaque product of a map render. The core only forwards
// it; interpretation belongs to whoever serves it.
type Artifact struct {
	ID        string
	Path      string
	MediaType string
	Format    string
	CreatedAt time.Time
}

// RouteMap bundles everything a renderer needs to draw one route.
type RouteMap struct {
	Campus *aggregates.Campus
	Route  services.Route
}

// MapRenderer draws a route over the campus map. Backends are polymorphic
// and selected once at assembly time.
type MapRenderer interface {
	// Render produces an artifact for the given route
	Render(ctx context.Context, routeMap RouteMap) (*Artifact, error)

	// Format names the artifact format the backend produces
	Format() string
}

// ArtifactStore keeps the most recent rendered artifact for serving.
type ArtifactStore interface {
	// Put replaces the current artifact
	Put(artifact *Artifact)

	// Latest returns the current artifact, if any render has completed
	Latest() (*Artifact, bool)
}

// SideEffectDispatcher fans a computed route out to the voice and map
// collaborators off the critical path. Implementations must never block the
// caller on collaborator work and must swallow collaborator failures.
type SideEffectDispatcher interface {
	// Dispatch hands the route to the collaborators; narrate gates voice
	Dispatch(ctx context.Context, route services.Route, narrate bool)
}
