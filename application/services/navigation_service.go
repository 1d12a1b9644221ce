package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"campusnav-backend/application/ports"
	"campusnav-backend/domain/core/aggregates"
	"campusnav-backend/domain/core/entities"
	"campusnav-backend/domain/core/valueobjects"
	domainservices "campusnav-backend/domain/services"
	pkgerrors "campusnav-backend/pkg/errors"
	"campusnav-backend/pkg/observability"
)

// NavigationRequest is a request to route between two named locations.
// Start and end are raw user input; normalization happens during lookup.
type NavigationRequest struct {
	Start   string
	End     string
	Narrate bool
}

// NavigationResult is the successful outcome of a navigation request.
type NavigationResult struct {
	Start *entities.Location
	End   *entities.Location
	Route domainservices.Route
}

// NavigationService validates navigation requests, finds and narrates a
// route, and hands the finished route to the side-effect collaborators.
// Validation and search failures are returned as typed catalog errors for
// the transport to branch on; they are expected outcomes, not faults, and
// must never take the process down.
type NavigationService struct {
	campus     *aggregates.Campus
	finder     ports.PathFinder
	narrator   ports.RouteNarrator
	dispatcher ports.SideEffectDispatcher
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewNavigationService creates a new navigation service
func NewNavigationService(
	campus *aggregates.Campus,
	finder ports.PathFinder,
	narrator ports.RouteNarrator,
	dispatcher ports.SideEffectDispatcher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *NavigationService {
	return &NavigationService{
		campus:     campus,
		finder:     finder,
		narrator:   narrator,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Navigate runs the full pipeline for one request. Checks run in a fixed
// order: blank fields first, unknown locations second (naming every
// offender), then the search itself. Voice and map-render dispatch happen
// only after the result is complete and never delay or fail it.
func (s *NavigationService) Navigate(ctx context.Context, req NavigationRequest) (*NavigationResult, error) {
	started := time.Now()

	var missing []string
	if strings.TrimSpace(req.Start) == "" {
		missing = append(missing, "start")
	}
	if strings.TrimSpace(req.End) == "" {
		missing = append(missing, "end")
	}
	if len(missing) > 0 {
		return nil, s.reject(started, pkgerrors.NewMissingLocationError(missing...))
	}

	startLocation, startOK := s.campus.Lookup(req.Start)
	endLocation, endOK := s.campus.Lookup(req.End)
	var unknown []string
	if !startOK {
		unknown = append(unknown, valueobjects.NormalizeLocationKey(req.Start))
	}
	if !endOK {
		unknown = append(unknown, valueobjects.NormalizeLocationKey(req.End))
	}
	if len(unknown) > 0 {
		return nil, s.reject(started, pkgerrors.NewInvalidLocationError(unknown...))
	}

	path, err := s.finder.FindPath(ctx, s.campus, startLocation.Key(), endLocation.Key())
	if err != nil {
		return nil, s.reject(started, err)
	}

	route := s.narrator.Narrate(s.campus, path)

	s.metrics.Navigations.WithLabelValues("ok").Inc()
	s.metrics.PathHops.Observe(float64(len(path) - 1))
	s.metrics.NavigationDuration.Observe(time.Since(started).Seconds())

	s.logger.Info("Route computed",
		zap.String("start", startLocation.Key().String()),
		zap.String("end", endLocation.Key().String()),
		zap.Int("hops", len(path)-1),
		zap.Float64("distanceMeters", route.DistanceMeters),
		zap.Bool("narrate", req.Narrate),
	)

	// Side effects leave the critical path here. The dispatcher owns the
	// concurrency and swallows collaborator failures.
	s.dispatcher.Dispatch(ctx, route, req.Narrate)

	return &NavigationResult{
		Start: startLocation,
		End:   endLocation,
		Route: route,
	}, nil
}

// Locations returns every selectable location in campus definition order.
func (s *NavigationService) Locations() []*entities.Location {
	return s.campus.Locations()
}

// LocationCount returns the number of locations on the campus.
func (s *NavigationService) LocationCount() int {
	return s.campus.LocationCount()
}

// reject records a failed navigation and passes the error through unchanged.
func (s *NavigationService) reject(started time.Time, err error) error {
	s.metrics.Navigations.WithLabelValues(outcomeLabel(err)).Inc()
	s.metrics.NavigationDuration.Observe(time.Since(started).Seconds())

	s.logger.Info("Navigation rejected",
		zap.String("outcome", outcomeLabel(err)),
		zap.Error(err),
	)
	return err
}

// outcomeLabel maps an error to its metrics label.
func outcomeLabel(err error) string {
	switch {
	case pkgerrors.IsMissingLocation(err):
		return "missing_location"
	case pkgerrors.IsInvalidLocation(err):
		return "invalid_location"
	case pkgerrors.IsNoPath(err):
		return "no_path"
	default:
		return "error"
	}
}
