package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"

	"campusnav-backend/application/ports"
	appservices "campusnav-backend/application/services"
	"campusnav-backend/pkg/api"
	pkgerrors "campusnav-backend/pkg/errors"
)

// NavigationHandler handles navigation-related HTTP requests
type NavigationHandler struct {
	service   *appservices.NavigationService
	artifacts ports.ArtifactStore
	logger    *zap.Logger
}

// NewNavigationHandler creates a new navigation handler. The artifact
// store is optional; without it the map endpoint reports rendering as
// disabled.
func NewNavigationHandler(
	service *appservices.NavigationService,
	artifacts ports.ArtifactStore,
	logger *zap.Logger,
) *NavigationHandler {
	return &NavigationHandler{
		service:   service,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Navigate handles POST /navigate
func (h *NavigationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req api.NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Navigate(r.Context(), appservices.NavigationRequest{
		Start:   req.Start,
		End:     req.End,
		Narrate: req.Narrate,
	})
	if err != nil {
		h.respondNavigateError(w, err)
		return
	}

	response := api.NavigateResponse{
		Path:            make([]string, 0, len(result.Route.Path)),
		Instructions:    result.Route.Instructions,
		DistanceMeters:  result.Route.DistanceMeters,
		DurationMinutes: result.Route.DurationMinutes,
	}
	for _, key := range result.Route.Path {
		response.Path = append(response.Path, key.String())
	}
	if h.artifacts != nil {
		response.MapURL = "/api/v1/map"
	}

	api.Success(w, http.StatusOK, response)
}

// respondNavigateError maps a navigation failure to its HTTP answer.
// Catalog errors carry their own status and machine-readable code;
// anything else is an internal fault and gets a generic message so
// internals never leak to the client.
func (h *NavigationHandler) respondNavigateError(w http.ResponseWriter, err error) {
	status := pkgerrors.HTTPStatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Navigation failed", zap.Error(err))
		api.Error(w, status, "Failed to compute route")
		return
	}

	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		api.ErrorWithCode(w, status, appErr.Message, appErr.Code)
		return
	}
	api.Error(w, status, err.Error())
}

// ListLocations handles GET /locations
func (h *NavigationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations := h.service.Locations()

	response := api.LocationsResponse{
		Locations: make([]api.LocationResponse, 0, len(locations)),
		Count:     len(locations),
	}
	for _, loc := range locations {
		response.Locations = append(response.Locations, api.LocationResponse{
			Key:       loc.Key().String(),
			Name:      loc.Name(),
			Latitude:  loc.Coordinate().Latitude(),
			Longitude: loc.Coordinate().Longitude(),
		})
	}

	api.Success(w, http.StatusOK, response)
}

// LatestMap handles GET /map. It serves the most recently rendered route
// map with the media type recorded at render time.
func (h *NavigationHandler) LatestMap(w http.ResponseWriter, r *http.Request) {
	if h.artifacts == nil {
		api.Error(w, http.StatusNotFound, "Map rendering is disabled")
		return
	}

	artifact, ok := h.artifacts.Latest()
	if !ok {
		api.Error(w, http.StatusNotFound, "No route has been rendered yet")
		return
	}

	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		h.logger.Warn("Rendered map missing from disk",
			zap.String("artifactID", artifact.ID),
			zap.String("path", artifact.Path),
			zap.Error(err),
		)
		api.Error(w, http.StatusNotFound, "Rendered map is no longer available")
		return
	}

	w.Header().Set("Content-Type", artifact.MediaType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write map response", zap.Error(err))
	}
}
