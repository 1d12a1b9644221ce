package handlers

// This file contains OpenAPI/Swagger documentation for NavigationHandler endpoints

// Navigate computes a route between two campus locations
// @Summary Navigate between two locations
// @Description Finds the shortest walking route between two named campus locations and returns turn-by-turn instructions with a distance and time estimate. When narrate is true the instructions are also spoken through the configured voice backend and broadcast to narration feed subscribers.
// @Tags navigation
// @Accept json
// @Produce json
// @Param request body api.NavigateRequest true "Navigation request"
// @Success 200 {object} api.NavigateResponse "Computed route"
// @Failure 400 {object} api.ErrorResponse "Start or end field is blank"
// @Failure 404 {object} api.ErrorResponse "Unknown location key"
// @Failure 422 {object} api.ErrorResponse "Locations exist but are not connected"
// @Failure 500 {object} api.ErrorResponse "Internal server error"
// @Router /navigate [post]

// ListLocations lists every selectable campus location
// @Summary List campus locations
// @Description Returns every location on the campus in definition order with display names and coordinates.
// @Tags navigation
// @Produce json
// @Success 200 {object} api.LocationsResponse "Campus locations"
// @Router /locations [get]

// LatestMap serves the most recently rendered route map
// @Summary Get the latest route map
// @Description Serves the map rendered for the most recent navigation request. The media type depends on the configured render backend (HTML, SVG or Graphviz DOT).
// @Tags navigation
// @Produce html
// @Success 200 "Rendered route map"
// @Failure 404 {object} api.ErrorResponse "No route has been rendered yet"
// @Router /map [get]
