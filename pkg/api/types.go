package api

// NavigateRequest is the expected body for a POST /navigate request.
// Start and end are accepted in any case and with surrounding whitespace;
// the navigation service reports blank fields itself, so no binding-level
// required constraint is applied here.
type NavigateRequest struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Narrate bool   `json:"narrate,omitempty"`
}

// NavigateResponse is the API representation of a computed route.
type NavigateResponse struct {
	Path            []string `json:"path"`
	Instructions    []string `json:"instructions"`
	DistanceMeters  float64  `json:"distance_meters"`
	DurationMinutes int      `json:"duration_minutes"`
	MapURL          string   `json:"map_url,omitempty"`
}

// LocationResponse is the API representation of a single campus location.
type LocationResponse struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationsResponse lists every selectable location on the campus.
type LocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
	Count     int                `json:"count"`
}

// HealthResponse reports process liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

// ReadyResponse reports whether the campus graph and collaborators are up.
type ReadyResponse struct {
	Status    string `json:"status"`
	Locations int    `json:"locations"`
}

// ErrorResponse is a standardized error message for API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
