package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav-backend/pkg/api"
)

// pointAt aims the client at a test server and restores the flag afterwards.
func pointAt(t *testing.T, url string) {
	t.Helper()
	previous := serverURL
	serverURL = url
	t.Cleanup(func() { serverURL = previous })
}

func TestServerBaseURL(t *testing.T) {
	t.Run("Should fall back to localhost", func(t *testing.T) {
		pointAt(t, "")
		t.Setenv("CAMPUSNAV_SERVER_URL", "")
		assert.Equal(t, "http://localhost:8080", serverBaseURL())
	})

	t.Run("Should read the environment", func(t *testing.T) {
		pointAt(t, "")
		t.Setenv("CAMPUSNAV_SERVER_URL", "http://nav.campus.edu/")
		assert.Equal(t, "http://nav.campus.edu", serverBaseURL())
	})

	t.Run("Should prefer the flag over the environment", func(t *testing.T) {
		pointAt(t, "http://10.0.0.5:9090/")
		t.Setenv("CAMPUSNAV_SERVER_URL", "http://nav.campus.edu")
		assert.Equal(t, "http://10.0.0.5:9090", serverBaseURL())
	})
}

func TestFetchLocations(t *testing.T) {
	t.Run("Should decode the location list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v1/locations", r.URL.Path)
			api.Success(w, http.StatusOK, api.LocationsResponse{
				Locations: []api.LocationResponse{
					{Key: "gate 1", Name: "Gate 1", Latitude: 12.97, Longitude: 79.15},
					{Key: "cafeteria", Name: "Cafeteria", Latitude: 12.971, Longitude: 79.152},
				},
				Count: 2,
			})
		}))
		defer srv.Close()
		pointAt(t, srv.URL)

		locations, err := fetchLocations()
		require.NoError(t, err)
		assert.Equal(t, 2, locations.Count)
		assert.Equal(t, "gate 1", locations.Locations[0].Key)
		assert.Equal(t, "Cafeteria", locations.Locations[1].Name)
	})

	t.Run("Should surface the server error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			api.Error(w, http.StatusServiceUnavailable, "Campus graph is empty")
		}))
		defer srv.Close()
		pointAt(t, srv.URL)

		_, err := fetchLocations()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
		assert.Contains(t, err.Error(), "Campus graph is empty")
	})

	t.Run("Should report an unreachable server", func(t *testing.T) {
		pointAt(t, "http://127.0.0.1:1")

		_, err := fetchLocations()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reach server")
	})
}

func TestSendNavigateRequest(t *testing.T) {
	t.Run("Should post the trip and decode the route", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/navigate", r.URL.Path)

			var req api.NavigateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Gate 1", req.Start)
			assert.Equal(t, "Santosh Library", req.End)
			assert.True(t, req.Narrate)

			api.Success(w, http.StatusOK, api.NavigateResponse{
				Path:            []string{"gate 1", "cafeteria", "btech block", "santosh library"},
				Instructions:    []string{"Starting from Gate 1.", "Proceed to Cafeteria.", "Proceed to BTech Block.", "You have reached Santosh Library."},
				DistanceMeters:  240,
				DurationMinutes: 3,
				MapURL:          "/api/v1/map",
			})
		}))
		defer srv.Close()
		pointAt(t, srv.URL)

		route, err := sendNavigateRequest("Gate 1", "Santosh Library", true)
		require.NoError(t, err)
		assert.Len(t, route.Path, 4)
		assert.Equal(t, "santosh library", route.Path[3])
		assert.InDelta(t, 240.0, route.DistanceMeters, 0.001)
		assert.Equal(t, "/api/v1/map", route.MapURL)
	})

	t.Run("Should surface an unknown location error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			api.ErrorWithCode(w, http.StatusNotFound, "unknown location(s): atlantis", "INVALID_LOCATION")
		}))
		defer srv.Close()
		pointAt(t, srv.URL)

		_, err := sendNavigateRequest("atlantis", "gate 1", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown location(s): atlantis")
	})
}

func TestServerErrorMessage(t *testing.T) {
	t.Run("Should unwrap the error envelope", func(t *testing.T) {
		body, err := json.Marshal(api.ErrorResponse{Error: "no path between gate 1 and island", Code: "NO_PATH"})
		require.NoError(t, err)
		assert.Equal(t, "no path between gate 1 and island", serverErrorMessage(body))
	})

	t.Run("Should fall back to the raw body", func(t *testing.T) {
		assert.Equal(t, "502 Bad Gateway", serverErrorMessage([]byte("502 Bad Gateway\n")))
	})
}
