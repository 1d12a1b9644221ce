package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"campusnav-backend/pkg/api"
)

const (
	defaultServerURL = "http://localhost:8080"
	requestTimeout   = 30 * time.Second
)

// serverBaseURL resolves the navigation server address. The --server flag
// wins, then the CAMPUSNAV_SERVER_URL environment variable, then localhost.
func serverBaseURL() string {
	if serverURL != "" {
		return strings.TrimRight(serverURL, "/")
	}
	if url := os.Getenv("CAMPUSNAV_SERVER_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return defaultServerURL
}

func fetchLocations() (*api.LocationsResponse, error) {
	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Get(serverBaseURL() + "/api/v1/locations")
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, serverErrorMessage(body))
	}

	var locations api.LocationsResponse
	if err := json.Unmarshal(body, &locations); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &locations, nil
}

func sendNavigateRequest(start, end string, narrate bool) (*api.NavigateResponse, error) {
	requestBody, err := json.Marshal(api.NavigateRequest{
		Start:   start,
		End:     end,
		Narrate: narrate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Post(serverBaseURL()+"/api/v1/navigate", "application/json", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, serverErrorMessage(body))
	}

	var route api.NavigateResponse
	if err := json.Unmarshal(body, &route); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &route, nil
}

// serverErrorMessage pulls the message out of the server's error envelope,
// falling back to the raw body when it is not JSON.
func serverErrorMessage(body []byte) string {
	var apiErr api.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return apiErr.Error
	}
	return strings.TrimSpace(string(body))
}
