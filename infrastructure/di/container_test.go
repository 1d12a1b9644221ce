package di

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav-backend/infrastructure/config"
	"campusnav-backend/pkg/observability"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ServerAddress: ":0",
		Environment:   "development",
		LogLevel:      "error",
		EnableMetrics: true,
		EnableCORS:    true,
		Route: config.RouteConfig{
			HopDistanceMeters:           80,
			WalkingSpeedMetersPerMinute: 80,
		},
		Voice: config.VoiceConfig{
			Backend:             "log",
			Command:             "espeak",
			WordsPerMinute:      160,
			QueueSize:           16,
			SpeakTimeoutSeconds: 30,
		},
		Render: config.RenderConfig{
			Backend:   "svg",
			OutputDir: t.TempDir(),
			Zoom:      18,
		},
	}
}

func TestInitializeContainer_WiresEverything(t *testing.T) {
	observability.ResetForTesting()

	container, err := InitializeContainer(testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, container.Logger)
	assert.NotNil(t, container.Metrics)
	assert.NotNil(t, container.Campus)
	assert.NotNil(t, container.Finder)
	assert.NotNil(t, container.Narrator)
	assert.NotNil(t, container.Hub)
	assert.NotNil(t, container.Narration)
	assert.NotNil(t, container.VoiceSink)
	assert.NotNil(t, container.Renderer)
	assert.NotNil(t, container.Artifacts)
	assert.NotNil(t, container.Dispatcher)
	assert.NotNil(t, container.Navigation)
	assert.NotNil(t, container.Router)

	// Tracing is off and the campus is embedded, so neither optional piece
	// exists.
	assert.Nil(t, container.Tracing)
	assert.Nil(t, container.Watcher)

	assert.Equal(t, 8, container.Campus.LocationCount())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, container.Shutdown(ctx))
}

func TestContainer_NavigateEndToEnd(t *testing.T) {
	observability.ResetForTesting()

	container, err := InitializeContainer(testConfig(t))
	require.NoError(t, err)
	container.Start()

	body := strings.NewReader(`{"start":"Gate 1","end":"Santosh Library","narrate":true}`)
	req := httptest.NewRequest("POST", "/api/v1/navigate", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	container.Router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"path":["gate 1","cafeteria","btech block","santosh library"]`)

	// Shutdown drains the dispatched render, so the artifact is durable
	// afterwards.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, container.Shutdown(ctx))

	artifact, ok := container.Artifacts.Latest()
	require.True(t, ok)
	assert.Equal(t, "svg", artifact.Format)

	rec = httptest.NewRecorder()
	container.Router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/map", nil))
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestInitializeContainer_RenderOff(t *testing.T) {
	observability.ResetForTesting()

	cfg := testConfig(t)
	cfg.Render.Backend = "off"

	container, err := InitializeContainer(cfg)
	require.NoError(t, err)

	assert.Nil(t, container.Renderer)
	assert.Nil(t, container.Artifacts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, container.Shutdown(ctx))
}

func TestInitializeContainer_VoiceOffKeepsNarrationFeed(t *testing.T) {
	observability.ResetForTesting()

	cfg := testConfig(t)
	cfg.Voice.Backend = "off"

	container, err := InitializeContainer(cfg)
	require.NoError(t, err)

	// The websocket feed still receives narration even with no voice engine.
	assert.NotNil(t, container.VoiceSink)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, container.Shutdown(ctx))
}

func TestInitializeContainer_MissingVoiceBinary(t *testing.T) {
	observability.ResetForTesting()

	cfg := testConfig(t)
	cfg.Voice.Backend = "command"
	cfg.Voice.Command = "no-such-tts-engine"

	_, err := InitializeContainer(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice command not found")
}

func TestInitializeContainer_CampusFromFile(t *testing.T) {
	observability.ResetForTesting()

	path := filepath.Join(t.TempDir(), "campus.yaml")
	yaml := `name: Test Yard
locations:
  - key: north gate
    latitude: 30.2730
    longitude: 78.9990
    neighbors: [south gate]
  - key: south gate
    latitude: 30.2740
    longitude: 79.0000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg := testConfig(t)
	cfg.CampusFile = path
	cfg.WatchCampusFile = true

	container, err := InitializeContainer(cfg)
	require.NoError(t, err)

	assert.Equal(t, "Test Yard", container.Campus.Name())
	assert.Equal(t, 2, container.Campus.LocationCount())
	require.NotNil(t, container.Watcher)

	container.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, container.Shutdown(ctx))
}
