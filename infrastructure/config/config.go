package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"campusnav-backend/pkg/validation"
)

// RouteConfig holds pacing constants for route estimates
type RouteConfig struct {
	// HopDistanceMeters is the fixed distance assigned to one walkway hop
	HopDistanceMeters float64 `validate:"gt=0"`
	// WalkingSpeedMetersPerMinute converts distance into a time estimate
	WalkingSpeedMetersPerMinute float64 `validate:"gt=0"`
}

// VoiceConfig holds the spoken-narration settings
type VoiceConfig struct {
	// Backend selects the sink: command runs a TTS binary, log writes to
	// the process log, off disables server-side voice entirely
	Backend string `validate:"oneof=command log off"`
	// Command is the TTS binary used by the command backend
	Command string
	// WordsPerMinute is the speaking rate passed to the TTS binary
	WordsPerMinute int `validate:"gt=0"`
	// QueueSize bounds the pending-utterance queue
	QueueSize int `validate:"gt=0"`
	// SpeakTimeoutSeconds caps one utterance before the sink gives up
	SpeakTimeoutSeconds int `validate:"gt=0"`
}

// RenderConfig holds the map-render settings
type RenderConfig struct {
	// Backend selects the renderer: leaflet emits an HTML tile map, svg a
	// static image, dot a Graphviz document, off disables rendering
	Backend string `validate:"oneof=leaflet svg dot off"`
	// OutputDir is where rendered artifacts are written
	OutputDir string `validate:"required"`
	// Zoom is the initial zoom level for tile-map backends
	Zoom int `validate:"gt=0"`
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `validate:"required"`
	Environment   string `validate:"oneof=development staging production"`

	// Campus map source; empty means the embedded default campus
	CampusFile      string
	WatchCampusFile bool

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool

	// Tracing
	TracingEndpoint string

	Route  RouteConfig
	Voice  VoiceConfig
	Render RenderConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		CampusFile:      getEnv("CAMPUS_FILE", ""),
		WatchCampusFile: getEnvBool("WATCH_CAMPUS_FILE", true),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),

		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),

		Route: RouteConfig{
			HopDistanceMeters:           getEnvFloat("HOP_DISTANCE_METERS", 80),
			WalkingSpeedMetersPerMinute: getEnvFloat("WALKING_SPEED_METERS_PER_MINUTE", 80),
		},

		Voice: VoiceConfig{
			Backend:             getEnv("VOICE_BACKEND", "log"),
			Command:             getEnv("VOICE_COMMAND", "espeak"),
			WordsPerMinute:      getEnvInt("VOICE_WORDS_PER_MINUTE", 160),
			QueueSize:           getEnvInt("VOICE_QUEUE_SIZE", 16),
			SpeakTimeoutSeconds: getEnvInt("VOICE_SPEAK_TIMEOUT_SECONDS", 30),
		},

		Render: RenderConfig{
			Backend:   getEnv("RENDER_BACKEND", "leaflet"),
			OutputDir: getEnv("RENDER_OUTPUT_DIR", filepath.Join(os.TempDir(), "campusnav-maps")),
			Zoom:      getEnvInt("RENDER_ZOOM", 18),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.EnableTracing && c.TracingEndpoint == "" {
		return fmt.Errorf("TRACING_ENDPOINT is required when tracing is enabled")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
