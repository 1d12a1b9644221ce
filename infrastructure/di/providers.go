package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"campusnav-backend/application/ports"
	appservices "campusnav-backend/application/services"
	"campusnav-backend/domain/core/aggregates"
	domainservices "campusnav-backend/domain/services"
	"campusnav-backend/infrastructure/config"
	"campusnav-backend/infrastructure/dispatch"
	"campusnav-backend/infrastructure/maprender"
	"campusnav-backend/infrastructure/voice"
	"campusnav-backend/interfaces/http/rest"
	"campusnav-backend/interfaces/websocket"
	"campusnav-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Collector
	Tracing    *observability.TracerProvider
	Campus     *aggregates.Campus
	Watcher    *config.CampusWatcher
	Finder     ports.PathFinder
	Narrator   ports.RouteNarrator
	Hub        *websocket.Hub
	Narration  *websocket.Handler
	VoiceSink  ports.VoiceSink
	Renderer   ports.MapRenderer
	Artifacts  ports.ArtifactStore
	Dispatcher *dispatch.Dispatcher
	Navigation *appservices.NavigationService
	Router     http.Handler
}

// ProvideLogger creates a structured logger appropriate for the environment.
// Production uses JSON format, development uses console format.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zapConfig.Level = level

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// ProvideCollector creates the metrics collector. The collector always
// exists; EnableMetrics only controls whether the scrape endpoint is
// mounted.
func ProvideCollector() *observability.Collector {
	return observability.NewCollector("campusnav")
}

// ProvideTracerProvider initializes distributed tracing when enabled.
// Returns nil when tracing is off.
func ProvideTracerProvider(cfg *config.Config, logger *zap.Logger) (*observability.TracerProvider, error) {
	if !cfg.EnableTracing {
		return nil, nil
	}

	tracing, err := observability.InitTracing("campusnav", cfg.Environment, cfg.TracingEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	logger.Info("Tracing initialized", zap.String("endpoint", cfg.TracingEndpoint))
	return tracing, nil
}

// ProvideCampus loads the campus graph from the configured file, or the
// embedded default campus when no file is set.
func ProvideCampus(cfg *config.Config, logger *zap.Logger) (*aggregates.Campus, error) {
	campus, err := config.LoadCampus(cfg.CampusFile)
	if err != nil {
		return nil, err
	}

	logger.Info("Campus loaded",
		zap.String("name", campus.Name()),
		zap.String("source", campusSource(cfg)),
		zap.Int("locations", campus.LocationCount()),
		zap.Int("edges", campus.EdgeCount()),
	)
	return campus, nil
}

func campusSource(cfg *config.Config) string {
	if cfg.CampusFile == "" {
		return "embedded"
	}
	return cfg.CampusFile
}

// ProvideCampusWatcher watches the campus file for edits. Returns nil when
// the campus is embedded or watching is disabled.
func ProvideCampusWatcher(cfg *config.Config, campus *aggregates.Campus, logger *zap.Logger) (*config.CampusWatcher, error) {
	if cfg.CampusFile == "" || !cfg.WatchCampusFile {
		return nil, nil
	}
	return config.NewCampusWatcher(cfg.CampusFile, campus, logger)
}

// ProvidePathFinder creates the shortest-path search, wrapped with tracing
// when tracing is on.
func ProvidePathFinder(tracing *observability.TracerProvider) ports.PathFinder {
	finder := domainservices.NewBFSPathFinder()
	if tracing == nil {
		return finder
	}
	return observability.TracePathFinder(finder, otel.Tracer("campusnav/pathfinder"))
}

// ProvideNarrator creates the route narrator with the configured pacing.
func ProvideNarrator(cfg *config.Config) ports.RouteNarrator {
	return domainservices.NewRouteNarrator(
		cfg.Route.HopDistanceMeters,
		cfg.Route.WalkingSpeedMetersPerMinute,
	)
}

// ProvideHub creates the narration broadcast hub. The caller owns its
// lifecycle and must start Run on a goroutine.
func ProvideHub(collector *observability.Collector, logger *zap.Logger) *websocket.Hub {
	return websocket.NewHub(collector, logger)
}

// ProvideNarrationHandler creates the websocket endpoint for the narration
// feed.
func ProvideNarrationHandler(hub *websocket.Hub, logger *zap.Logger) *websocket.Handler {
	return websocket.NewHandler(hub, nil, logger)
}

// ProvideVoiceSink assembles the narration sink. Spoken narration goes to
// the configured engine and every utterance is mirrored to the websocket
// feed; with the voice backend off the feed is the only sink.
func ProvideVoiceSink(cfg *config.Config, hub *websocket.Hub, logger *zap.Logger) (ports.VoiceSink, error) {
	var engine ports.VoiceSink
	switch cfg.Voice.Backend {
	case "command":
		sink, err := voice.NewCommandSink(voice.CommandSinkConfig{
			Command:        cfg.Voice.Command,
			WordsPerMinute: cfg.Voice.WordsPerMinute,
			QueueSize:      cfg.Voice.QueueSize,
			SpeakTimeout:   time.Duration(cfg.Voice.SpeakTimeoutSeconds) * time.Second,
		}, logger)
		if err != nil {
			return nil, err
		}
		engine = sink
	case "log":
		engine = voice.NewLogSink(logger)
	}

	feed := websocket.NewHubSink(hub)
	if engine == nil {
		return feed, nil
	}
	return voice.NewMultiSink(engine, feed), nil
}

// ProvideRenderer creates the map renderer, or nil when rendering is off.
func ProvideRenderer(cfg *config.Config, logger *zap.Logger) (ports.MapRenderer, error) {
	if cfg.Render.Backend == "off" {
		return nil, nil
	}
	return maprender.NewRenderer(cfg.Render.Backend, cfg.Render.OutputDir, cfg.Render.Zoom, logger)
}

// ProvideArtifactStore creates the store for rendered maps, or nil when
// rendering is off.
func ProvideArtifactStore(cfg *config.Config) ports.ArtifactStore {
	if cfg.Render.Backend == "off" {
		return nil
	}
	return maprender.NewLatestStore()
}

// ProvideDispatcher creates the side-effect dispatcher.
func ProvideDispatcher(
	campus *aggregates.Campus,
	voiceSink ports.VoiceSink,
	renderer ports.MapRenderer,
	store ports.ArtifactStore,
	cfg *config.Config,
	collector *observability.Collector,
	logger *zap.Logger,
) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(campus, voiceSink, renderer, store, dispatch.Config{
		SpeakTimeout:  time.Duration(cfg.Voice.SpeakTimeoutSeconds) * time.Second,
		RenderTimeout: dispatch.DefaultConfig().RenderTimeout,
	}, collector, logger)
}

// ProvideNavigationService creates the navigation application service.
func ProvideNavigationService(
	campus *aggregates.Campus,
	finder ports.PathFinder,
	narrator ports.RouteNarrator,
	dispatcher *dispatch.Dispatcher,
	collector *observability.Collector,
	logger *zap.Logger,
) *appservices.NavigationService {
	return appservices.NewNavigationService(campus, finder, narrator, dispatcher, collector, logger)
}

// ProvideRouter assembles the HTTP surface.
func ProvideRouter(
	service *appservices.NavigationService,
	artifacts ports.ArtifactStore,
	narration *websocket.Handler,
	collector *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	router := rest.NewRouter(service, artifacts, narration, collector, rest.Options{
		EnableCORS:    cfg.EnableCORS,
		EnableMetrics: cfg.EnableMetrics,
	}, logger)
	return router.Setup()
}

// Start brings up the background pieces of the container: the narration
// hub and, when configured, the campus file watcher.
func (c *Container) Start() {
	go c.Hub.Run()
	if c.Watcher != nil {
		c.Watcher.Start()
	}
}

// Shutdown stops the container components in reverse dependency order.
// Collaborator errors are collected rather than aborting the chain; the
// returned error joins everything that went wrong.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.Watcher != nil {
		c.Watcher.Stop()
	}

	// Drain in-flight side effects before tearing their sinks down.
	if err := c.Dispatcher.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("dispatcher shutdown: %w", err))
	}
	if c.VoiceSink != nil {
		if err := c.VoiceSink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("voice sink close: %w", err))
		}
	}

	c.Hub.Stop()

	if c.Tracing != nil {
		if err := c.Tracing.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}
