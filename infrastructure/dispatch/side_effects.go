// Package dispatch runs route side effects off the request path. Voice and
// map rendering are best effort: a failing collaborator is counted, logged
// and swallowed, never surfaced to the caller.
package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"campusnav-backend/application/ports"
	"campusnav-backend/domain/core/aggregates"
	"campusnav-backend/domain/services"
	"campusnav-backend/pkg/observability"
)

const (
	collaboratorVoice  = "voice"
	collaboratorRender = "render"

	statusOK      = "ok"
	statusError   = "error"
	statusDropped = "dropped"
)

// BreakerConfig holds circuit breaker settings for one collaborator
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// ReadyToTrip evaluates these once enough requests have been seen
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the default circuit breaker settings for a
// collaborator
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Config holds the dispatcher timeouts
type Config struct {
	SpeakTimeout  time.Duration
	RenderTimeout time.Duration
}

// DefaultConfig returns the default dispatcher timeouts
func DefaultConfig() Config {
	return Config{
		SpeakTimeout:  30 * time.Second,
		RenderTimeout: 10 * time.Second,
	}
}

// Dispatcher fans computed routes out to the voice sink and the map renderer
// on their own goroutines. Each collaborator sits behind its own circuit
// breaker so a wedged TTS engine cannot pile up goroutines while the render
// side keeps working.
type Dispatcher struct {
	campus   *aggregates.Campus
	voice    ports.VoiceSink
	renderer ports.MapRenderer
	store    ports.ArtifactStore

	voiceBreaker  *gobreaker.CircuitBreaker
	renderBreaker *gobreaker.CircuitBreaker

	config  Config
	metrics *observability.Collector
	logger  *zap.Logger
	tracer  trace.Tracer

	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewDispatcher creates a side-effect dispatcher. A nil voice sink disables
// the voice side, a nil renderer disables the render side.
func NewDispatcher(
	campus *aggregates.Campus,
	voice ports.VoiceSink,
	renderer ports.MapRenderer,
	store ports.ArtifactStore,
	config Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Dispatcher {
	if config.SpeakTimeout <= 0 {
		config.SpeakTimeout = DefaultConfig().SpeakTimeout
	}
	if config.RenderTimeout <= 0 {
		config.RenderTimeout = DefaultConfig().RenderTimeout
	}

	d := &Dispatcher{
		campus:   campus,
		voice:    voice,
		renderer: renderer,
		store:    store,
		config:   config,
		metrics:  metrics,
		logger:   logger,
		tracer:   otel.Tracer("campusnav/dispatch"),
	}

	d.voiceBreaker = newBreaker(DefaultBreakerConfig(collaboratorVoice), logger)
	d.renderBreaker = newBreaker(DefaultBreakerConfig(collaboratorRender), logger)

	return d
}

// Dispatch hands the route to the collaborators and returns immediately.
// The work runs on detached contexts so finishing the HTTP request does not
// cancel it.
func (d *Dispatcher) Dispatch(ctx context.Context, route services.Route, narrate bool) {
	if d.closed.Load() {
		d.logger.Debug("Dispatcher closed, dropping side effects")
		return
	}

	if len(route.Path) == 0 {
		return
	}

	if d.renderer != nil {
		d.wg.Add(1)
		go d.renderRoute(route)
	}

	if narrate && d.voice != nil {
		d.wg.Add(1)
		go d.speakRoute(route)
	}
}

// Shutdown stops accepting new work and waits for in-flight side effects
// until ctx expires
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.closed.Store(true)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Side-effect dispatcher drained")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Side-effect dispatcher shutdown timed out with work in flight")
		return ctx.Err()
	}
}

func (d *Dispatcher) renderRoute(route services.Route) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), d.config.RenderTimeout)
	defer cancel()

	ctx, span := d.tracer.Start(ctx, "sideeffect.render",
		trace.WithAttributes(
			attribute.String("render.format", d.renderer.Format()),
			attribute.Int("route.hops", len(route.Path)-1),
		))
	defer span.End()

	startTime := time.Now()

	result, err := d.renderBreaker.Execute(func() (any, error) {
		return d.renderer.Render(ctx, ports.RouteMap{Campus: d.campus, Route: route})
	})

	duration := time.Since(startTime)

	if err != nil {
		d.recordFailure(collaboratorRender, err)
		span.RecordError(err)
		d.logger.Warn("Map render failed",
			zap.Error(err),
			zap.Duration("duration", duration))
		return
	}

	artifact := result.(*ports.Artifact)
	if d.store != nil {
		d.store.Put(artifact)
	}

	d.metrics.SideEffects.WithLabelValues(collaboratorRender, statusOK).Inc()
	d.logger.Debug("Map rendered",
		zap.String("artifact", artifact.Path),
		zap.String("format", artifact.Format),
		zap.Duration("duration", duration))
}

func (d *Dispatcher) speakRoute(route services.Route) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), d.config.SpeakTimeout)
	defer cancel()

	ctx, span := d.tracer.Start(ctx, "sideeffect.speak",
		trace.WithAttributes(
			attribute.Int("route.instructions", len(route.Instructions)),
		))
	defer span.End()

	startTime := time.Now()

	_, err := d.voiceBreaker.Execute(func() (any, error) {
		return nil, d.voice.Speak(ctx, route.Instructions)
	})

	duration := time.Since(startTime)

	if err != nil {
		d.recordFailure(collaboratorVoice, err)
		span.RecordError(err)
		d.logger.Warn("Voice narration failed",
			zap.Error(err),
			zap.Duration("duration", duration))
		return
	}

	d.metrics.SideEffects.WithLabelValues(collaboratorVoice, statusOK).Inc()
	d.logger.Debug("Route narrated",
		zap.Int("instructions", len(route.Instructions)),
		zap.Duration("duration", duration))
}

// recordFailure separates breaker rejections from collaborator errors so the
// dashboards can tell a tripped breaker from a failing engine
func (d *Dispatcher) recordFailure(collaborator string, err error) {
	status := statusError
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		status = statusDropped
	}
	d.metrics.SideEffects.WithLabelValues(collaborator, status).Inc()
	d.metrics.SideEffectFailures.WithLabelValues(collaborator).Inc()
}

func newBreaker(config BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Only trip once there are enough requests to judge
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}
