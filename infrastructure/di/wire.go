//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"campusnav-backend/application/ports"
	"campusnav-backend/infrastructure/config"
	"campusnav-backend/infrastructure/dispatch"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideCollector,
	ProvideTracerProvider,
	ProvideCampus,
	ProvideCampusWatcher,
	ProvidePathFinder,
	ProvideNarrator,
	ProvideHub,
	ProvideNarrationHandler,
	ProvideVoiceSink,
	ProvideRenderer,
	ProvideArtifactStore,
	ProvideDispatcher,
	ProvideNavigationService,
	ProvideRouter,
	wire.Bind(new(ports.SideEffectDispatcher), new(*dispatch.Dispatcher)),
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
