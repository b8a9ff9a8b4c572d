//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"memoboard/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideErrorHandler,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideAPIGatewayClient,
	ProvideStoreBackend,
	ProvideMemoStore,
	ProvideCategorySource,
	ProvideCategoryCatalog,
	ProvideQueryEngine,
	ProvideClock,
	ProvideNotificationCenter,
	ProvideNotifier,
	ProvideConfirmer,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	ProvideImageIntake,
	ProvideConnectionRegistry,
	ProvideBroadcaster,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config, frontend Frontend) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
