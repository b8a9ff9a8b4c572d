package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsapigw "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"

	"memoboard/application/commands"
	"memoboard/application/commands/bus"
	commands_handlers "memoboard/application/commands/handlers"
	"memoboard/application/ports"
	"memoboard/application/queries"
	querybus "memoboard/application/queries/bus"
	queries_handlers "memoboard/application/queries/handlers"
	"memoboard/application/services"
	domainconfig "memoboard/domain/config"
	"memoboard/domain/core/entities"
	"memoboard/infrastructure/config"
	"memoboard/infrastructure/messaging/eventbridge"
	"memoboard/infrastructure/notify"
	"memoboard/infrastructure/persistence/dynamodb"
	"memoboard/infrastructure/persistence/memory"
	"memoboard/infrastructure/persistence/resilience"
	"memoboard/infrastructure/persistence/rest"
	"memoboard/infrastructure/realtime"
	"memoboard/pkg/errors"
	"memoboard/pkg/observability"
)

// Frontend carries what the surface driving the engine supplies: how to ask
// for confirmation and where to print notifications. Both may be nil.
type Frontend struct {
	Confirmer ports.Confirmer
	Output    io.Writer
}

// StoreBackend is the memo store selected by STORE_BACKEND
type StoreBackend struct {
	Store      ports.MemoStore
	Categories ports.CategorySource
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zcfg.Level = level
	}

	return zcfg.Build()
}

// ProvideDomainConfig derives the business rules from the configuration
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	dc := cfg.DomainConfig()
	if err := dc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid domain configuration: %w", err)
	}
	return dc, nil
}

// ProvideErrorHandler creates the HTTP error renderer
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *errors.ErrorHandler {
	return errors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideAWSConfig creates AWS configuration. AWS SDK calls are traced when
// tracing is enabled.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideAPIGatewayClient creates a management API client bound to the
// WebSocket endpoint
func ProvideAPIGatewayClient(awsCfg aws.Config, cfg *config.Config) *awsapigw.Client {
	return awsapigw.NewFromConfig(awsCfg, func(o *awsapigw.Options) {
		if cfg.WebSocketEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.WebSocketEndpoint)
		}
	})
}

// ProvideStoreBackend creates the configured memo store, wrapped in a
// circuit breaker when enabled
func ProvideStoreBackend(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) (*StoreBackend, error) {
	var store interface {
		ports.MemoStore
		ports.CategorySource
	}

	switch cfg.StoreBackend {
	case config.StoreMemory:
		var opts []memory.Option
		if cfg.SeedSampleMemos {
			opts = append(opts, memory.WithMemos(memory.SampleMemos(time.Now())...))
		}
		store = memory.NewMemoStore(opts...)
	case config.StoreREST:
		var opts []rest.Option
		if cfg.EnableTracing {
			opts = append(opts, rest.WithTracing())
		}
		restStore, err := rest.NewMemoStore(cfg.StoreURL, logger, opts...)
		if err != nil {
			return nil, err
		}
		store = restStore
	case config.StoreDynamoDB:
		store = dynamodb.NewMemoStore(client, cfg.DynamoDBTable, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	logger.Info("Memo store selected", zap.String("backend", cfg.StoreBackend))

	if cfg.EnableCircuitBreaker {
		breaker := resilience.NewBreakerStore(store, store, resilience.DefaultBreakerConfig("memo-store"), logger)
		return &StoreBackend{Store: breaker, Categories: breaker}, nil
	}
	return &StoreBackend{Store: store, Categories: store}, nil
}

// ProvideMemoStore exposes the selected store
func ProvideMemoStore(backend *StoreBackend) ports.MemoStore {
	return backend.Store
}

// ProvideCategorySource exposes the selected store's catalog
func ProvideCategorySource(backend *StoreBackend) ports.CategorySource {
	return backend.Categories
}

// ProvideCategoryCatalog loads the static catalog
func ProvideCategoryCatalog(cfg *config.Config) (entities.CategoryCatalog, error) {
	return config.LoadCategoryCatalog(cfg.CategoryCatalogFile)
}

// ProvideQueryEngine creates the memo query engine. The static catalog is
// installed up front; a remote catalog arrives with the first load.
func ProvideQueryEngine(dc *domainconfig.DomainConfig, catalog entities.CategoryCatalog) *queries.MemoQueryEngine {
	engine := queries.NewMemoQueryEngine(dc)
	if dc.CategorySource == domainconfig.CategorySourceStatic {
		engine.SetCatalog(catalog)
	}
	return engine
}

// ProvideClock returns the wall clock
func ProvideClock() queries_handlers.Clock {
	return time.Now
}

// ProvideNotificationCenter creates the notification center
func ProvideNotificationCenter(dc *domainconfig.DomainConfig, frontend Frontend, logger *zap.Logger) *notify.Center {
	center := notify.NewCenter(dc.NotificationTTL, logger)
	if frontend.Output != nil {
		center.AddSink(notify.NewConsoleSink(frontend.Output))
	}
	return center
}

// ProvideNotifier exposes the notification center as a Notifier
func ProvideNotifier(center *notify.Center) ports.Notifier {
	return center
}

// ProvideConfirmer returns the frontend's confirmer
func ProvideConfirmer(frontend Frontend) ports.Confirmer {
	if frontend.Confirmer == nil {
		return ports.AlwaysConfirm
	}
	return frontend.Confirmer
}

// ProvideEventPublisher creates an event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return eventbridge.NoopPublisher{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewNoopMetrics()
	}
	namespace := fmt.Sprintf("Memoboard/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideTracer creates the tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("memoboard")
}

// ProvideImageIntake creates the image intake service
func ProvideImageIntake(notifier ports.Notifier, dc *domainconfig.DomainConfig, logger *zap.Logger) *services.ImageIntake {
	return services.NewImageIntake(notifier, dc, logger)
}

// ProvideConnectionRegistry creates the WebSocket connection registry
func ProvideConnectionRegistry(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) *realtime.ConnectionRegistry {
	return realtime.NewConnectionRegistry(client, cfg.ConnectionsTable, logger)
}

// ProvideBroadcaster pushes notifications and view updates to WebSocket
// clients. It is nil unless WEBSOCKET_ENDPOINT is set.
func ProvideBroadcaster(
	cfg *config.Config,
	registry *realtime.ConnectionRegistry,
	client *awsapigw.Client,
	engine *queries.MemoQueryEngine,
	center *notify.Center,
	logger *zap.Logger,
) *realtime.Broadcaster {
	if cfg.WebSocketEndpoint == "" {
		return nil
	}

	broadcaster := realtime.NewBroadcaster(registry, client, logger)
	center.AddSink(broadcaster)
	engine.Subscribe(broadcaster.ViewObserver(engine))
	return broadcaster
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	store ports.MemoStore,
	categories ports.CategorySource,
	engine *queries.MemoQueryEngine,
	notifier ports.Notifier,
	confirmer ports.Confirmer,
	publisher ports.EventPublisher,
	dc *domainconfig.DomainConfig,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	middlewares := []bus.Middleware{
		bus.LoggingMiddleware(&zapLoggerAdapter{logger}),
		bus.MetricsMiddleware(commandMetrics{metrics}),
	}
	if cfg.EnableTracing {
		middlewares = append(middlewares, bus.TracingMiddleware(tracer))
	}
	commandBus := bus.NewCommandBus(middlewares...)

	loadHandler := commands_handlers.NewLoadMemosHandler(store, categories, engine, notifier, dc, logger)
	createHandler := commands_handlers.NewCreateMemoHandler(store, engine, notifier, publisher, dc, logger)
	deleteHandler := commands_handlers.NewDeleteMemoHandler(store, engine, notifier, confirmer, publisher, logger)
	viewHandler := commands_handlers.NewSetViewHandler(engine, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.LoadMemosCommand{}, bus.Typed(loadHandler.Handle)},
		{commands.CreateMemoCommand{}, bus.Typed(createHandler.Handle)},
		{commands.DeleteMemoCommand{}, bus.Typed(deleteHandler.Handle)},
		{commands.SetViewCommand{}, bus.Typed(viewHandler.Handle)},
	}
	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	engine *queries.MemoQueryEngine,
	clock queries_handlers.Clock,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	withMetrics := querybus.NewMetricsMiddleware(queryMetrics{metrics})

	filterHandler := queries_handlers.NewFilterMemosHandler(engine, clock, logger)
	categoriesHandler := queries_handlers.NewListCategoriesHandler(engine)
	viewHandler := queries_handlers.NewGetViewHandler(engine, clock)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.FilterMemosQuery{}, querybus.Typed(filterHandler.Handle)},
		{queries.ListCategoriesQuery{}, querybus.Typed(categoriesHandler.Handle)},
		{queries.GetViewQuery{}, querybus.Typed(viewHandler.Handle)},
	}
	for _, r := range registrations {
		if err := queryBus.Register(r.query, withMetrics.Wrap(r.handler)); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// zapLoggerAdapter adapts zap.Logger to the bus.Logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, _ := fields[i].(string)
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}
	}
	return zapFields
}

// commandMetrics adapts observability.Metrics to bus.Metrics
type commandMetrics struct {
	metrics *observability.Metrics
}

func (m commandMetrics) StartTimer(metric, label string) bus.Timer {
	return m.metrics.StartTimer(metric, label)
}

func (m commandMetrics) Increment(metric, label string) {
	m.metrics.Increment(metric, label)
}

// queryMetrics adapts observability.Metrics to querybus.Metrics
type queryMetrics struct {
	metrics *observability.Metrics
}

func (m queryMetrics) StartTimer(metric, label string) querybus.Timer {
	return m.metrics.StartTimer(metric, label)
}

func (m queryMetrics) Increment(metric, label string) {
	m.metrics.Increment(metric, label)
}
