package di

import (
	"go.uber.org/zap"

	"memoboard/application/commands/bus"
	"memoboard/application/ports"
	"memoboard/application/queries"
	querybus "memoboard/application/queries/bus"
	"memoboard/application/services"
	domainconfig "memoboard/domain/config"
	"memoboard/infrastructure/config"
	"memoboard/infrastructure/notify"
	"memoboard/infrastructure/realtime"
	"memoboard/pkg/errors"
	"memoboard/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	DomainConfig  *domainconfig.DomainConfig
	Logger        *zap.Logger
	ErrorHandler  *errors.ErrorHandler
	Store         ports.MemoStore
	Engine        *queries.MemoQueryEngine
	Notifications *notify.Center
	ImageIntake   *services.ImageIntake
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	Metrics       *observability.Metrics
	Registry      *realtime.ConnectionRegistry
	Broadcaster   *realtime.Broadcaster
}

// Close releases the container's timers and flushes the logger
func (c *Container) Close() {
	if c.Notifications != nil {
		c.Notifications.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
