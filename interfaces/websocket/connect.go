// Package websocket handles API Gateway WebSocket lifecycle routes.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Route keys sent by API Gateway
const (
	RouteConnect    = "$connect"
	RouteDisconnect = "$disconnect"
	RouteDefault    = "$default"
)

// Registry records live connections
type Registry interface {
	Register(ctx context.Context, connectionID, endpoint string) error
	Unregister(ctx context.Context, connectionID string) error
}

// ConnectionHandler registers and removes WebSocket connections
type ConnectionHandler struct {
	registry Registry
	logger   *zap.Logger
	now      func() time.Time
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(registry Registry, logger *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle dispatches on the request's route key
func (h *ConnectionHandler) Handle(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	rc := request.RequestContext
	logger := h.logger.With(
		zap.String("connectionID", rc.ConnectionID),
		zap.String("route", rc.RouteKey),
	)

	switch rc.RouteKey {
	case RouteConnect:
		endpoint := fmt.Sprintf("https://%s/%s", rc.DomainName, rc.Stage)
		if err := h.registry.Register(ctx, rc.ConnectionID, endpoint); err != nil {
			logger.Error("Failed to register connection", zap.Error(err))
			return respond(http.StatusInternalServerError, map[string]string{"error": "internal server error"}), nil
		}
		logger.Info("WebSocket connection established")
		return respond(http.StatusOK, map[string]interface{}{
			"type":         "connection_established",
			"connectionId": rc.ConnectionID,
			"timestamp":    h.now().UTC().Format(time.RFC3339),
		}), nil

	case RouteDisconnect:
		if err := h.registry.Unregister(ctx, rc.ConnectionID); err != nil {
			logger.Warn("Failed to unregister connection", zap.Error(err))
		}
		logger.Info("WebSocket connection closed")
		return respond(http.StatusOK, nil), nil

	default:
		// Clients only listen; anything they send is ignored.
		logger.Debug("Ignoring client message")
		return respond(http.StatusOK, nil), nil
	}
}

func respond(status int, body interface{}) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{StatusCode: status}
	if body != nil {
		if data, err := json.Marshal(body); err == nil {
			resp.Body = string(data)
		}
	}
	return resp
}
