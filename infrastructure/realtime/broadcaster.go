package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/application/queries"
)

// Message types pushed to clients
const (
	MessageNotification        = "notification"
	MessageNotificationCleared = "notification.cleared"
	MessageViewUpdated         = "view.updated"
)

// PostAPI is the subset of the API Gateway management client used to push
type PostAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// Connections lists and prunes WebSocket connections
type Connections interface {
	List(ctx context.Context) ([]Connection, error)
	Unregister(ctx context.Context, connectionID string) error
}

// Message represents the message format sent to clients
type Message struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Broadcaster sends messages to every registered connection
type Broadcaster struct {
	connections Connections
	client      PostAPI
	timeout     time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewBroadcaster creates a broadcaster
func NewBroadcaster(connections Connections, client PostAPI, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		connections: connections,
		client:      client,
		timeout:     5 * time.Second,
		logger:      logger,
		now:         time.Now,
	}
}

// Broadcast sends one message to all connections. Gone connections are
// removed from the registry and do not count as failures.
func (b *Broadcaster) Broadcast(ctx context.Context, messageType string, data interface{}) error {
	payload, err := json.Marshal(Message{
		Type:      messageType,
		Timestamp: b.now().Unix(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	connections, err := b.connections.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connections: %w", err)
	}

	successCount, failCount := 0, 0
	for _, conn := range connections {
		if err := b.send(ctx, conn.ConnectionID, payload); err != nil {
			b.logger.Warn("Failed to send to connection",
				zap.String("connectionID", conn.ConnectionID),
				zap.Error(err),
			)
			failCount++
			continue
		}
		successCount++
	}

	b.logger.Debug("Broadcast complete",
		zap.String("type", messageType),
		zap.Int("successful", successCount),
		zap.Int("failed", failCount),
	)

	if failCount > 0 && successCount == 0 {
		return fmt.Errorf("all message sends failed")
	}
	return nil
}

func (b *Broadcaster) send(ctx context.Context, connectionID string, payload []byte) error {
	_, err := b.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(connectionID),
		Data:         payload,
	})
	if err == nil {
		return nil
	}

	var goneErr *apigwtypes.GoneException
	if errors.As(err, &goneErr) {
		if err := b.connections.Unregister(ctx, connectionID); err != nil {
			b.logger.Warn("Failed to remove stale connection",
				zap.String("connectionID", connectionID),
				zap.Error(err),
			)
		}
		return nil
	}
	return err
}

// Show implements notify.Sink
func (b *Broadcaster) Show(n ports.Notification) {
	b.push(MessageNotification, n)
}

// Dismiss implements notify.Sink
func (b *Broadcaster) Dismiss() {
	b.push(MessageNotificationCleared, nil)
}

// ViewObserver returns an engine observer that pushes each rendered
// snapshot to the connected clients
func (b *Broadcaster) ViewObserver(engine *queries.MemoQueryEngine) queries.Observer {
	return func(snap queries.Snapshot) {
		b.push(MessageViewUpdated, queries.RenderSnapshot(engine, snap, b.now()))
	}
}

func (b *Broadcaster) push(messageType string, data interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.Broadcast(ctx, messageType, data); err != nil {
		b.logger.Warn("Realtime push failed",
			zap.String("type", messageType),
			zap.Error(err),
		)
	}
}
