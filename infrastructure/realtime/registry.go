// Package realtime pushes notifications and view updates to WebSocket
// clients connected through API Gateway.
package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	connectionPrefix = "CONNECTION#"
	metadataSK       = "METADATA"
	connectionTTL    = 24 * time.Hour
)

// RegistryAPI is the subset of the DynamoDB client used for connections
type RegistryAPI interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Connection represents a WebSocket connection record
type Connection struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	ConnectionID string `dynamodbav:"ConnectionID"`
	Endpoint     string `dynamodbav:"Endpoint"`
	ConnectedAt  string `dynamodbav:"ConnectedAt"`
	TTL          int64  `dynamodbav:"TTL"`
}

// ConnectionRegistry stores live connection ids in DynamoDB
type ConnectionRegistry struct {
	client    RegistryAPI
	tableName string
	logger    *zap.Logger
	now       func() time.Time
}

// NewConnectionRegistry creates a registry over tableName
func NewConnectionRegistry(client RegistryAPI, tableName string, logger *zap.Logger) *ConnectionRegistry {
	return &ConnectionRegistry{
		client:    client,
		tableName: tableName,
		logger:    logger,
		now:       time.Now,
	}
}

// Register saves a connection; stale records expire through the table TTL
func (r *ConnectionRegistry) Register(ctx context.Context, connectionID, endpoint string) error {
	now := r.now()
	item, err := attributevalue.MarshalMap(Connection{
		PK:           connectionPrefix + connectionID,
		SK:           metadataSK,
		ConnectionID: connectionID,
		Endpoint:     endpoint,
		ConnectedAt:  now.UTC().Format(time.RFC3339),
		TTL:          now.Add(connectionTTL).Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to store connection: %w", err)
	}

	r.logger.Info("Stored connection", zap.String("connectionID", connectionID))
	return nil
}

// Unregister removes a connection record
func (r *ConnectionRegistry) Unregister(ctx context.Context, connectionID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: connectionPrefix + connectionID},
			"SK": &types.AttributeValueMemberS{Value: metadataSK},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to remove connection: %w", err)
	}

	r.logger.Info("Removed connection", zap.String("connectionID", connectionID))
	return nil
}

// List returns every registered connection
func (r *ConnectionRegistry) List(ctx context.Context) ([]Connection, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("SK").Equal(expression.Value(metadataSK))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var connections []Connection
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connections: %w", err)
		}

		var batch []Connection
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
		}
		connections = append(connections, batch...)
	}

	return connections, nil
}
