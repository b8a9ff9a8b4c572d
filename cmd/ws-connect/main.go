// Package main implements the WebSocket lifecycle Lambda handler.
// It records $connect and removes $disconnect connections so the API can
// push notifications and view updates to them.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"memoboard/infrastructure/config"
	"memoboard/infrastructure/di"
	"memoboard/interfaces/websocket"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	awsCfg, err := di.ProvideAWSConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to load AWS config", zap.Error(err))
	}

	registry := di.ProvideConnectionRegistry(di.ProvideDynamoDBClient(awsCfg), cfg, logger)
	handler := websocket.NewConnectionHandler(registry, logger)

	logger.Info("WebSocket connection handler initialized",
		zap.String("table", cfg.ConnectionsTable),
	)
	lambda.Start(handler.Handle)
}
