package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/tenancy-api/internal/config"
	"github.com/kingrain94/tenancy-api/internal/service/queue"
	"github.com/kingrain94/tenancy-api/internal/worker"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))
	defer appLogger.Sync()

	ctx := context.Background()

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	// Initialize S3
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to create S3 client", err)
	}

	archiveWorker := worker.NewEventArchiveWorker(
		sqsService,
		s3Client,
		s3Config.BucketName,
		appLogger,
		2,             // worker count
		5*time.Second, // poll interval
	)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	appLogger.Infof("Archiving tenant events from %s to s3://%s", sqsService.QueueURL(), s3Config.BucketName)
	archiveWorker.Start()

	// Wait for shutdown signal
	<-sigChan
	appLogger.Info("Shutting down event archive worker...")

	archiveWorker.Stop()
	appLogger.Info("Event archive worker stopped")
}
