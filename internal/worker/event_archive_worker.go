package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/service/queue"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

//go:generate mockery --name EventSource --output ../mocks
type EventSource interface {
	ReceiveEvents(ctx context.Context, maxMessages int32, waitTimeSeconds int32) ([]queue.ReceivedEvent, error)
	DeleteMessage(ctx context.Context, receiptHandle *string) error
}

//go:generate mockery --name ObjectStore --output ../mocks
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// EventArchiveWorker drains the tenant event queue into S3, one object per
// event. A message is deleted only after its object is stored.
type EventArchiveWorker struct {
	source       EventSource
	store        ObjectStore
	bucket       string
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewEventArchiveWorker(
	source EventSource,
	store ObjectStore,
	bucket string,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *EventArchiveWorker {
	return &EventArchiveWorker{
		source:       source,
		store:        store,
		bucket:       bucket,
		logger:       logger,
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10,
		waitTime:     20,
		shutdownChan: make(chan struct{}),
	}
}

func (w *EventArchiveWorker) Start() {
	w.logger.Info("Starting event archive workers...")

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *EventArchiveWorker) Stop() {
	w.logger.Info("Stopping event archive workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All event archive workers stopped")
}

func (w *EventArchiveWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Event archive worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Infof("Event archive worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if _, err := w.ProcessBatch(context.Background()); err != nil {
				w.logger.Errorf("Event archive worker %d failed to process messages: %v", workerID, err)
			}
		}
	}
}

// ProcessBatch archives one batch of messages and returns how many were
// stored.
func (w *EventArchiveWorker) ProcessBatch(ctx context.Context) (int, error) {
	events, err := w.source.ReceiveEvents(ctx, w.maxMessages, w.waitTime)
	if err != nil {
		return 0, fmt.Errorf("failed to receive events: %w", err)
	}

	archived := 0
	for _, msg := range events {
		if msg.Event.Type == "" {
			// Nothing to archive and it would never decode on redelivery either
			w.logger.Warnf("Dropping undecodable tenant event message")
			w.deleteMessage(ctx, msg.ReceiptHandle)
			continue
		}

		if err := w.archive(ctx, msg.Event); err != nil {
			w.logger.Error("Failed to archive tenant event", err)
			continue
		}
		archived++
		w.deleteMessage(ctx, msg.ReceiptHandle)
	}

	return archived, nil
}

func (w *EventArchiveWorker) deleteMessage(ctx context.Context, receiptHandle *string) {
	if err := w.source.DeleteMessage(ctx, receiptHandle); err != nil {
		w.logger.Errorf("Failed to delete message: %v", err)
	}
}

func (w *EventArchiveWorker) archive(ctx context.Context, event domain.TenantEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := objectKey(event)
	_, err = w.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"event-type":  string(event.Type),
			"tenant-id":   event.TenantID,
			"occurred-at": event.OccurredAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload event to S3: %w", err)
	}

	w.logger.Infof("Archived %s event to s3://%s/%s", event.Type, w.bucket, key)
	return nil
}

// objectKey partitions events by day and type. The random suffix keeps
// redelivered duplicates from overwriting each other.
func objectKey(event domain.TenantEvent) string {
	at := event.OccurredAt.UTC()
	if at.IsZero() {
		at = time.Now().UTC()
	}
	tenant := event.TenantID
	if tenant == "" {
		tenant = "none"
	}
	return fmt.Sprintf("tenant-events/%s/%s/%s_%s_%s.json",
		at.Format("2006/01/02"),
		event.Type,
		at.Format("20060102T150405Z"),
		tenant,
		uuid.NewString())
}
