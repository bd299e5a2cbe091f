package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/kingrain94/tenancy-api/internal/config"
	"github.com/kingrain94/tenancy-api/internal/domain"
)

const eventTypeAttribute = "event_type"

type ReceivedEvent struct {
	Event         domain.TenantEvent
	ReceiptHandle *string
}

//go:generate mockery --name SQSClient --output ../../mocks
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SQSService moves tenant lifecycle events through a single queue.
type SQSService struct {
	client   SQSClient
	queueURL string
}

func NewSQSService(client SQSClient, config *config.SQSConfig) *SQSService {
	return &SQSService{
		client:   client,
		queueURL: config.EventsQueueURL,
	}
}

func (s *SQSService) QueueURL() string {
	return s.queueURL
}

// Publish implements service.EventPublisher.
func (s *SQSService) Publish(ctx context.Context, event domain.TenantEvent) error {
	msgBody, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	input := &sqs.SendMessageInput{
		MessageBody: aws.String(string(msgBody)),
		QueueUrl:    aws.String(s.queueURL),
		MessageAttributes: map[string]types.MessageAttributeValue{
			eventTypeAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Type)),
			},
		},
	}

	if _, err := s.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// ReceiveEvents long-polls the queue. Messages that do not decode are
// returned with a zero Event so the caller can still delete them.
func (s *SQSService) ReceiveEvents(ctx context.Context, maxMessages int32, waitTimeSeconds int32) ([]ReceivedEvent, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitTimeSeconds,
	}

	output, err := s.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	events := make([]ReceivedEvent, 0, len(output.Messages))
	for _, msg := range output.Messages {
		var event domain.TenantEvent
		if msg.Body != nil {
			_ = json.Unmarshal([]byte(*msg.Body), &event)
		}
		events = append(events, ReceivedEvent{
			Event:         event,
			ReceiptHandle: msg.ReceiptHandle,
		})
	}

	return events, nil
}

func (s *SQSService) DeleteMessage(ctx context.Context, receiptHandle *string) error {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(s.queueURL),
		ReceiptHandle: receiptHandle,
	}

	if _, err := s.client.DeleteMessage(ctx, input); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
