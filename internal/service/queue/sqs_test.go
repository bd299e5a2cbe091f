package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/tenancy-api/internal/config"
	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/mocks"
	"github.com/kingrain94/tenancy-api/internal/service/queue"
)

const queueURL = "https://sqs.local/000000000000/tenant-events"

func newService(client *mocks.SQSClient) *queue.SQSService {
	return queue.NewSQSService(client, &config.SQSConfig{EventsQueueURL: queueURL})
}

func TestPublish_SendsEventWithTypeAttribute(t *testing.T) {
	// Arrange
	client := new(mocks.SQSClient)
	event := domain.TenantEvent{Type: domain.EventTenantProvisioned, TenantID: "t1", Subdomain: "acme"}

	client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
		var decoded domain.TenantEvent
		if err := json.Unmarshal([]byte(aws.ToString(in.MessageBody)), &decoded); err != nil {
			return false
		}
		attr := in.MessageAttributes["event_type"]
		return aws.ToString(in.QueueUrl) == queueURL &&
			decoded.TenantID == "t1" &&
			aws.ToString(attr.StringValue) == string(domain.EventTenantProvisioned)
	})).Return(&sqs.SendMessageOutput{}, nil)

	// Act
	err := newService(client).Publish(context.Background(), event)

	// Assert
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestPublish_WrapsSendError(t *testing.T) {
	// Arrange
	client := new(mocks.SQSClient)
	sendErr := errors.New("throttled")
	client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, sendErr)

	// Act
	err := newService(client).Publish(context.Background(), domain.TenantEvent{Type: domain.EventTenantUpdated})

	// Assert
	assert.ErrorIs(t, err, sendErr)
}

func TestReceiveEvents_KeepsUndecodableMessages(t *testing.T) {
	// Arrange
	client := new(mocks.SQSClient)
	body, err := json.Marshal(domain.TenantEvent{Type: domain.EventTenantDeactivated, TenantID: "t1"})
	require.NoError(t, err)

	client.On("ReceiveMessage", mock.Anything, mock.MatchedBy(func(in *sqs.ReceiveMessageInput) bool {
		return in.MaxNumberOfMessages == 10 && in.WaitTimeSeconds == 20
	})).Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{
		{Body: aws.String(string(body)), ReceiptHandle: aws.String("r1")},
		{Body: aws.String("{not json"), ReceiptHandle: aws.String("r2")},
	}}, nil)

	// Act
	events, err := newService(client).ReceiveEvents(context.Background(), 10, 20)

	// Assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTenantDeactivated, events[0].Event.Type)
	assert.Equal(t, "r1", aws.ToString(events[0].ReceiptHandle))
	assert.Empty(t, events[1].Event.Type)
	assert.Equal(t, "r2", aws.ToString(events[1].ReceiptHandle))
}

func TestDeleteMessage(t *testing.T) {
	// Arrange
	client := new(mocks.SQSClient)
	client.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(in *sqs.DeleteMessageInput) bool {
		return aws.ToString(in.ReceiptHandle) == "r1" && aws.ToString(in.QueueUrl) == queueURL
	})).Return(&sqs.DeleteMessageOutput{}, nil)

	// Act
	err := newService(client).DeleteMessage(context.Background(), aws.String("r1"))

	// Assert
	assert.NoError(t, err)
	client.AssertExpectations(t)
}
