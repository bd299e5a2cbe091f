package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/mocks"
	"github.com/kingrain94/tenancy-api/internal/service/queue"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

type EventArchiveWorkerTestSuite struct {
	suite.Suite
	mockSource *mocks.EventSource
	mockStore  *mocks.ObjectStore
	worker     *EventArchiveWorker
}

func (s *EventArchiveWorkerTestSuite) SetupTest() {
	s.mockSource = new(mocks.EventSource)
	s.mockStore = new(mocks.ObjectStore)
	s.worker = NewEventArchiveWorker(s.mockSource, s.mockStore, "archive-bucket", logger.NewNop(), 1, time.Hour)
}

func TestEventArchiveWorker(t *testing.T) {
	suite.Run(t, new(EventArchiveWorkerTestSuite))
}

func (s *EventArchiveWorkerTestSuite) TestProcessBatch_ArchivesThenDeletes() {
	// Arrange
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	event := domain.TenantEvent{Type: domain.EventTenantProvisioned, TenantID: "t1", OccurredAt: at}

	s.mockSource.On("ReceiveEvents", ctx, int32(10), int32(20)).Return([]queue.ReceivedEvent{
		{Event: event, ReceiptHandle: aws.String("r1")},
	}, nil)
	s.mockStore.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		key := aws.ToString(in.Key)
		return aws.ToString(in.Bucket) == "archive-bucket" &&
			strings.HasPrefix(key, "tenant-events/2026/03/04/tenant.provisioned/20260304T050607Z_t1_") &&
			in.Metadata["tenant-id"] == "t1"
	})).Return(&s3.PutObjectOutput{}, nil)
	s.mockSource.On("DeleteMessage", ctx, aws.String("r1")).Return(nil)

	// Act
	archived, err := s.worker.ProcessBatch(ctx)

	// Assert
	s.NoError(err)
	s.Equal(1, archived)
	s.mockStore.AssertExpectations(s.T())
	s.mockSource.AssertExpectations(s.T())
}

func (s *EventArchiveWorkerTestSuite) TestProcessBatch_KeepsMessageWhenUploadFails() {
	// Arrange
	ctx := context.Background()
	s.mockSource.On("ReceiveEvents", ctx, int32(10), int32(20)).Return([]queue.ReceivedEvent{
		{Event: domain.TenantEvent{Type: domain.EventTenantUpdated, TenantID: "t1"}, ReceiptHandle: aws.String("r1")},
	}, nil)
	s.mockStore.On("PutObject", ctx, mock.Anything).Return(nil, errors.New("access denied"))

	// Act
	archived, err := s.worker.ProcessBatch(ctx)

	// Assert
	s.NoError(err)
	s.Zero(archived)
	s.mockSource.AssertNotCalled(s.T(), "DeleteMessage", mock.Anything, mock.Anything)
}

func (s *EventArchiveWorkerTestSuite) TestProcessBatch_DropsUndecodableMessage() {
	// Arrange
	ctx := context.Background()
	s.mockSource.On("ReceiveEvents", ctx, int32(10), int32(20)).Return([]queue.ReceivedEvent{
		{ReceiptHandle: aws.String("bad")},
	}, nil)
	s.mockSource.On("DeleteMessage", ctx, aws.String("bad")).Return(nil)

	// Act
	archived, err := s.worker.ProcessBatch(ctx)

	// Assert
	s.NoError(err)
	s.Zero(archived)
	s.mockStore.AssertNotCalled(s.T(), "PutObject", mock.Anything, mock.Anything)
	s.mockSource.AssertExpectations(s.T())
}

func (s *EventArchiveWorkerTestSuite) TestProcessBatch_ReceiveError() {
	// Arrange
	ctx := context.Background()
	s.mockSource.On("ReceiveEvents", ctx, int32(10), int32(20)).Return(nil, errors.New("network"))

	// Act
	_, err := s.worker.ProcessBatch(ctx)

	// Assert
	s.Error(err)
}

func (s *EventArchiveWorkerTestSuite) TestObjectKey_NoTenant() {
	key := objectKey(domain.TenantEvent{Type: domain.EventTenantProvisioningFailed})

	s.Contains(key, "/tenant.provisioning_failed/")
	s.Contains(key, "_none_")
	s.True(strings.HasSuffix(key, ".json"))
}

func (s *EventArchiveWorkerTestSuite) TestStartStop() {
	// Arrange
	s.worker.Start()

	// Act
	done := make(chan struct{})
	go func() {
		s.worker.Stop()
		close(done)
	}()

	// Assert
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("workers did not stop")
	}
}
