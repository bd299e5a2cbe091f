package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/utils"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

//go:generate mockery --name EventPublisher --output ../mocks
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TenantEvent) error
}

// NopPublisher drops every event. Used when EVENTS_ENABLED is off.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.TenantEvent) error {
	return nil
}

// publishEvent never fails the calling operation; lost events are logged.
func publishEvent(ctx context.Context, publisher EventPublisher, log *logger.Logger, event domain.TenantEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if event.ActorID == "" {
		event.ActorID, _ = utils.GetPrincipalIDFromContext(ctx)
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("failed to publish tenant event",
			zap.String("type", string(event.Type)),
			zap.String("tenant_id", event.TenantID),
			zap.Error(err))
	}
}
