package service

import (
	"context"

	"ai-import-be/internal/pkg/logger"
	pkgEvents "ai-import-be/pkg/events"
	pktNats "ai-import-be/pkg/nats"
)

// IImportEventPublisher announces committed imports to other services.
// Publishing is best effort: failures are logged, never returned.
type IImportEventPublisher interface {
	PublishImportCommitted(ctx context.Context, evt pkgEvents.ImportCommitted)
}

type natsImportEventPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewImportEventPublisher(publisher *pktNats.Publisher, log logger.ILogger) IImportEventPublisher {
	return &natsImportEventPublisher{
		publisher: publisher,
		logger:    log,
	}
}

func (p *natsImportEventPublisher) PublishImportCommitted(ctx context.Context, evt pkgEvents.ImportCommitted) {
	if p.publisher == nil {
		p.logger.Debug("IMPORT_EVENTS", "NATS unavailable, event dropped", map[string]interface{}{
			"event":      evt.EventType(),
			"session_id": evt.SessionId,
		})
		return
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("IMPORT_EVENTS", "Failed to publish IMPORT_COMMITTED event", map[string]interface{}{
			"session_id": evt.SessionId,
			"error":      err.Error(),
		})
	}
}
