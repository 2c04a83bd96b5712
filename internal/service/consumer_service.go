// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"ai-import-be/internal/dto"
	"ai-import-be/internal/entity"
	"ai-import-be/internal/pkg/logger"
	"ai-import-be/internal/repository/specification"
	"ai-import-be/internal/repository/unitofwork"
	pkgEvents "ai-import-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "IMPORT_CONSUMER"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IImportEventPublisher
	logger         logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher IImportEventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishImportCommittedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal commit message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // malformed messages would never succeed
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ImportSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: payload.SessionId})
	if err != nil {
		cs.logger.Error(consumerModule, "Failed to look up import audit", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if existing != nil {
		cs.logger.Warn(consumerModule, "Import already recorded, skipping", map[string]interface{}{
			"session_id": payload.SessionId,
			"audit_id":   existing.Id,
		})
		msg.Ack()
		return
	}

	audit := toImportAudit(&payload)

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error(consumerModule, "Failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ImportSessionRepository().Create(ctx, audit); err != nil {
		cs.logger.Error(consumerModule, "Failed to record import audit", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error(consumerModule, "Failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.eventPublisher.PublishImportCommitted(ctx, pkgEvents.ImportCommitted{
		AuditId:        audit.Id,
		SessionId:      audit.SessionId,
		PractitionerId: audit.PractitionerId,
		PatientId:      payload.Plan.PatientID,
		ReuseCount:     audit.ReuseCount,
		CreateCount:    audit.CreateCount,
		SkipCount:      audit.SkipCount,
		SetCount:       audit.SetCount,
		NoteCount:      audit.NoteCount,
		CommittedAt:    audit.CommittedAt,
	})

	cs.logger.Info(consumerModule, "Import recorded", map[string]interface{}{
		"session_id": audit.SessionId,
		"audit_id":   audit.Id,
	})
	msg.Ack()
}

func toImportAudit(payload *dto.PublishImportCommittedMessage) *entity.ImportSession {
	plan := payload.Plan
	audit := &entity.ImportSession{
		Id:             payload.AuditId,
		SessionId:      payload.SessionId,
		PractitionerId: payload.PractitionerId,
		Status:         entity.ImportSessionStatusCommitted,
		ReuseCount:     plan.Summary.Exercises.ReuseCount,
		CreateCount:    plan.Summary.Exercises.CreateCount,
		SkipCount:      plan.Summary.Exercises.SkipCount,
		SetCount:       len(plan.Sets),
		NoteCount:      len(plan.Notes),
		Plan:           plan,
		CommittedAt:    payload.CommittedAt,
	}
	if plan.PatientID != "" {
		patientId := plan.PatientID
		audit.PatientId = &patientId
	}
	return audit
}
