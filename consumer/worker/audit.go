package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tnqbao/gau-resource-registry/entity"
	"github.com/tnqbao/gau-resource-registry/infra"
	"github.com/tnqbao/gau-resource-registry/infra/produce"
	"github.com/tnqbao/gau-resource-registry/repository"
	"gorm.io/datatypes"
)

// AuditConsumer persists object/thing lifecycle events as audit rows.
type AuditConsumer struct {
	channel    *amqp.Channel
	infra      *infra.Infra
	repository *repository.Repository
}

func NewAuditConsumer(channel *amqp.Channel, infra *infra.Infra, repo *repository.Repository) *AuditConsumer {
	return &AuditConsumer{
		channel:    channel,
		infra:      infra,
		repository: repo,
	}
}

func (c *AuditConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.ResourceEventQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register audit consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Audit Consumer] Started listening on queue: %s", produce.ResourceEventQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Audit Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Audit Consumer] Channel closed")
					return
				}
				c.handleResourceEvent(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *AuditConsumer) handleResourceEvent(ctx context.Context, msg amqp.Delivery) {
	var payload produce.ResourceEventMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Audit Consumer] Failed to unmarshal message: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	resourceID, err := uuid.Parse(payload.ResourceID)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Audit Consumer] Invalid resource id: %v", err)
		_ = msg.Nack(false, false)
		return
	}
	scopeID, err := uuid.Parse(payload.ScopeID)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Audit Consumer] Invalid scope id: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	event := &entity.AuditEvent{
		ID:           uuid.New(),
		ResourceType: payload.ResourceType,
		ResourceID:   resourceID,
		ScopeID:      scopeID,
		Action:       payload.Action,
		Payload:      datatypes.JSON(payload.Payload),
		CreatedAt:    time.UnixMilli(payload.Timestamp).UTC(),
	}

	if err := c.repository.AuditEventRepo.Create(event); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Audit Consumer] Failed to persist event for %s %s, requeueing", payload.ResourceType, payload.ResourceID)
		_ = msg.Nack(false, true)
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Audit Consumer] Persisted %s event for %s %s", payload.Action, payload.ResourceType, payload.ResourceID)
	_ = msg.Ack(false)
}
