package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// CommitHook schedules fn to run once the transaction carried by ctx commits.
// Without a transaction it runs fn immediately.
type CommitHook func(ctx context.Context, fn func())

// publishEvent publishes an account event keyed by user id once the current
// transaction, if any, has committed. Failures are logged and never surface to the caller.
func (svc *AuthService) publishEvent(ctx context.Context, eventType string, userID uuid.UUID, username string) {
	if svc.kafkaWriter == nil {
		logger.FromContext(ctx).Warnw("Kafka writer not configured, skipping event", "type", eventType, "user_id", userID)
		return
	}

	event := models.AccountEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID.String(),
		Username:  username,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.FromContext(ctx).Errorw("Failed to marshal account event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	write := func() {
		if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
			logger.FromContext(ctx).Errorw("Failed to publish account event", "event_id", event.EventID, "type", eventType, "error", err)
			return
		}
		logger.FromContext(ctx).Infow("Account event published", "event_id", event.EventID, "type", eventType, "user_id", event.UserID)
	}

	if svc.afterCommit == nil {
		write()
		return
	}
	svc.afterCommit(ctx, write)
}
