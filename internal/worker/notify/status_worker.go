package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/domain/repository"
)

// StatusWorker consumes moderation events and notifies place authors
// about the new status of their proposals.
type StatusWorker struct {
	streamRepo repository.StreamRepository
	logger     *zap.Logger
	group      string
	consumer   string
	cancel     context.CancelFunc
}

func NewStatusWorker(
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	group string,
) *StatusWorker {
	hostname, _ := os.Hostname()
	return &StatusWorker{
		streamRepo: streamRepo,
		logger:     logger,
		group:      group,
		consumer:   fmt.Sprintf("status-notifier-%s-%d", hostname, os.Getpid()),
	}
}

func (w *StatusWorker) Name() string {
	return "place-status-notifier"
}

func (w *StatusWorker) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlaceStatus, w.group); err != nil {
		return err
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamPlaceStatus, w.group, w.consumer)
	if err != nil {
		return err
	}

	for msg := range messages {
		w.handle(ctx, msg)
	}
	return nil
}

func (w *StatusWorker) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	return nil
}

func (w *StatusWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	var event domain.PlaceStatusEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		w.logger.Warn("Failed to decode status event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Poison message; ack so it is not redelivered forever.
		_ = w.streamRepo.AckMessage(ctx, domain.StreamPlaceStatus, w.group, msg.ID)
		return
	}

	w.notify(event)

	if err := w.streamRepo.AckMessage(ctx, domain.StreamPlaceStatus, w.group, msg.ID); err != nil {
		w.logger.Warn("Failed to ack status event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}

// notify records the author notification. Mail delivery lives in a
// separate service; this worker only emits the outbound record.
func (w *StatusWorker) notify(event domain.PlaceStatusEvent) {
	w.logger.Info("Place status notification",
		zap.String("event_id", event.EventID.String()),
		zap.Int64("place_id", event.PlaceID),
		zap.String("place_name", event.PlaceName),
		zap.String("new_status", string(event.NewStatus)),
		zap.String("author", event.AuthorEmail),
		zap.Time("occurred_at", event.OccurredAt),
	)
}
