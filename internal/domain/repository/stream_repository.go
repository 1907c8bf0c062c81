package repository

import (
	"context"

	"github.com/greencity/place-service/internal/domain"
)

// StreamRepository moves moderation events through Redis Streams.
type StreamRepository interface {
	// CreateConsumerGroup creates the consumer group for a stream,
	// creating the stream itself when missing.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream delivers messages for the consumer until the
	// context is cancelled.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage confirms a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream appends the JSON-encoded payload to the stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
