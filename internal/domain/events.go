package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names (must match the notification consumers).
const (
	StreamPlaceStatus = "stream:place:status"
)

// PlaceStatusEvent is published whenever a moderation transition is
// applied to a place.
type PlaceStatusEvent struct {
	EventID     uuid.UUID   `json:"event_id"`
	PlaceID     int64       `json:"place_id"`
	PlaceName   string      `json:"place_name"`
	NewStatus   PlaceStatus `json:"new_status"`
	AuthorEmail string      `json:"author_email"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

// StreamMessage is a raw message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
