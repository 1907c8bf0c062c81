package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/worker/notify"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func TestStatusWorker_Name(t *testing.T) {
	worker := notify.NewStatusWorker(&MockStreamRepository{}, zap.NewNop(), "test-group")
	assert.Equal(t, "place-status-notifier", worker.Name())
}

func TestStatusWorker_Stop(t *testing.T) {
	worker := notify.NewStatusWorker(&MockStreamRepository{}, zap.NewNop(), "test-group")

	// Stop should not error even if not started
	assert.NoError(t, worker.Stop())
	assert.NoError(t, worker.Stop())
}

func TestStatusWorker_AcksProcessedMessages(t *testing.T) {
	mockStream := &MockStreamRepository{}
	worker := notify.NewStatusWorker(mockStream, zap.NewNop(), "test-group")

	event := domain.PlaceStatusEvent{
		EventID:     uuid.New(),
		PlaceID:     42,
		PlaceName:   "Vegan Cafe",
		NewStatus:   domain.StatusApproved,
		AuthorEmail: "user@example.com",
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	messages := make(chan domain.StreamMessage, 2)
	messages <- domain.StreamMessage{ID: "1-0", Data: string(payload)}
	messages <- domain.StreamMessage{ID: "2-0", Data: "not json"}
	close(messages)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlaceStatus, "test-group").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamPlaceStatus, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(messages), nil)
	// Both the processed and the poison message get acked
	mockStream.On("AckMessage", mock.Anything, domain.StreamPlaceStatus, "test-group", "1-0").Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamPlaceStatus, "test-group", "2-0").Return(nil)

	err = worker.Start(context.Background())
	assert.NoError(t, err)
	mockStream.AssertExpectations(t)
}

func TestStatusWorker_ConsumeStreamError(t *testing.T) {
	mockStream := &MockStreamRepository{}
	worker := notify.NewStatusWorker(mockStream, zap.NewNop(), "test-group")

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlaceStatus, "test-group").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamPlaceStatus, "test-group", mock.Anything).
		Return(nil, assert.AnError)

	err := worker.Start(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
