package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
)

// MockReservationEventPublisher implements ports.ReservationEventPublisher
// so the outbox relay can be tested without a RabbitMQ connection.
type MockReservationEventPublisher struct {
	mu sync.RWMutex

	// Track published events for verification
	PublishedEvents []ports.ReservationCreatedEvent

	// Error injection for testing error scenarios
	PublishError error

	PublishCallCount int
}

var _ ports.ReservationEventPublisher = (*MockReservationEventPublisher)(nil)

func NewMockReservationEventPublisher() *MockReservationEventPublisher {
	return &MockReservationEventPublisher{
		PublishedEvents: make([]ports.ReservationCreatedEvent, 0),
	}
}

func (m *MockReservationEventPublisher) PublishReservationCreated(ctx context.Context, evt ports.ReservationCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// GetPublishedEvents returns a copy of all events that were published.
func (m *MockReservationEventPublisher) GetPublishedEvents() []ports.ReservationCreatedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.ReservationCreatedEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

func (m *MockReservationEventPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}
