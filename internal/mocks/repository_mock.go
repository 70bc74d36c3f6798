// Package mocks provides in-memory implementations of the port interfaces
// for tests that should not need PostgreSQL, Redis or RabbitMQ.
package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
)

// MockHotelRepository implements ports.HotelRepository in memory with the same
// observable rules as the SQL adapter: increasing ids, unique room numbers,
// existing guest and room for a reservation, and the room flip to Occupied.
type MockHotelRepository struct {
	mu sync.RWMutex

	guests       []domain.Guest
	rooms        []domain.Room
	reservations []domain.Reservation
	nextGuestID  int64
	nextRoomID   int64
	nextResID    int64

	// Call tracking for verification
	CreateGuestCalls       []domain.Guest
	CreateRoomCalls        []domain.Room
	CreateReservationCalls []domain.Reservation
	ListRoomsCalls         int
	ListAvailableCalls     int

	// Error injection for testing error scenarios
	CreateGuestError       error
	CreateRoomError        error
	CreateReservationError error
	ListError              error
}

// Ensure MockHotelRepository implements ports.HotelRepository at compile time.
var _ ports.HotelRepository = (*MockHotelRepository)(nil)

func NewMockHotelRepository() *MockHotelRepository {
	return &MockHotelRepository{}
}

func (m *MockHotelRepository) CreateGuest(ctx context.Context, guest domain.Guest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateGuestCalls = append(m.CreateGuestCalls, guest)
	if m.CreateGuestError != nil {
		return 0, m.CreateGuestError
	}

	m.nextGuestID++
	guest.ID = m.nextGuestID
	m.guests = append(m.guests, guest)
	return guest.ID, nil
}

func (m *MockHotelRepository) ListGuests(ctx context.Context) ([]domain.Guest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]domain.Guest, len(m.guests))
	copy(out, m.guests)
	return out, nil
}

func (m *MockHotelRepository) CreateRoom(ctx context.Context, room domain.Room) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateRoomCalls = append(m.CreateRoomCalls, room)
	if m.CreateRoomError != nil {
		return 0, m.CreateRoomError
	}

	for _, existing := range m.rooms {
		if existing.Number == room.Number {
			return 0, domain.ErrDuplicateRoom
		}
	}

	m.nextRoomID++
	room.ID = m.nextRoomID
	room.Status = domain.RoomAvailable
	m.rooms = append(m.rooms, room)
	return room.ID, nil
}

func (m *MockHotelRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListRoomsCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]domain.Room, len(m.rooms))
	copy(out, m.rooms)
	return out, nil
}

func (m *MockHotelRepository) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListAvailableCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]domain.Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		if room.IsAvailable() {
			out = append(out, room)
		}
	}
	return out, nil
}

func (m *MockHotelRepository) CreateReservation(ctx context.Context, res domain.Reservation) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateReservationCalls = append(m.CreateReservationCalls, res)
	if m.CreateReservationError != nil {
		return 0, m.CreateReservationError
	}

	if m.guestIndex(res.GuestID) < 0 {
		return 0, &domain.NotFoundError{Entity: "guest", ID: res.GuestID}
	}
	roomIdx := m.roomIndex(res.RoomID)
	if roomIdx < 0 {
		return 0, &domain.NotFoundError{Entity: "room", ID: res.RoomID}
	}

	m.nextResID++
	res.ID = m.nextResID
	m.reservations = append(m.reservations, res)
	m.rooms[roomIdx].Status = domain.RoomOccupied
	return res.ID, nil
}

func (m *MockHotelRepository) ListReservations(ctx context.Context) ([]domain.ReservationView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	views := make([]domain.ReservationView, 0, len(m.reservations))
	for _, res := range m.reservations {
		guest := m.guests[m.guestIndex(res.GuestID)]
		room := m.rooms[m.roomIndex(res.RoomID)]
		views = append(views, domain.ReservationView{
			ID:         res.ID,
			GuestName:  guest.Name,
			RoomNumber: room.Number,
			CheckIn:    res.CheckIn,
			CheckOut:   res.CheckOut,
		})
	}
	return views, nil
}

// Room returns the stored room with the given id, for test assertions.
func (m *MockHotelRepository) Room(id int64) (domain.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.roomIndex(id)
	if idx < 0 {
		return domain.Room{}, false
	}
	return m.rooms[idx], true
}

// Reset clears all stored data and call tracking.
// Use this between tests to ensure isolation.
func (m *MockHotelRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.guests = nil
	m.rooms = nil
	m.reservations = nil
	m.nextGuestID, m.nextRoomID, m.nextResID = 0, 0, 0
	m.CreateGuestCalls = nil
	m.CreateRoomCalls = nil
	m.CreateReservationCalls = nil
	m.ListRoomsCalls = 0
	m.ListAvailableCalls = 0
	m.CreateGuestError = nil
	m.CreateRoomError = nil
	m.CreateReservationError = nil
	m.ListError = nil
}

func (m *MockHotelRepository) guestIndex(id int64) int {
	for i, g := range m.guests {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (m *MockHotelRepository) roomIndex(id int64) int {
	for i, r := range m.rooms {
		if r.ID == id {
			return i
		}
	}
	return -1
}
