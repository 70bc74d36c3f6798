package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/services"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/mocks"
	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TestGuestService_RegisterAndList verifies each registration appears exactly
// once, in order, with increasing ids.
func TestGuestService_RegisterAndList(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	service := services.NewGuestService(repo)
	ctx := context.Background()

	inputs := []domain.Guest{
		{Name: "Alice", Phone: "555-0100", Email: "alice@example.com"},
		{Name: "Bob", Phone: "555-0101", Email: "bob@example.com"},
		{Name: "", Phone: "", Email: ""},
	}

	var lastID int64
	for i, in := range inputs {
		id, err := service.RegisterGuest(ctx, in.Name, in.Phone, in.Email)
		if err != nil {
			t.Fatalf("register %d: unexpected error: %v", i, err)
		}
		if id <= lastID {
			t.Errorf("expected id greater than %d, got %d", lastID, id)
		}
		lastID = id

		guests, err := service.ListGuests(ctx)
		if err != nil {
			t.Fatalf("list: unexpected error: %v", err)
		}
		if len(guests) != i+1 {
			t.Fatalf("expected %d guests, got %d", i+1, len(guests))
		}
		got := guests[len(guests)-1]
		if got.ID != id || got.Name != in.Name || got.Phone != in.Phone || got.Email != in.Email {
			t.Errorf("unexpected guest %+v for input %+v", got, in)
		}
	}
}

func TestGuestService_StorageError(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	repo.CreateGuestError = domain.ErrStorageUnavailable
	service := services.NewGuestService(repo)

	_, err := service.RegisterGuest(context.Background(), "Alice", "", "")
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestGuestService_RejectsUnstorableText(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	service := services.NewGuestService(repo)

	_, err := service.RegisterGuest(context.Background(), "Ali\x00ce", "555-0100", "alice@example.com")

	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.CreateGuestCalls) != 0 {
		t.Errorf("expected no repository call, got %d", len(repo.CreateGuestCalls))
	}
}

func TestRoomService_RegisterRoom(t *testing.T) {
	tests := []struct {
		name        string
		number      int
		roomType    domain.RoomType
		price       string
		expectedErr error
		expectCall  bool
	}{
		{
			name:       "successful_room_registration",
			number:     101,
			roomType:   domain.RoomSingle,
			price:      "50.00",
			expectCall: true,
		},
		{
			name:        "rejects_unknown_room_type",
			number:      102,
			roomType:    domain.RoomType("Attic"),
			price:       "50.00",
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name:        "rejects_negative_price",
			number:      103,
			roomType:    domain.RoomDouble,
			price:       "-1",
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name:        "rejects_room_number_zero",
			number:      0,
			roomType:    domain.RoomDouble,
			price:       "10",
			expectedErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockHotelRepository()
			service := services.NewRoomService(repo)

			id, err := service.RegisterRoom(context.Background(), tt.number, tt.roomType, decimal.RequireFromString(tt.price))

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected %v, got %v", tt.expectedErr, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			} else if id == 0 {
				t.Error("expected non-zero id")
			}

			// Invalid input must never reach storage
			if tt.expectCall != (len(repo.CreateRoomCalls) == 1) {
				t.Errorf("expected repository call=%v, got %d calls", tt.expectCall, len(repo.CreateRoomCalls))
			}
		})
	}
}

func TestRoomService_DuplicateRoomLeavesListingUnchanged(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	service := services.NewRoomService(repo)
	ctx := context.Background()

	if _, err := service.RegisterRoom(ctx, 101, domain.RoomSingle, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, _ := service.ListRooms(ctx)

	_, err := service.RegisterRoom(ctx, 101, domain.RoomSuite, decimal.NewFromInt(300))
	if !errors.Is(err, domain.ErrDuplicateRoom) {
		t.Fatalf("expected ErrDuplicateRoom, got %v", err)
	}

	after, _ := service.ListRooms(ctx)
	if len(after) != len(before) {
		t.Errorf("expected %d rooms after duplicate, got %d", len(before), len(after))
	}
	if after[0].Type != domain.RoomSingle {
		t.Errorf("expected original room to be untouched, got type %q", after[0].Type)
	}
}

// TestReservationService_InvalidDateRange verifies rejected ranges leave no
// reservation and no status change behind.
func TestReservationService_InvalidDateRange(t *testing.T) {
	pairs := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{name: "same_day", checkIn: "2024-01-01", checkOut: "2024-01-01"},
		{name: "one_day_back", checkIn: "2024-01-02", checkOut: "2024-01-01"},
		{name: "a_year_back", checkIn: "2025-01-01", checkOut: "2024-01-01"},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockHotelRepository()
			ctx := context.Background()
			guestID, _ := services.NewGuestService(repo).RegisterGuest(ctx, "Alice", "", "")
			roomID, _ := services.NewRoomService(repo).RegisterRoom(ctx, 101, domain.RoomSingle, decimal.NewFromInt(50))

			service := services.NewReservationService(repo)
			_, err := service.Reserve(ctx, guestID, roomID, day(tt.checkIn), day(tt.checkOut))
			if !errors.Is(err, domain.ErrInvalidDateRange) {
				t.Fatalf("expected ErrInvalidDateRange, got %v", err)
			}

			if len(repo.CreateReservationCalls) != 0 {
				t.Errorf("expected no repository call, got %d", len(repo.CreateReservationCalls))
			}
			views, _ := service.ListReservations(ctx)
			if len(views) != 0 {
				t.Errorf("expected no reservations, got %d", len(views))
			}
			room, _ := repo.Room(roomID)
			if room.Status != domain.RoomAvailable {
				t.Errorf("expected room to stay Available, got %q", room.Status)
			}
		})
	}
}

func TestReservationService_UnknownReferences(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	ctx := context.Background()
	guestID, _ := services.NewGuestService(repo).RegisterGuest(ctx, "Alice", "", "")
	roomID, _ := services.NewRoomService(repo).RegisterRoom(ctx, 101, domain.RoomSingle, decimal.NewFromInt(50))
	service := services.NewReservationService(repo)

	tests := []struct {
		name    string
		guestID int64
		roomID  int64
		entity  string
	}{
		{name: "unknown_guest", guestID: guestID + 100, roomID: roomID, entity: "guest"},
		{name: "unknown_room", guestID: guestID, roomID: roomID + 100, entity: "room"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Reserve(ctx, tt.guestID, tt.roomID, day("2024-01-01"), day("2024-01-03"))

			var nf *domain.NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
			if nf.Entity != tt.entity {
				t.Errorf("expected missing %s, got %s", tt.entity, nf.Entity)
			}
			if !errors.Is(err, domain.ErrNotFound) {
				t.Error("expected error to match ErrNotFound")
			}
		})
	}

	room, _ := repo.Room(roomID)
	if room.Status != domain.RoomAvailable {
		t.Errorf("expected room to stay Available, got %q", room.Status)
	}
}

// TestReservationService_AliceScenario walks the front desk flow end to end.
func TestReservationService_AliceScenario(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	ctx := context.Background()
	guests := services.NewGuestService(repo)
	rooms := services.NewRoomService(repo)
	reservations := services.NewReservationService(repo)

	aliceID, err := guests.RegisterGuest(ctx, "Alice", "555-0100", "alice@example.com")
	if err != nil {
		t.Fatalf("register guest: %v", err)
	}
	room101, err := rooms.RegisterRoom(ctx, 101, domain.RoomSingle, decimal.RequireFromString("50.00"))
	if err != nil {
		t.Fatalf("register room: %v", err)
	}

	if _, err := reservations.Reserve(ctx, aliceID, room101, day("2024-01-01"), day("2024-01-03")); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	views, err := reservations.ListReservations(ctx)
	if err != nil {
		t.Fatalf("list reservations: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(views))
	}
	v := views[0]
	if v.GuestName != "Alice" || v.RoomNumber != 101 ||
		!v.CheckIn.Equal(day("2024-01-01")) || !v.CheckOut.Equal(day("2024-01-03")) {
		t.Errorf("unexpected reservation view %+v", v)
	}

	available, err := rooms.ListAvailableRooms(ctx)
	if err != nil {
		t.Fatalf("list available: %v", err)
	}
	for _, r := range available {
		if r.ID == room101 {
			t.Error("room 101 should no longer be available")
		}
	}
}

// TestReservationService_OccupiedRoomIsNotRechecked pins the documented policy:
// reserving an Occupied room succeeds and the room stays Occupied.
func TestReservationService_OccupiedRoomIsNotRechecked(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	ctx := context.Background()
	guests := services.NewGuestService(repo)
	reservations := services.NewReservationService(repo)

	aliceID, _ := guests.RegisterGuest(ctx, "Alice", "", "")
	bobID, _ := guests.RegisterGuest(ctx, "Bob", "", "")
	roomID, _ := services.NewRoomService(repo).RegisterRoom(ctx, 101, domain.RoomSingle, decimal.NewFromInt(50))

	first, err := reservations.Reserve(ctx, aliceID, roomID, day("2024-01-01"), day("2024-01-03"))
	if err != nil {
		t.Fatalf("first reservation: %v", err)
	}
	second, err := reservations.Reserve(ctx, bobID, roomID, day("2024-01-02"), day("2024-01-04"))
	if err != nil {
		t.Fatalf("second reservation on an occupied room should succeed, got %v", err)
	}
	if second <= first {
		t.Errorf("expected increasing reservation ids, got %d then %d", first, second)
	}

	views, _ := reservations.ListReservations(ctx)
	if len(views) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(views))
	}
	room, _ := repo.Room(roomID)
	if room.Status != domain.RoomOccupied {
		t.Errorf("expected room to stay Occupied, got %q", room.Status)
	}
}

// TestReservationService_ListingFollowsReservationOrder verifies listing order
// is reservation insertion order, not guest or room order.
func TestReservationService_ListingFollowsReservationOrder(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	ctx := context.Background()
	guests := services.NewGuestService(repo)
	rooms := services.NewRoomService(repo)
	reservations := services.NewReservationService(repo)

	alice, _ := guests.RegisterGuest(ctx, "Alice", "", "")
	bob, _ := guests.RegisterGuest(ctx, "Bob", "", "")
	carol, _ := guests.RegisterGuest(ctx, "Carol", "", "")
	r301, _ := rooms.RegisterRoom(ctx, 301, domain.RoomSuite, decimal.NewFromInt(300))
	r201, _ := rooms.RegisterRoom(ctx, 201, domain.RoomDouble, decimal.NewFromInt(120))
	r101, _ := rooms.RegisterRoom(ctx, 101, domain.RoomSingle, decimal.NewFromInt(50))

	order := []struct {
		guest int64
		room  int64
		name  string
		num   int
	}{
		{carol, r101, "Carol", 101},
		{alice, r301, "Alice", 301},
		{bob, r201, "Bob", 201},
	}
	for _, o := range order {
		if _, err := reservations.Reserve(ctx, o.guest, o.room, day("2024-05-01"), day("2024-05-02")); err != nil {
			t.Fatalf("reserve: %v", err)
		}
	}

	views, _ := reservations.ListReservations(ctx)
	if len(views) != len(order) {
		t.Fatalf("expected %d reservations, got %d", len(order), len(views))
	}
	for i, o := range order {
		if views[i].GuestName != o.name || views[i].RoomNumber != o.num {
			t.Errorf("position %d: expected %s/%d, got %s/%d", i, o.name, o.num, views[i].GuestName, views[i].RoomNumber)
		}
	}
}

func TestReservationService_StorageErrorPropagates(t *testing.T) {
	repo := mocks.NewMockHotelRepository()
	repo.CreateReservationError = domain.ErrStorageUnavailable
	service := services.NewReservationService(repo)

	_, err := service.Reserve(context.Background(), 1, 1, day("2024-01-01"), day("2024-01-02"))
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}
