package ports

import (
	"context"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
)

type HotelRepository interface {
	CreateGuest(ctx context.Context, guest domain.Guest) (int64, error)
	ListGuests(ctx context.Context) ([]domain.Guest, error)

	CreateRoom(ctx context.Context, room domain.Room) (int64, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	ListAvailableRooms(ctx context.Context) ([]domain.Room, error)

	// CreateReservation inserts the reservation and marks its room Occupied
	// as one unit of work.
	CreateReservation(ctx context.Context, reservation domain.Reservation) (int64, error)
	ListReservations(ctx context.Context) ([]domain.ReservationView, error)
}
