package ports

import (
	"context"
	"time"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

type GuestService interface {
	RegisterGuest(ctx context.Context, name, phone, email string) (int64, error)
	ListGuests(ctx context.Context) ([]domain.Guest, error)
}

type RoomService interface {
	RegisterRoom(ctx context.Context, number int, roomType domain.RoomType, pricePerNight decimal.Decimal) (int64, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	ListAvailableRooms(ctx context.Context) ([]domain.Room, error)
}

type ReservationService interface {
	Reserve(ctx context.Context, guestID, roomID int64, checkIn, checkOut time.Time) (int64, error)
	ListReservations(ctx context.Context) ([]domain.ReservationView, error)
}
