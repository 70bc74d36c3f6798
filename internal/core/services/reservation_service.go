package services

import (
	"context"
	"time"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
)

type ReservationService struct {
	repo ports.HotelRepository
}

var _ ports.ReservationService = (*ReservationService)(nil)

func NewReservationService(repo ports.HotelRepository) *ReservationService {
	return &ReservationService{repo: repo}
}

// Reserve books roomID for guestID and marks the room Occupied.
//
// The room's current status is not checked: the front desk only offers
// available rooms, and reserving an occupied room adds another reservation
// while the room stays Occupied.
func (s *ReservationService) Reserve(
	ctx context.Context,
	guestID, roomID int64,
	checkIn, checkOut time.Time,
) (int64, error) {
	reservation, err := domain.NewReservation(guestID, roomID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	return s.repo.CreateReservation(ctx, reservation)
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]domain.ReservationView, error) {
	return s.repo.ListReservations(ctx)
}
