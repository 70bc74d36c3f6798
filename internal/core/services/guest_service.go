package services

import (
	"context"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
)

type GuestService struct {
	repo ports.HotelRepository
}

var _ ports.GuestService = (*GuestService)(nil)

func NewGuestService(repo ports.HotelRepository) *GuestService {
	return &GuestService{repo: repo}
}

// RegisterGuest stores the guest as entered. Empty details are accepted.
func (s *GuestService) RegisterGuest(ctx context.Context, name, phone, email string) (int64, error) {
	guest, err := domain.NewGuest(name, phone, email)
	if err != nil {
		return 0, err
	}
	return s.repo.CreateGuest(ctx, guest)
}

func (s *GuestService) ListGuests(ctx context.Context) ([]domain.Guest, error) {
	return s.repo.ListGuests(ctx)
}
