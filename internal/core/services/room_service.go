package services

import (
	"context"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
	"github.com/shopspring/decimal"
)

type RoomService struct {
	repo ports.HotelRepository
}

var _ ports.RoomService = (*RoomService)(nil)

func NewRoomService(repo ports.HotelRepository) *RoomService {
	return &RoomService{repo: repo}
}

// RegisterRoom adds an Available room. A number that is already taken fails
// with domain.ErrDuplicateRoom and leaves the store unchanged.
func (s *RoomService) RegisterRoom(
	ctx context.Context,
	number int,
	roomType domain.RoomType,
	pricePerNight decimal.Decimal,
) (int64, error) {
	room, err := domain.NewRoom(number, roomType, pricePerNight)
	if err != nil {
		return 0, err
	}
	return s.repo.CreateRoom(ctx, room)
}

func (s *RoomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.repo.ListRooms(ctx)
}

func (s *RoomService) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	return s.repo.ListAvailableRooms(ctx)
}
