package ports

import (
	"context"
)

const ReservationCreatedEventType = "reservation.created"

type ReservationCreatedEvent struct {
	ReservationID int64  `json:"reservation_id"`
	GuestID       int64  `json:"guest_id"`
	RoomID        int64  `json:"room_id"`
	RoomNumber    int    `json:"room_number"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Nights        int    `json:"nights"`
}

type ReservationEventPublisher interface {
	PublishReservationCreated(ctx context.Context, evt ReservationCreatedEvent) error
}
