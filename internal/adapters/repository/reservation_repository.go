package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
	"github.com/google/uuid"
)

const reservationAggregate = "reservation"

// CreateReservation inserts the reservation, flips the room to Occupied and
// records a reservation.created outbox event in one transaction.
func (r *SQLRepository) CreateReservation(ctx context.Context, res domain.Reservation) (int64, error) {
	return guarded(r, func() (int64, error) {
		return r.createReservation(ctx, res)
	})
}

func (r *SQLRepository) createReservation(ctx context.Context, res domain.Reservation) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var guestExists bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM guests WHERE id = $1)",
		res.GuestID,
	).Scan(&guestExists)
	if err != nil {
		return 0, err
	}
	if !guestExists {
		return 0, &domain.NotFoundError{Entity: "guest", ID: res.GuestID}
	}

	// Lock the room row so the status flip and the insert see the same room
	var roomNumber int
	err = tx.QueryRowContext(ctx,
		"SELECT room_number FROM rooms WHERE id = $1 FOR UPDATE",
		res.RoomID,
	).Scan(&roomNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.NotFoundError{Entity: "room", ID: res.RoomID}
	}
	if err != nil {
		return 0, err
	}

	checkIn := res.CheckIn.Format(domain.DateLayout)
	checkOut := res.CheckOut.Format(domain.DateLayout)

	var id int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO reservations (guest_id, room_id, check_in, check_out) VALUES ($1, $2, $3, $4) RETURNING id",
		res.GuestID,
		res.RoomID,
		checkIn,
		checkOut,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE rooms SET status = $1 WHERE id = $2",
		string(domain.RoomOccupied),
		res.RoomID,
	)
	if err != nil {
		return 0, err
	}

	payload, err := json.Marshal(ports.ReservationCreatedEvent{
		ReservationID: id,
		GuestID:       res.GuestID,
		RoomID:        res.RoomID,
		RoomNumber:    roomNumber,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        res.Nights(),
	})
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO outbox_events (id, aggregate_type, aggregate_id, event_type, payload, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		uuid.NewString(),
		reservationAggregate,
		strconv.FormatInt(id, 10),
		ports.ReservationCreatedEventType,
		payload,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SQLRepository) ListReservations(ctx context.Context) ([]domain.ReservationView, error) {
	return guarded(r, func() ([]domain.ReservationView, error) {
		rows, err := r.db.QueryContext(ctx, `
			SELECT reservations.id, guests.name, rooms.room_number, reservations.check_in, reservations.check_out
			FROM reservations
			JOIN guests ON reservations.guest_id = guests.id
			JOIN rooms ON reservations.room_id = rooms.id
			ORDER BY reservations.id`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		views := make([]domain.ReservationView, 0)
		for rows.Next() {
			var v domain.ReservationView
			if err := rows.Scan(&v.ID, &v.GuestName, &v.RoomNumber, &v.CheckIn, &v.CheckOut); err != nil {
				return nil, err
			}
			v.CheckIn = domain.DateOf(v.CheckIn)
			v.CheckOut = domain.DateOf(v.CheckOut)
			views = append(views, v)
		}
		return views, rows.Err()
	})
}
