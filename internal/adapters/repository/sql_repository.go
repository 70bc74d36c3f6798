package repository

import (
	"context"
	"database/sql"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
	"github.com/sony/gobreaker"
)

type SQLRepository struct {
	db *sql.DB
	cb *gobreaker.CircuitBreaker
}

// Ensure SQLRepository implements ports.HotelRepository
var _ ports.HotelRepository = (*SQLRepository)(nil)

// NewSQLRepository wraps an open database handle. The caller owns db and
// closes it; cb guards every round trip and may be nil.
func NewSQLRepository(db *sql.DB, cb *gobreaker.CircuitBreaker) *SQLRepository {
	if cb == nil {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "PostgreSQL"})
	}
	return &SQLRepository{db: db, cb: cb}
}

// guarded runs fn through the circuit breaker and classifies its error.
func guarded[T any](r *SQLRepository, fn func() (T, error)) (T, error) {
	res, err := r.cb.Execute(func() (interface{}, error) {
		v, err := fn()
		return v, classify(err)
	})
	if err != nil {
		var zero T
		return zero, classify(err)
	}
	return res.(T), nil
}

func (r *SQLRepository) CreateGuest(ctx context.Context, guest domain.Guest) (int64, error) {
	return guarded(r, func() (int64, error) {
		var id int64
		err := r.db.QueryRowContext(
			ctx,
			"INSERT INTO guests (name, phone, email) VALUES ($1, $2, $3) RETURNING id",
			guest.Name,
			guest.Phone,
			guest.Email,
		).Scan(&id)
		return id, err
	})
}

func (r *SQLRepository) ListGuests(ctx context.Context) ([]domain.Guest, error) {
	return guarded(r, func() ([]domain.Guest, error) {
		rows, err := r.db.QueryContext(ctx, "SELECT id, name, phone, email FROM guests ORDER BY id")
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		guests := make([]domain.Guest, 0)
		for rows.Next() {
			var g domain.Guest
			if err := rows.Scan(&g.ID, &g.Name, &g.Phone, &g.Email); err != nil {
				return nil, err
			}
			guests = append(guests, g)
		}
		return guests, rows.Err()
	})
}

func (r *SQLRepository) CreateRoom(ctx context.Context, room domain.Room) (int64, error) {
	return guarded(r, func() (int64, error) {
		var id int64
		err := r.db.QueryRowContext(
			ctx,
			"INSERT INTO rooms (room_number, room_type, price_per_night, status) VALUES ($1, $2, $3, $4) RETURNING id",
			room.Number,
			string(room.Type),
			room.PricePerNight,
			string(domain.RoomAvailable),
		).Scan(&id)
		return id, err
	})
}

func (r *SQLRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return guarded(r, func() ([]domain.Room, error) {
		return r.queryRooms(ctx,
			"SELECT id, room_number, room_type, price_per_night, status FROM rooms ORDER BY id")
	})
}

func (r *SQLRepository) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	return guarded(r, func() ([]domain.Room, error) {
		return r.queryRooms(ctx,
			"SELECT id, room_number, room_type, price_per_night, status FROM rooms WHERE status = $1 ORDER BY id",
			string(domain.RoomAvailable))
	})
}

func (r *SQLRepository) queryRooms(ctx context.Context, query string, args ...any) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var (
			room             domain.Room
			roomType, status string
		)
		if err := rows.Scan(&room.ID, &room.Number, &roomType, &room.PricePerNight, &status); err != nil {
			return nil, err
		}
		room.Type = domain.RoomType(roomType)
		room.Status = domain.RoomStatus(status)
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
