package domain

import "time"

// DateLayout is the calendar date format used for check-in and check-out.
const DateLayout = "2006-01-02"

type Reservation struct {
	ID       int64     `json:"id"`
	GuestID  int64     `json:"guest_id"`
	RoomID   int64     `json:"room_id"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// ReservationView is a reservation joined with its guest and room.
type ReservationView struct {
	ID         int64     `json:"id"`
	GuestName  string    `json:"guest_name"`
	RoomNumber int       `json:"room_number"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
}

// NewReservation truncates both dates to calendar days and requires the
// check-out day to be strictly after the check-in day.
func NewReservation(guestID, roomID int64, checkIn, checkOut time.Time) (Reservation, error) {
	in, out := DateOf(checkIn), DateOf(checkOut)
	if !out.After(in) {
		return Reservation{}, ErrInvalidDateRange
	}
	return Reservation{
		GuestID:  guestID,
		RoomID:   roomID,
		CheckIn:  in,
		CheckOut: out,
	}, nil
}

// Nights is the number of nights between check-in and check-out. Both dates
// are UTC midnights; counting Unix seconds keeps spans past the
// time.Duration range exact.
func (r Reservation) Nights() int {
	return int((r.CheckOut.Unix() - r.CheckIn.Unix()) / 86400)
}

// DateOf returns the calendar day of t as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
