package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomSuite  RoomType = "Suite"
)

// RoomTypes lists the room types in the order the front desk offers them.
var RoomTypes = []RoomType{RoomSingle, RoomDouble, RoomSuite}

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite:
		return true
	}
	return false
}

func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown room type %q", ErrInvalidInput, s)
	}
	return t, nil
}

type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomOccupied  RoomStatus = "Occupied"
)

// Room numbers and prices must fit the INTEGER and NUMERIC(10,2) columns.
const MaxRoomNumber = math.MaxInt32

var MaxPricePerNight = decimal.RequireFromString("99999999.99")

type Room struct {
	ID            int64           `json:"id"`
	Number        int             `json:"room_number"`
	Type          RoomType        `json:"room_type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Status        RoomStatus      `json:"status"`
}

// NewRoom builds an Available room after checking the number, type and price.
func NewRoom(number int, roomType RoomType, price decimal.Decimal) (Room, error) {
	if number < 1 || number > MaxRoomNumber {
		return Room{}, fmt.Errorf("%w: room number must be between 1 and %d", ErrInvalidInput, MaxRoomNumber)
	}
	if !roomType.Valid() {
		return Room{}, fmt.Errorf("%w: unknown room type %q", ErrInvalidInput, roomType)
	}
	price = price.Round(2)
	if price.IsNegative() || price.GreaterThan(MaxPricePerNight) {
		return Room{}, fmt.Errorf("%w: price per night must be between 0 and %s", ErrInvalidInput, MaxPricePerNight)
	}
	return Room{
		Number:        number,
		Type:          roomType,
		PricePerNight: price,
		Status:        RoomAvailable,
	}, nil
}

func (r Room) IsAvailable() bool {
	return r.Status == RoomAvailable
}
