package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateRoom      = errors.New("room number already exists")
	ErrInvalidDateRange   = errors.New("check-out date must be after check-in date")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// NotFoundError reports a guest or room reference that does not exist.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsRejection reports whether err is a rejected-input outcome rather than a
// storage failure. Rejections leave the store untouched.
func IsRejection(err error) bool {
	return errors.Is(err, ErrDuplicateRoom) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput)
}
