package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/lib/pq"
	"github.com/sony/gobreaker"
)

// PostgreSQL SQLSTATE codes the repository translates.
const (
	dataExceptionClass  = "22"
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

// classify maps driver and breaker errors onto the domain error taxonomy.
// Errors it does not recognise are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			if pqErr.Table == "rooms" || pqErr.Constraint == "rooms_room_number_key" {
				return fmt.Errorf("%w: %s", domain.ErrDuplicateRoom, pqErr.Detail)
			}
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, pqErr.Detail)
		case checkViolation:
			if pqErr.Constraint == "reservations_date_range_check" {
				return domain.ErrInvalidDateRange
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pqErr.Message)
		}
		// Out of range numbers, overlong or unencodable text
		if pqErr.Code.Class() == dataExceptionClass {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pqErr.Message)
		}
		return err
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}
