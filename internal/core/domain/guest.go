package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Guest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// NewGuest keeps the details as entered. Only text the store cannot hold,
// NUL bytes or invalid UTF-8, is rejected.
func NewGuest(name, phone, email string) (Guest, error) {
	fields := []struct{ label, value string }{
		{"name", name},
		{"phone", phone},
		{"email", email},
	}
	for _, f := range fields {
		if !utf8.ValidString(f.value) || strings.ContainsRune(f.value, 0) {
			return Guest{}, fmt.Errorf("%w: guest %s contains unsupported characters", ErrInvalidInput, f.label)
		}
	}
	return Guest{Name: name, Phone: phone, Email: email}, nil
}
