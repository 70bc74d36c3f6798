package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/adapters/middleware"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type IDResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// writeError turns a service error into the rejected-input message shown to
// the operator, or a generic failure for anything unexpected.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidDateRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicateRoom):
		http.Error(w, "Room number already exists!", http.StatusConflict)
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Printf("[%s] storage unavailable: %v", middleware.RequestID(r.Context()), err)
		http.Error(w, "Service temporarily unavailable", http.StatusServiceUnavailable)
	default:
		log.Printf("[%s] request failed: %v", middleware.RequestID(r.Context()), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// decodeAndValidate reads a JSON body into dst and applies its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			http.Error(w, "Invalid field: "+verrs[0].Field()+" ("+verrs[0].Tag()+")", http.StatusBadRequest)
			return false
		}
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return false
	}
	return true
}
