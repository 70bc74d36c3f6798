package handler

import (
	"fmt"
	"net/http"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
)

type GuestHandler struct {
	guestService ports.GuestService
}

func NewGuestHandler(guests ports.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guests}
}

type RegisterGuestRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (h *GuestHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterGuestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.guestService.RegisterGuest(r.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, IDResponse{
		ID:      id,
		Message: fmt.Sprintf("Guest %s added successfully", req.Name),
	})
}

func (h *GuestHandler) List(w http.ResponseWriter, r *http.Request) {
	guests, err := h.guestService.ListGuests(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guests)
}
