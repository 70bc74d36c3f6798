package handler

import (
	"fmt"
	"net/http"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
)

type ReservationHandler struct {
	reservationService ports.ReservationService
}

func NewReservationHandler(reservations ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservations}
}

type ReserveRequest struct {
	GuestID  int64  `json:"guest_id" validate:"required,gt=0"`
	RoomID   int64  `json:"room_id" validate:"required,gt=0"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

// ReservationResponse renders a reservation with plain calendar dates.
type ReservationResponse struct {
	ID         int64  `json:"id"`
	GuestName  string `json:"guest_name"`
	RoomNumber int    `json:"room_number"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// Both dates already passed the datetime validation
	checkIn, _ := domain.ParseDate(req.CheckIn)
	checkOut, _ := domain.ParseDate(req.CheckOut)

	id, err := h.reservationService.Reserve(r.Context(), req.GuestID, req.RoomID, checkIn, checkOut)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, IDResponse{
		ID:      id,
		Message: fmt.Sprintf("Reservation made successfully for guest ID %d in room ID %d", req.GuestID, req.RoomID),
	})
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.reservationService.ListReservations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]ReservationResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, ReservationResponse{
			ID:         v.ID,
			GuestName:  v.GuestName,
			RoomNumber: v.RoomNumber,
			CheckIn:    v.CheckIn.Format(domain.DateLayout),
			CheckOut:   v.CheckOut.Format(domain.DateLayout),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
