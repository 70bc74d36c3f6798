package handler

import (
	"fmt"
	"net/http"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
	"github.com/shopspring/decimal"
)

type RoomHandler struct {
	roomService ports.RoomService
}

func NewRoomHandler(rooms ports.RoomService) *RoomHandler {
	return &RoomHandler{roomService: rooms}
}

type RegisterRoomRequest struct {
	RoomNumber    int             `json:"room_number" validate:"required,min=1,max=2147483647"`
	RoomType      string          `json:"room_type" validate:"required,oneof=Single Double Suite"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
}

func (h *RoomHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	roomType, err := domain.ParseRoomType(req.RoomType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.roomService.RegisterRoom(r.Context(), req.RoomNumber, roomType, req.PricePerNight)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, IDResponse{
		ID:      id,
		Message: fmt.Sprintf("Room %d added successfully", req.RoomNumber),
	})
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListRooms(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListAvailableRooms(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}
