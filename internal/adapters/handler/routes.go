package handler

import (
	"net/http"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/adapters/middleware"
)

type Handlers struct {
	Guests       *GuestHandler
	Rooms        *RoomHandler
	Reservations *ReservationHandler
	Health       *HealthHandler
}

// NewRouter mounts the front desk API, health probes and the metrics
// endpoint. Every API route is instrumented and request-logged.
func NewRouter(h Handlers, metrics *middleware.Metrics, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("/health", h.Health.Health)
	mux.HandleFunc("/health/ready", h.Health.Ready)
	mux.HandleFunc("/health/live", h.Health.Live)
	mux.Handle("GET /metrics", metricsHandler)

	api := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, metrics.Instrument(pattern, fn))
	}

	api("POST /guests", h.Guests.Register)
	api("GET /guests", h.Guests.List)

	api("POST /rooms", h.Rooms.Register)
	api("GET /rooms", h.Rooms.List)
	api("GET /rooms/available", h.Rooms.ListAvailable)

	api("POST /reservations", h.Reservations.Reserve)
	api("GET /reservations", h.Reservations.List)

	return middleware.RequestLog(mux)
}
