package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/adapters/cache"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/adapters/handler"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/adapters/middleware"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/adapters/repository"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/config"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("api: %v", err)
	}
}

// run owns every process-lifetime resource so the deferred closes execute
// on all exit paths.
func run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		return err
	}
	log.Println("api: database schema ready")

	var repo ports.HotelRepository = repository.NewSQLRepository(db, config.NewCircuitBreaker("PostgreSQL"))

	var redisClient *redis.Client
	if cfg.CacheEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("api: WARNING - redis unreachable, room listings will be served from the database: %v", err)
		} else {
			log.Println("api: connected to Redis")
		}
		repo = cache.NewRoomCache(repo, redisClient, cfg.CacheTTL, config.NewCircuitBreaker("Redis-Cache"))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "hotel"),
	)

	router := handler.NewRouter(handler.Handlers{
		Guests:       handler.NewGuestHandler(services.NewGuestService(repo)),
		Rooms:        handler.NewRoomHandler(services.NewRoomService(repo)),
		Reservations: handler.NewReservationHandler(services.NewReservationService(repo)),
		Health:       handler.NewHealthHandler(db, redisClient),
	}, middleware.NewMetrics(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.CORS(cfg.AllowedOrigins)(router),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("api: shutdown signal received")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("api: shutdown complete")
	return nil
}
