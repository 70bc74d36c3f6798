package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/adapters/messaging"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/adapters/outbox"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("relay: %v", err)
	}
}

// run owns the database and broker connections so their deferred closes
// execute on every exit path.
func run() error {
	log.Println("Starting outbox relay service...")

	cfg := config.LoadRelayConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	log.Println("relay: database connection initialized - circuit breaker will validate on first operation")

	broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.ReservationQueueName)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer broker.Close()
	log.Printf("relay: connected to RabbitMQ, publishing to queue %q", broker.QueueName())

	reg := prometheus.NewRegistry()
	relayWorker := outbox.NewRelay(db, cfg.DatabaseURL, broker, reg)

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "UP"
		httpStatus := http.StatusOK

		if !relayWorker.IsHealthy() {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    status,
			"component": "outbox-relay",
		})
	})
	healthMux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if !relayWorker.IsReady() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	healthMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	healthServer := &http.Server{
		Addr:    ":" + cfg.HealthPort,
		Handler: healthMux,
	}

	go func() {
		log.Printf("relay: starting health check server on :%s", cfg.HealthPort)
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("relay: health server error: %v", err)
		}
	}()

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Fatal errors from the relay worker
	errChan := make(chan error, 1)

	go func() {
		log.Println("relay: starting event processing worker...")
		if err := relayWorker.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Println("relay: received shutdown signal, initiating shutdown...")
	case runErr = <-errChan:
		log.Printf("relay: worker failed, shutting down: %v", runErr)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("relay: error shutting down health server: %v", err)
	}

	log.Println("relay: shutdown complete")
	return runErr
}
