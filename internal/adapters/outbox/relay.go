package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/config"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

const (
	// PostgreSQL NOTIFY/LISTEN configuration
	listenerMinReconnectInterval = 10 * time.Second
	listenerMaxReconnectInterval = time.Minute
	outboxChannelName            = "outbox_channel"

	// Event processing timeouts
	eventProcessTimeout     = 30 * time.Second
	batchProcessTimeout     = 60 * time.Second
	periodicProcessInterval = 90 * time.Second

	// Health check configuration
	healthCheckStaleThreshold = 5 * time.Minute

	// Batch processing limits
	maxEventsPerBatch = 100
)

// Relay listens for PostgreSQL NOTIFY signals on the outbox_channel
// and publishes reservation events to RabbitMQ.
type Relay struct {
	db            *sql.DB
	publisher     ports.ReservationEventPublisher
	listener      *pq.Listener
	dbURL         string
	dbCB          *gobreaker.CircuitBreaker
	lastProcessed atomic.Int64
	healthy       atomic.Bool
	events        *prometheus.CounterVec
}

// NewRelay creates a new outbox relay that listens for PostgreSQL notifications.
// Counters are registered on reg when it is not nil.
func NewRelay(db *sql.DB, dbURL string, publisher ports.ReservationEventPublisher, reg prometheus.Registerer) *Relay {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hotel",
		Subsystem: "outbox",
		Name:      "events_total",
		Help:      "Outbox events handled by the relay, by outcome.",
	}, []string{"outcome"})
	if reg != nil {
		reg.MustRegister(events)
	}

	r := &Relay{
		db:        db,
		dbURL:     dbURL,
		publisher: publisher,
		dbCB:      config.NewCircuitBreaker("Relay-PostgreSQL"),
		events:    events,
	}
	r.markProcessed()
	r.healthy.Store(true)
	return r
}

// IsHealthy reports whether the relay process is alive (liveness).
// An open circuit is degraded but recoverable, so it is not considered here.
func (r *Relay) IsHealthy() bool {
	return r.healthy.Load()
}

// IsReady reports whether the relay can process events (readiness).
func (r *Relay) IsReady() bool {
	if r.dbCB.State() == gobreaker.StateOpen {
		return false
	}
	if time.Since(time.Unix(0, r.lastProcessed.Load())) > healthCheckStaleThreshold {
		return false
	}
	return r.healthy.Load()
}

func (r *Relay) markProcessed() {
	r.lastProcessed.Store(time.Now().UnixNano())
}

// Start begins listening for outbox notifications and processing events.
// This is a blocking call that runs until the context is cancelled.
func (r *Relay) Start(ctx context.Context) error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("outbox relay: listener error: %v", err)
		}
	}

	r.listener = pq.NewListener(r.dbURL, listenerMinReconnectInterval, listenerMaxReconnectInterval, reportProblem)
	defer r.listener.Close()

	if err := r.listener.Listen(outboxChannelName); err != nil {
		return err
	}

	log.Printf("outbox relay: listening on '%s' for notifications...", outboxChannelName)

	// Catch up on events written while the relay was down
	if err := r.processUnprocessedEvents(ctx); err != nil {
		log.Printf("outbox relay: error processing startup backlog: %v", err)
	}

	ticker := time.NewTicker(periodicProcessInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("outbox relay: shutting down...")
			return ctx.Err()

		case notification := <-r.listener.Notify:
			if notification == nil {
				log.Println("outbox relay: received nil notification (reconnecting...)")
				r.healthy.Store(false)
				continue
			}

			log.Printf("outbox relay: received notification for event ID: %s", notification.Extra)

			if err := r.processEventByID(ctx, notification.Extra); err != nil {
				log.Printf("outbox relay: error processing event %s: %v", notification.Extra, err)
			} else {
				r.markProcessed()
				r.healthy.Store(true)
			}

		case <-ticker.C:
			// Keep the connection alive and pick up anything a notification missed
			go r.listener.Ping()

			if err := r.processUnprocessedEvents(ctx); err != nil {
				log.Printf("outbox relay: error in periodic processing: %v", err)
			} else {
				r.markProcessed()
			}
		}
	}
}

// publish forwards one outbox row. A false return with nil error means the
// row should be marked processed without being published.
func (r *Relay) publish(ctx context.Context, id, eventType string, payload []byte) (bool, error) {
	if eventType != ports.ReservationCreatedEventType {
		log.Printf("outbox relay: skipping event %s with unknown type %q", id, eventType)
		r.events.WithLabelValues("skipped").Inc()
		return false, nil
	}

	var evt ports.ReservationCreatedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		// Mark as processed anyway to avoid infinite retries on bad data
		log.Printf("outbox relay: invalid payload for event %s: %v", id, err)
		r.events.WithLabelValues("invalid").Inc()
		return false, nil
	}

	if err := r.publisher.PublishReservationCreated(ctx, evt); err != nil {
		r.events.WithLabelValues("failed").Inc()
		return false, err
	}
	r.events.WithLabelValues("published").Inc()
	return true, nil
}

// processEventByID processes a single event by its ID.
func (r *Relay) processEventByID(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, eventProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var id, eventType string
		var payload []byte
		err = tx.QueryRowContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`, eventID).Scan(&id, &eventType, &payload)

		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if _, err := r.publish(ctx, id, eventType, payload); err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id); err != nil {
			return nil, err
		}

		return nil, tx.Commit()
	})
	return err
}

// processUnprocessedEvents processes all unprocessed events (catch-up/recovery).
func (r *Relay) processUnprocessedEvents(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, batchProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE processed_at IS NULL
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, maxEventsPerBatch)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		type record struct {
			ID        string
			EventType string
			Payload   []byte
		}

		var records []record
		for rows.Next() {
			var rec record
			if err := rows.Scan(&rec.ID, &rec.EventType, &rec.Payload); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		rows.Close()

		for _, rec := range records {
			if _, err := r.publish(ctx, rec.ID, rec.EventType, rec.Payload); err != nil {
				log.Printf("outbox relay: failed to publish event %s: %v", rec.ID, err)
				continue
			}

			if _, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, rec.ID); err != nil {
				return nil, err
			}

			log.Printf("outbox relay: processed event %s", rec.ID)
		}

		return nil, tx.Commit()
	})
	return err
}
