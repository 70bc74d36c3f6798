package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/domain"
	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

const (
	allRoomsKey       = "hotel:rooms:all"
	availableRoomsKey = "hotel:rooms:available"
	generationKey     = "hotel:rooms:generation"
)

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RoomCache decorates a HotelRepository with a read-through Redis cache for
// the room listings. Redis failures never fail an operation; the repository
// answers instead.
//
// Listings are keyed by a generation counter that every committed room or
// reservation write increments. A reader fixes the generation before it
// loads from the repository and fills only that generation, so a fill that
// raced a write lands under a key no later reader asks for.
type RoomCache struct {
	ports.HotelRepository
	client Client
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker
}

var _ ports.HotelRepository = (*RoomCache)(nil)

func NewRoomCache(repo ports.HotelRepository, client Client, ttl time.Duration, cb *gobreaker.CircuitBreaker) *RoomCache {
	if cb == nil {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "Redis-Cache"})
	}
	return &RoomCache{
		HotelRepository: repo,
		client:          client,
		ttl:             ttl,
		cb:              cb,
	}
}

func (c *RoomCache) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return c.readThrough(ctx, allRoomsKey, c.HotelRepository.ListRooms)
}

func (c *RoomCache) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	return c.readThrough(ctx, availableRoomsKey, c.HotelRepository.ListAvailableRooms)
}

func (c *RoomCache) CreateRoom(ctx context.Context, room domain.Room) (int64, error) {
	id, err := c.HotelRepository.CreateRoom(ctx, room)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx)
	return id, nil
}

func (c *RoomCache) CreateReservation(ctx context.Context, res domain.Reservation) (int64, error) {
	id, err := c.HotelRepository.CreateReservation(ctx, res)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx)
	return id, nil
}

func (c *RoomCache) readThrough(
	ctx context.Context,
	prefix string,
	load func(context.Context) ([]domain.Room, error),
) ([]domain.Room, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		log.Printf("room cache: generation: %v", err)
		return load(ctx)
	}

	key := fmt.Sprintf("%s:%d", prefix, gen)
	if rooms, ok := c.lookup(ctx, key); ok {
		return rooms, nil
	}

	rooms, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, rooms)
	return rooms, nil
}

// generation is the current listing generation. A missing counter is
// generation zero.
func (c *RoomCache) generation(ctx context.Context) (int64, error) {
	raw, err := c.cb.Execute(func() (interface{}, error) {
		val, err := c.client.Get(ctx, generationKey).Result()
		if errors.Is(err, redis.Nil) {
			return "0", nil
		}
		return val, err
	})
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw.(string), 10, 64)
}

func (c *RoomCache) lookup(ctx context.Context, key string) ([]domain.Room, bool) {
	raw, err := c.cb.Execute(func() (interface{}, error) {
		val, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return val, err
	})
	if err != nil {
		log.Printf("room cache: get %s: %v", key, err)
		return nil, false
	}

	val := raw.(string)
	if val == "" {
		return nil, false
	}

	var rooms []domain.Room
	if err := json.Unmarshal([]byte(val), &rooms); err != nil {
		log.Printf("room cache: discarding unreadable entry %s: %v", key, err)
		return nil, false
	}
	return rooms, true
}

func (c *RoomCache) store(ctx context.Context, key string, rooms []domain.Room) {
	data, err := json.Marshal(rooms)
	if err != nil {
		log.Printf("room cache: encode %s: %v", key, err)
		return
	}
	_, err = c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, string(data), c.ttl).Err()
	})
	if err != nil {
		log.Printf("room cache: set %s: %v", key, err)
	}
}

// invalidate moves readers to a fresh generation. Entries of older
// generations are left to expire.
func (c *RoomCache) invalidate(ctx context.Context) {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Incr(ctx, generationKey).Err()
	})
	if err != nil {
		log.Printf("room cache: invalidate: %v", err)
	}
}
