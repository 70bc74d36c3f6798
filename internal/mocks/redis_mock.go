package mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for the Redis commands the room
// cache issues.
type MockRedisClient struct {
	mu   sync.RWMutex
	data map[string]mockRedisValue

	GetCalls  int
	SetCalls  int
	IncrCalls int

	// Error injection
	SetError  error
	GetError  error
	IncrError error
}

type mockRedisValue struct {
	value     string
	expiresAt time.Time
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		data: make(map[string]mockRedisValue),
	}
}

// Set stores a value with optional expiration.
func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	cmd := redis.NewStatusCmd(ctx)

	if m.SetError != nil {
		cmd.SetErr(m.SetError)
		return cmd
	}

	expiresAt := time.Time{}
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}

	m.data[key] = mockRedisValue{
		value:     fmt.Sprint(value),
		expiresAt: expiresAt,
	}

	cmd.SetVal("OK")
	return cmd
}

// Get retrieves a value by key, answering redis.Nil for missing or expired keys.
func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	cmd := redis.NewStringCmd(ctx)

	if m.GetError != nil {
		cmd.SetErr(m.GetError)
		return cmd
	}

	val, ok := m.data[key]
	if !ok || (!val.expiresAt.IsZero() && time.Now().After(val.expiresAt)) {
		cmd.SetErr(redis.Nil)
		return cmd
	}

	cmd.SetVal(val.value)
	return cmd
}

// Incr increments an integer key, treating a missing key as zero. The
// counter keeps any expiry it already had.
func (m *MockRedisClient) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.IncrCalls++
	cmd := redis.NewIntCmd(ctx)

	if m.IncrError != nil {
		cmd.SetErr(m.IncrError)
		return cmd
	}

	var n int64
	var expiresAt time.Time
	if val, ok := m.data[key]; ok && (val.expiresAt.IsZero() || time.Now().Before(val.expiresAt)) {
		parsed, err := strconv.ParseInt(val.value, 10, 64)
		if err != nil {
			cmd.SetErr(errors.New("ERR value is not an integer or out of range"))
			return cmd
		}
		n, expiresAt = parsed, val.expiresAt
	}
	n++

	m.data[key] = mockRedisValue{value: strconv.FormatInt(n, 10), expiresAt: expiresAt}
	cmd.SetVal(n)
	return cmd
}

// SetKey directly sets a key (for test setup).
func (m *MockRedisClient) SetKey(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = mockRedisValue{value: value}
}

// HasKey checks if a live key exists (for test assertions).
func (m *MockRedisClient) HasKey(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return false
	}
	return val.expiresAt.IsZero() || time.Now().Before(val.expiresAt)
}
