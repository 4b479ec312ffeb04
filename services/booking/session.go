// File: kts/services/booking/session.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kts/models"
	"kts/utils"

	"github.com/go-redis/redis/v8"
)

const sessionTTL = 30 * time.Minute

// SessionStore persists wizard sessions between steps.
type SessionStore interface {
	Save(session *models.BookingSession) error
	Load(sessionID string) (*models.BookingSession, error)
	Delete(sessionID string) error
}

// RedisSessionStore keeps sessions in Redis with a rolling TTL.
type RedisSessionStore struct {
	Client *redis.Client
}

// NewRedisSessionStore returns a store backed by the shared session cache client.
func NewRedisSessionStore() *RedisSessionStore {
	return &RedisSessionStore{Client: utils.GetSessionCacheClient()}
}

func (s *RedisSessionStore) Save(session *models.BookingSession) error {
	ctx := context.Background()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Client.Set(ctx, session.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Load(sessionID string) (*models.BookingSession, error) {
	ctx := context.Background()
	data, err := s.Client.Get(ctx, sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(sessionID string) error {
	ctx := context.Background()
	if err := s.Client.Del(ctx, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}
