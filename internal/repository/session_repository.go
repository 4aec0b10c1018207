package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionData is the server-side record behind an issued token.
type SessionData struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionRepository keeps sessions in Redis. With a nil client every
// session is considered live and writes are no-ops.
type SessionRepository struct {
	RDB *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{RDB: rdb}
}

func (r *SessionRepository) Enabled() bool {
	return r != nil && r.RDB != nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (r *SessionRepository) Save(ctx context.Context, id string, session *SessionData) error {
	if !r.Enabled() {
		return nil
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", id)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.RDB.Set(ctx, sessionKey(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Exists reports whether the session is still live.
func (r *SessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	if !r.Enabled() {
		return true, nil
	}
	n, err := r.RDB.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session existence: %w", err)
	}
	return n > 0, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if !r.Enabled() {
		return nil
	}
	if err := r.RDB.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
