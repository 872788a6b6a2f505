package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jrkim-kr/echarts-ai-studio/internal/session/domain"
)

const (
	sessionKeyPrefix = "charts:session:" // session record: charts:session:{sid}
	workingKeyPrefix = "charts:working:" // working copy: charts:working:{sid}
	busyKeyPrefix    = "charts:busy:"    // in-flight generation flag: charts:busy:{sid}
	sessionTTL       = 30 * 24 * time.Hour
	defaultBusyTTL   = 2 * time.Minute
)

// RedisStore keeps session state in Redis. Working copies expire after
// domain.WorkingCopyTTL; the busy flag expires on its own if a request
// dies without releasing it.
type RedisStore struct {
	client  *redis.Client
	busyTTL time.Duration
}

// NewRedisStore creates a store. busyTTL <= 0 uses a two minute default;
// it should exceed the model timeout.
func NewRedisStore(client *redis.Client, busyTTL time.Duration) *RedisStore {
	if busyTTL <= 0 {
		busyTTL = defaultBusyTTL
	}
	return &RedisStore{client: client, busyTTL: busyTTL}
}

func (r *RedisStore) Create(ctx context.Context, s *domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.sessionKey(s.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, sid string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sid)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// SetProject points the session at projectID; empty clears it.
func (r *RedisStore) SetProject(ctx context.Context, sid, projectID string) error {
	s, err := r.Get(ctx, sid)
	if err != nil {
		return err
	}
	s.ProjectID = projectID
	return r.Create(ctx, s)
}

func (r *RedisStore) SaveWorkingCopy(ctx context.Context, sid string, wc *domain.WorkingCopy) error {
	data, err := json.Marshal(wc)
	if err != nil {
		return fmt.Errorf("failed to marshal working copy: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.workingKey(sid), data, domain.WorkingCopyTTL)
	pipe.Expire(ctx, r.sessionKey(sid), sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save working copy: %w", err)
	}
	return nil
}

// WorkingCopy returns nil when nothing restorable is stored.
func (r *RedisStore) WorkingCopy(ctx context.Context, sid string) (*domain.WorkingCopy, error) {
	data, err := r.client.Get(ctx, r.workingKey(sid)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get working copy: %w", err)
	}

	var wc domain.WorkingCopy
	if err := json.Unmarshal([]byte(data), &wc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal working copy: %w", err)
	}
	if !wc.Fresh(time.Now()) {
		return nil, nil
	}
	return &wc, nil
}

func (r *RedisStore) ClearWorkingCopy(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.workingKey(sid)).Err(); err != nil {
		return fmt.Errorf("failed to clear working copy: %w", err)
	}
	return nil
}

// Acquire sets the busy flag, failing with domain.ErrBusy if it is held.
func (r *RedisStore) Acquire(ctx context.Context, sid string) error {
	ok, err := r.client.SetNX(ctx, r.busyKey(sid), time.Now().UTC().Format(time.RFC3339), r.busyTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to set busy flag: %w", err)
	}
	if !ok {
		return domain.ErrBusy
	}
	return nil
}

func (r *RedisStore) Release(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.busyKey(sid)).Err(); err != nil {
		return fmt.Errorf("failed to clear busy flag: %w", err)
	}
	return nil
}

func (r *RedisStore) sessionKey(sid string) string { return sessionKeyPrefix + sid }
func (r *RedisStore) workingKey(sid string) string { return workingKeyPrefix + sid }
func (r *RedisStore) busyKey(sid string) string    { return busyKeyPrefix + sid }
