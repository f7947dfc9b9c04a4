package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "flowview:session:"
	redisIndexKey  = "flowview:sessions"
)

// RedisConfig configures the Redis session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// TTL is the session lifetime. Zero means DefaultTTL.
	TTL time.Duration
}

// RedisStore persists sessions in Redis so multiple server instances can
// share viewing sessions. Only the source text and the visibility snapshot
// are stored; the model is rebuilt by re-parsing on Get.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// redisRecord is the JSON document stored per session.
type redisRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name,omitempty"`
	Source     string          `json:"source"`
	Visibility map[string]bool `json:"visibility"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Get retrieves a session, rebuilding model and visibility from the stored
// source and snapshot.
func (st *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := st.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return Restore(rec.ID, rec.Name, rec.Source, rec.Visibility, rec.CreatedAt, rec.UpdatedAt), nil
}

// Put stores a session and registers it in the session index.
func (st *RedisStore) Put(ctx context.Context, s *Session) error {
	s.Touch()
	rec := redisRecord{
		ID:         s.ID,
		Name:       s.Name,
		Source:     s.Source,
		Visibility: s.Visibility().Snapshot(),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}

	pipe := st.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+s.ID, data, st.ttl)
	pipe.SAdd(ctx, redisIndexKey, s.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put session %s: %w", s.ID, err)
	}
	return nil
}

// Delete removes a session and its index entry.
func (st *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := st.client.TxPipeline()
	pipe.Del(ctx, redisKeyPrefix+id)
	pipe.SRem(ctx, redisIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// List returns the ids in the session index. Entries whose session key has
// expired are pruned from the index as a side effect.
func (st *RedisStore) List(ctx context.Context) ([]string, error) {
	ids, err := st.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	live := ids[:0]
	for _, id := range ids {
		n, err := st.client.Exists(ctx, redisKeyPrefix+id).Result()
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		if n == 0 {
			_ = st.client.SRem(ctx, redisIndexKey, id).Err()
			continue
		}
		live = append(live, id)
	}
	return live, nil
}

// Close closes the Redis client.
func (st *RedisStore) Close() error { return st.client.Close() }

var _ Store = (*RedisStore)(nil)
