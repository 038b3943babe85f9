package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/config"
	"github.com/go-redis/redis/v8"
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

// NewRedisRepositoryWithClient wraps an existing client.
func NewRedisRepositoryWithClient(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client, config: &config.RedisConfig{}}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func cartKey(session string) string {
	return fmt.Sprintf("cart:%s", session)
}

// CartSessions persists cart snapshots in redis with a sliding TTL.
type CartSessions struct {
	redis *RedisRepository
	ttl   time.Duration
}

func NewCartSessions(r *RedisRepository, ttl time.Duration) *CartSessions {
	return &CartSessions{redis: r, ttl: ttl}
}

func (s *CartSessions) Load(ctx context.Context, session string) (cart.Snapshot, bool, error) {
	var snap cart.Snapshot
	err := s.redis.GetJSON(ctx, cartKey(session), &snap)
	if errors.Is(err, redis.Nil) {
		return cart.Snapshot{}, false, nil
	}
	if err != nil {
		return cart.Snapshot{}, false, fmt.Errorf("failed to load cart %s: %w", session, err)
	}
	return snap, true, nil
}

func (s *CartSessions) Save(ctx context.Context, session string, snap cart.Snapshot) error {
	if err := s.redis.SetJSON(ctx, cartKey(session), snap, s.ttl); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", session, err)
	}
	return nil
}

func (s *CartSessions) Delete(ctx context.Context, session string) error {
	return s.redis.Del(ctx, cartKey(session))
}
