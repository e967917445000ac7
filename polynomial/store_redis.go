package polynomial

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string        `json:"addr"`
	Password string        `json:"password,omitempty"`
	DB       int           `json:"db,omitempty"`
	TTL      time.Duration `json:"ttl,omitempty"`
}

// RedisStore implements [Store] using Redis, so that the polynomials built by one
// process are reused by the others.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed store and checks the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func (s *RedisStore) Load(ctx context.Context, key Key) (*Polynomial, error) {
	data, err := s.client.Get(ctx, StoreKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get polynomial: %w", err)
	}

	poly := new(Polynomial)
	if err := poly.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("unmarshal polynomial: %w", err)
	}

	return poly, nil
}

func (s *RedisStore) Save(ctx context.Context, key Key, poly *Polynomial) error {
	data, err := poly.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal polynomial: %w", err)
	}

	if err := s.client.Set(ctx, StoreKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set polynomial: %w", err)
	}

	return nil
}

// Delete removes the polynomial stored under key.
func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, StoreKey(key)).Err(); err != nil {
		return fmt.Errorf("delete polynomial: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
