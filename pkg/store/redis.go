package store

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	backend "github.com/redis/go-redis/v9"

	errs "github.com/matzehuels/layoutgen/pkg/errors"
	"github.com/matzehuels/layoutgen/pkg/observability"
	"github.com/matzehuels/layoutgen/pkg/rotate"
)

// DefaultRedisPrefix is the key prefix used when none is configured.
const DefaultRedisPrefix = "layoutgen:layout:"

// RedisStore implements Store on Redis string keys <prefix><name>:<angle>.
// Build servers share generated layouts through it.
type RedisStore struct {
	client *backend.Client
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore connects to the Redis server at address.
func NewRedisStore(address, password string, db int, opts ...RedisOption) *RedisStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(rdb, opts...)
}

// NewRedisStoreFromClient creates a store from an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks that the server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "redis ping")
	}
	return nil
}

func (s *RedisStore) key(name string, angle rotate.Angle) string {
	return s.prefix + name + ":" + strconv.Itoa(int(angle))
}

// PutBase stores a base layout.
func (s *RedisStore) PutBase(ctx context.Context, name string, doc rotate.Document) error {
	if err := s.client.Set(ctx, s.key(name, rotate.Angle0), string(doc), 0).Err(); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "redis set base %s", name)
	}
	return nil
}

// Base returns the stored base layout.
func (s *RedisStore) Base(ctx context.Context, name string) (rotate.Document, bool, error) {
	return s.get(ctx, kindBase, s.key(name, rotate.Angle0))
}

// Variant returns the stored variant.
func (s *RedisStore) Variant(ctx context.Context, name string, angle rotate.Angle) (rotate.Document, bool, error) {
	return s.get(ctx, kindVariant, s.key(name, angle))
}

// PutVariant stores a variant without expiration.
func (s *RedisStore) PutVariant(ctx context.Context, name string, angle rotate.Angle, doc rotate.Document) error {
	if err := s.client.Set(ctx, s.key(name, angle), string(doc), 0).Err(); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "redis set %s", s.key(name, angle))
	}
	observability.Store().OnWrite(ctx, BackendRedis, len(doc))
	return nil
}

// DeleteVariant removes a variant.
func (s *RedisStore) DeleteVariant(ctx context.Context, name string, angle rotate.Angle) error {
	n, err := s.client.Del(ctx, s.key(name, angle)).Result()
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "redis del %s", s.key(name, angle))
	}
	if n > 0 {
		observability.Store().OnDelete(ctx, BackendRedis)
	}
	return nil
}

// List scans for base layout keys.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var (
		names  []string
		cursor uint64
	)
	suffix := ":" + strconv.Itoa(int(rotate.Angle0))
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*"+suffix, 100).Result()
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeIO, err, "redis scan")
		}
		for _, k := range keys {
			name := strings.TrimSuffix(strings.TrimPrefix(k, s.prefix), suffix)
			if name != "" {
				names = append(names, name)
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) get(ctx context.Context, kind, key string) (rotate.Document, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, backend.Nil) {
		observability.Store().OnRead(ctx, BackendRedis, kind, false)
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.Wrap(errs.ErrCodeIO, err, "redis get %s", key)
	}
	observability.Store().OnRead(ctx, BackendRedis, kind, true)
	return rotate.Document(val), true, nil
}

// Ensure RedisStore implements Store and Lister.
var (
	_ Store  = (*RedisStore)(nil)
	_ Lister = (*RedisStore)(nil)
)
