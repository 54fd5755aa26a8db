package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

// Named keys the addon persists between restarts.
const (
	KeyCategories = "categories"
	KeyCatalogs   = "catalogs"
	KeyChannels   = "channels"
)

const (
	UseRedisFlag = "use-redis-store"

	keyPrefix = "vaders:"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.BoolFlag{
			Name:   UseRedisFlag,
			Usage:  "persist addon state in redis",
			EnvVar: "USE_REDIS_STORE",
		},
	)
}

// Store is a key-value store for JSON-encoded addon state. When no redis
// client is provided it degrades to a process-local map, so state simply
// does not survive a restart.
type Store struct {
	cl  *cs.RedisClient
	mu  sync.RWMutex
	mem map[string][]byte
}

func New(cl *cs.RedisClient) *Store {
	return &Store{
		cl:  cl,
		mem: make(map[string][]byte),
	}
}

// Get unmarshals the value stored under key into target and reports whether
// the key was present.
func (s *Store) Get(ctx context.Context, key string, target any) (bool, error) {
	raw, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return true, errors.Wrapf(err, "failed to unmarshal stored key %v", key)
	}
	return true, nil
}

// Set stores the JSON encoding of v under key.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal key %v", key)
	}
	if s.cl != nil {
		if err := s.cl.Get().Set(ctx, keyPrefix+key, raw, 0).Err(); err != nil {
			return errors.Wrapf(err, "failed to store key %v", key)
		}
		return nil
	}
	s.mu.Lock()
	s.mem[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.cl != nil {
		raw, err := s.cl.Get().Get(ctx, keyPrefix+key).Bytes()
		if err == redis.Nil {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, errors.Wrapf(err, "failed to load key %v", key)
		}
		return raw, true, nil
	}
	s.mu.RLock()
	raw, ok := s.mem[key]
	s.mu.RUnlock()
	return raw, ok, nil
}
