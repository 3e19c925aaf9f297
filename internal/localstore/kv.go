// Package localstore provides the durable keyed store the client keeps
// its collections in, and the adapter that serializes them in and out.
// The store is the authoritative fast-path: the UI never blocks on the
// network because every mutation lands here first.
package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Namespaced keys, one per collection.
const (
	KeyArticles    = "wiki:articles"
	KeyCategories  = "wiki:categories"
	KeyCurrentUser = "wiki:current_user"
)

// KV is the persistence context handed to the state controller: a keyed
// byte store with get/set/clear scoped to named keys. Implementations
// must keep values until explicitly cleared — persisted state outlives
// the process.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the value under the key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes the key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error
}

// ValkeyKV is a KV backed by a Valkey (Redis-compatible) server.
// Values are stored without TTL.
type ValkeyKV struct {
	client *redis.Client
}

// NewValkeyKV returns a KV backed by the given Valkey client.
func NewValkeyKV(client *redis.Client) *ValkeyKV {
	return &ValkeyKV{client: client}
}

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}
	return client, nil
}

// Get implements KV.
func (s *ValkeyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return val, true, nil
}

// Set implements KV.
func (s *ValkeyKV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

// Clear implements KV.
func (s *ValkeyKV) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("valkey del %s: %w", key, err)
	}
	return nil
}
