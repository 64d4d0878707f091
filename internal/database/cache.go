package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"
)

const cacheOpTimeout = 5 * time.Second

// CacheBuilder wraps one key on one cache client. Values are stored as
// JSON so any model round-trips without registration. A nil client turns
// every operation into a miss instead of a failure.
type CacheBuilder struct {
	client CacheClient
	key    string
	expiry time.Duration
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{client: client, key: key}
}

func (b *CacheBuilder) WithExpiry(expiry time.Duration) *CacheBuilder {
	b.expiry = expiry
	return b
}

func (b *CacheBuilder) Set(value any) error {
	if b.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if b.expiry > 0 {
		return b.client.Do(ctx,
			b.client.B().Set().Key(b.key).Value(string(data)).Ex(b.expiry).Build()).Error()
	}
	return b.client.Do(ctx,
		b.client.B().Set().Key(b.key).Value(string(data)).Build()).Error()
}

// Get unmarshals the cached value into dest. The bool reports whether the
// key was present.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.client == nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	data, err := b.client.Do(ctx, b.client.B().Get().Key(b.key).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	return b.client.Do(ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
