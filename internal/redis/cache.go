package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

var (
	// ErrMiss is returned when the requested key is not cached.
	ErrMiss = errors.New("cache miss")
	// ErrStale is returned by StoreAppData when the document was invalidated
	// after the caller read the generation.
	ErrStale = errors.New("cached app data invalidated since read")
)

const appDataTTL = 10 * time.Minute

// Cache stores the display document and the last published frame of one
// display.
type Cache struct {
	client    *redis.Client
	displayID string
}

func NewCache(client *redis.Client, displayID string) *Cache {
	return &Cache{client: client, displayID: displayID}
}

func (c *Cache) appDataKey() string {
	return fmt.Sprintf("display:%s:appdata", c.displayID)
}

func (c *Cache) generationKey() string {
	return fmt.Sprintf("display:%s:generation", c.displayID)
}

func (c *Cache) frameKey() string {
	return fmt.Sprintf("display:%s:frame", c.displayID)
}

// AppData returns a freshly decoded copy of the cached document.
func (c *Cache) AppData(ctx context.Context) (*model.AppData, error) {
	raw, err := c.client.Get(ctx, c.appDataKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var d model.AppData
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Warn().Err(err).Str("key", c.appDataKey()).Msg("dropping undecodable cached app data")
		_ = c.client.Del(ctx, c.appDataKey()).Err()
		return nil, ErrMiss
	}
	return &d, nil
}

// Generation returns the invalidation counter of the cached document. Read it
// before loading the document from the store and pass it to StoreAppData.
func (c *Cache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// StoreAppData caches d unless InvalidateAppData ran since generation was
// read, in which case d may predate the write and ErrStale is returned.
func (c *Cache) StoreAppData(ctx context.Context, d *model.AppData, generation int64) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode app data: %w", err)
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, c.generationKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.appDataKey(), raw, appDataTTL)
			return nil
		})
		return err
	}, c.generationKey())
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// InvalidateAppData drops the cached document and bumps the generation, so
// refills that read the store before this call are refused.
func (c *Cache) InvalidateAppData(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.appDataKey())
		pipe.Incr(ctx, c.generationKey())
		return nil
	})
	return err
}

// Publish records the latest frame. carescreenctl current reads it back.
func (c *Cache) Publish(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, c.frameKey(), payload, 0).Err()
}

// Frame returns the last recorded frame.
func (c *Cache) Frame(ctx context.Context) ([]byte, error) {
	raw, err := c.client.Get(ctx, c.frameKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return raw, err
}
