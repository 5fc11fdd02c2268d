package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/redis"
)

// Source hands out a fresh snapshot per call.
type Source interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

// AppDataReader is the slice of db.Store the scheduler needs.
type AppDataReader interface {
	GetAppData(ctx context.Context) (*model.AppData, error)
}

// AppDataCache is implemented by redis.Cache. StoreAppData must refuse a
// document when the generation moved since it was read.
type AppDataCache interface {
	AppData(ctx context.Context) (*model.AppData, error)
	Generation(ctx context.Context) (int64, error)
	StoreAppData(ctx context.Context, d *model.AppData, generation int64) error
}

// StoreSource reads the display document through an optional cache.
type StoreSource struct {
	store AppDataReader
	cache AppDataCache
}

// NewStoreSource builds a Source over store. cache may be nil.
func NewStoreSource(store AppDataReader, cache AppDataCache) *StoreSource {
	return &StoreSource{store: store, cache: cache}
}

// AppData returns the current document, preferring the cache. On a miss the
// cache generation is read before the store, so a document loaded just
// before an admin write is never cached over it.
func (s *StoreSource) AppData(ctx context.Context) (*model.AppData, error) {
	refill := false
	var generation int64
	if s.cache != nil {
		d, err := s.cache.AppData(ctx)
		if err == nil {
			return d, nil
		}
		log.Debug().Err(err).Msg("app data not cached, reading store")

		generation, err = s.cache.Generation(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to read cache generation, skipping refill")
		} else {
			refill = true
		}
	}

	d, err := s.store.GetAppData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load app data: %w", err)
	}
	if d == nil {
		return nil, errors.New("store returned no app data")
	}
	if refill {
		err := s.cache.StoreAppData(ctx, d, generation)
		switch {
		case errors.Is(err, redis.ErrStale):
			log.Debug().Msg("app data changed while loading, not caching")
		case err != nil:
			log.Warn().Err(err).Msg("failed to cache app data")
		}
	}
	return d, nil
}

func (s *StoreSource) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	d, err := s.AppData(ctx)
	if err != nil {
		return nil, err
	}
	return d.Snapshot(), nil
}
