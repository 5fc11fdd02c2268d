package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/config"
	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/redis"
)

// AppContext holds what the database-backed commands share. It is filled
// lazily so preview runs without any configuration.
type AppContext struct {
	Cfg   *config.Config
	Store db.Store
	Cache *redis.Cache
}

// Connect loads the configuration and opens the database.
func (a *AppContext) Connect() error {
	if a.Store != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.ConfigureLogger()

	if err := db.Init(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.Cfg = cfg
	a.Store = db.NewStore(db.DB, cfg.DisplayID)

	if cfg.RedisAddress != "" {
		client := redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		a.Cache = redis.NewCache(client, cfg.DisplayID)
	}
	return nil
}

// Invalidate drops the cached document so a running server picks up changes
// made from the command line.
func (a *AppContext) Invalidate(ctx context.Context) {
	if a.Cache == nil {
		return
	}
	if err := a.Cache.InvalidateAppData(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate cached app data")
	}
}

func (a *AppContext) Close() {
	if db.DB != nil {
		_ = db.Close()
	}
}
