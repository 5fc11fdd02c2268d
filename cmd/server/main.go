package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/clock"
	"github.com/Nixie-Tech-LLC/carescreen/internal/config"
	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/hub"
	"github.com/Nixie-Tech-LLC/carescreen/internal/mqtt"
	"github.com/Nixie-Tech-LLC/carescreen/internal/redis"
	"github.com/Nixie-Tech-LLC/carescreen/internal/scheduler"
)

func main() {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.ConfigureLogger()

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer db.Close()

	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(db.DB, cfg.DisplayID)
	clk := clock.System{Location: cfg.Timezone}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// redis is optional; without it every read goes to postgres
	var cache *redis.Cache
	source := scheduler.NewStoreSource(store, nil)
	if cfg.RedisAddress != "" {
		client := redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err := redis.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("address", cfg.RedisAddress).Msg("redis unreachable, continuing without cache")
		} else {
			cache = redis.NewCache(client, cfg.DisplayID)
			source = scheduler.NewStoreSource(store, cache)
		}
	}

	displays := hub.New()
	defer displays.Close()

	runner := scheduler.NewRunner(source, clk, cfg.TickInterval).
		AddPublisher("websocket", displays)
	if cache != nil {
		runner.AddPublisher("redis", cache)
	}
	if cfg.MQTTBrokerURL != "" {
		client, err := mqtt.Connect(cfg.MQTTBrokerURL, "carescreen-"+cfg.DisplayID)
		if err != nil {
			log.Fatal().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("mqtt connect")
		}
		publisher := mqtt.NewPublisher(client, cfg.DisplayID)
		defer publisher.Close()
		runner.AddPublisher("mqtt", publisher)
	}

	// every admin write drops the cached document and re-runs the selection
	notify := func(ctx context.Context) {
		if cache != nil {
			if err := cache.InvalidateAppData(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to invalidate cached app data")
			}
		}
		runner.Trigger()
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	// set up gin router
	r := gin.Default()
	RegisterRoutes(r, cfg, Dependencies{
		Store:  store,
		Source: source,
		Frames: runner,
		Clock:  clk,
		Files:  InitStorage(cfg),
		Stream: displays,
		Notify: notify,
	})

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}

	go func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("scheduler stopped")
		}
	}()

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Str("display_id", cfg.DisplayID).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
