package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/carescreen/internal/clock"
	"github.com/Nixie-Tech-LLC/carescreen/internal/config"
	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/carescreen/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Nixie-Tech-LLC/carescreen/internal/http/api/admin/control/endpoints"
	displayapi "github.com/Nixie-Tech-LLC/carescreen/internal/http/api/display/endpoints"
	"github.com/Nixie-Tech-LLC/carescreen/internal/storage"
)

// Dependencies are the services the HTTP layer is built from.
type Dependencies struct {
	Store  db.Store
	Source displayapi.DataSource
	Frames displayapi.FrameSource
	Clock  clock.Clock
	Files  storage.Storage
	Stream http.Handler
	Notify adminapi.Notify
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "display_id": cfg.DisplayID})
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(cfg.JWTSecret, deps.Store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Users:     deps.Store,
	},
		// control modules
		adminapi.DataModule(deps.Store, deps.Notify),
		adminapi.ScheduleModule(deps.Store, deps.Notify),
		adminapi.ResidentModule(deps.Store, deps.Notify, deps.Clock),
		adminapi.UploadModule(deps.Files),
		// session endpoints that require auth
		authapi.AuthSessionModule(cfg.JWTSecret, deps.Store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/display",
	},
		displayapi.DisplayModule(deps.Source, deps.Clock, deps.Frames, deps.Stream),
	)

	// Static content
	if !cfg.UseSpaces {
		r.Static(localUploadPrefix, cfg.UploadDir)
	}
}
