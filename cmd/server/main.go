package main

import (
	"log"

	"storefront-api/internal/api"
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/middleware"
	"storefront-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	logging.InitLogging()

	store, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer store.Close()

	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	gin.SetMode(cfg.Mode)

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())

	handler := api.NewHandler(cfg, store, rdb)
	handler.RegisterRoutes(r)

	logging.Infof("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
