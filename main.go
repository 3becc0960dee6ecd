package main

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/config"
	"github.com/yeremiapane/daie-pos/database"
	"github.com/yeremiapane/daie-pos/kds"
	"github.com/yeremiapane/daie-pos/router"
	"github.com/yeremiapane/daie-pos/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	hub := kds.NewHub()
	r := router.SetupRouter(db, hub, router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
