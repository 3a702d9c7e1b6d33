package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tjlizz/simple-chat-app/middleware"
	"github.com/tjlizz/simple-chat-app/models"
	"github.com/tjlizz/simple-chat-app/pkg/cache"
	"github.com/tjlizz/simple-chat-app/pkg/config"
	"github.com/tjlizz/simple-chat-app/pkg/services"
	"github.com/tjlizz/simple-chat-app/routes"
)

func main() {
	cfg := config.Load()

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("failed to create database dir: %v", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// additive schema migration, run once at startup
	if err := db.AutoMigrate(
		&models.Message{},
		&models.BackgroundImage{},
		&models.ChatImage{},
		&models.UserSetting{},
	); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	c := cache.New(cfg.CacheMaxItems)
	bg := services.NewImageStore(db, cfg.UploadDir, "background_images", cfg.MaxUploadBytes, c, cfg.BackgroundCacheTTL)
	chat := services.NewImageStore(db, cfg.ChatUploadDir, "chat_images", cfg.MaxUploadBytes, nil, 0)

	middleware.SetRateLimitConfig(cfg.RateLimitWindow, cfg.RateLimitCapacity)
	middleware.SetDuplicateTTL(cfg.DuplicateWindow)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, cfg, bg, chat)
	r.Run(":" + cfg.Port)
}
