package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime tunable. It is built once by Load at startup
// and handed to the stores and handlers explicitly.
type Config struct {
	AppEnv string
	Port   string

	DatabasePath  string
	StaticDir     string
	UploadDir     string
	ChatUploadDir string

	MaxUploadBytes int64
	MessageWindow  time.Duration

	RateLimitWindow   time.Duration
	RateLimitCapacity int
	DuplicateWindow   time.Duration

	BackgroundCacheTTL time.Duration
	CacheMaxItems      int
}

// loadAppEnv loads .env unless running in production, where all variables
// must come from the host environment.
func loadAppEnv(appEnv string) {
	if appEnv == "production" {
		return
	}
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}
}

func Load() *Config {
	appEnv := os.Getenv("APP_ENV")
	loadAppEnv(appEnv)

	cfg := &Config{
		AppEnv:        appEnv,
		Port:          envOr("PORT", "5000"),
		DatabasePath:  envOr("CHAT_DATABASE", "chat.db"),
		StaticDir:     envOr("STATIC_DIR", "./static"),
		UploadDir:     envOr("UPLOAD_DIR", "./uploads"),
		ChatUploadDir: envOr("CHAT_UPLOAD_DIR", "./chat_uploads"),

		MaxUploadBytes: int64(atoiOr(os.Getenv("MAX_UPLOAD_MB"), 16)) << 20,
		MessageWindow:  time.Duration(atoiOr(os.Getenv("MESSAGE_WINDOW_SECONDS"), 3600)) * time.Second,

		RateLimitWindow:   time.Duration(atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)) * time.Second,
		RateLimitCapacity: atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 30),
		DuplicateWindow:   time.Duration(atoiOr(os.Getenv("DUPLICATE_WINDOW_SECONDS"), 10)) * time.Second,

		BackgroundCacheTTL: time.Duration(atoiOr(os.Getenv("BG_CACHE_TTL_SECONDS"), 60)) * time.Second,
		CacheMaxItems:      atoiOr(os.Getenv("CACHE_MAX_ITEMS"), 500),
	}

	log.Printf("[config] AppEnv=%s Port=%s Database=%s", cfg.AppEnv, cfg.Port, cfg.DatabasePath)
	log.Printf("[config] uploads=%s chatUploads=%s maxUpload=%dB window=%s",
		cfg.UploadDir, cfg.ChatUploadDir, cfg.MaxUploadBytes, cfg.MessageWindow)

	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
