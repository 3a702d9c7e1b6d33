package pages

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/tjlizz/simple-chat-app/pkg/config"
)

// Register serves the static chat UI.
func Register(r *gin.Engine, cfg *config.Config) {
	r.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
	r.Static("/static", cfg.StaticDir)
}
