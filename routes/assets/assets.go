package assets

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/tjlizz/simple-chat-app/controllers"
	"github.com/tjlizz/simple-chat-app/pkg/config"
	"github.com/tjlizz/simple-chat-app/pkg/services"
)

// Register registers the stored-asset routes. Uploaded files go through
// explicit handlers (not gin Static) because fetches need a 404 contract and
// the background needs a per-user DB lookup with a default fallback.
func Register(r *gin.Engine, bg, chat *services.ImageStore, cfg *config.Config) {
	r.GET("/img/bg.png", controllers.Background(bg, filepath.Join(cfg.StaticDir, "default_bg.png")))
	r.GET("/uploads/:user_id/:filename", controllers.ServeStored(bg))
	r.GET("/chat_uploads/:user_id/:filename", controllers.ServeStored(chat))
}
