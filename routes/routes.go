package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tjlizz/simple-chat-app/pkg/config"
	"github.com/tjlizz/simple-chat-app/pkg/services"

	assetRoutes "github.com/tjlizz/simple-chat-app/routes/assets"
	messageRoutes "github.com/tjlizz/simple-chat-app/routes/messages"
	pageRoutes "github.com/tjlizz/simple-chat-app/routes/pages"
	settingsRoutes "github.com/tjlizz/simple-chat-app/routes/settings"
	uploadRoutes "github.com/tjlizz/simple-chat-app/routes/uploads"
)

// RegisterRoutes wires every surface onto the engine. bg and chat are the two
// attachment stores (separate roots and tables).
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, bg, chat *services.ImageStore) {
	pageRoutes.Register(r, cfg)

	api := r.Group("/api")
	messageRoutes.Register(api, db, cfg)
	uploadRoutes.Register(api, bg, chat)
	settingsRoutes.Register(api, db)

	assetRoutes.Register(r, bg, chat, cfg)
}
