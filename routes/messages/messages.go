package messages

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tjlizz/simple-chat-app/controllers"
	"github.com/tjlizz/simple-chat-app/middleware"
	"github.com/tjlizz/simple-chat-app/pkg/config"
)

// Register registers the message poll/post routes.
func Register(g *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	g.GET("/messages", controllers.ListMessages(db, cfg.MessageWindow))
	g.POST("/messages", middleware.RateLimit(), controllers.PostMessage(db))
}
