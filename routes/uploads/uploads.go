package uploads

import (
	"github.com/gin-gonic/gin"

	"github.com/tjlizz/simple-chat-app/controllers"
	"github.com/tjlizz/simple-chat-app/middleware"
	"github.com/tjlizz/simple-chat-app/pkg/services"
)

// Register registers the two upload endpoints: backgrounds and chat images.
func Register(g *gin.RouterGroup, bg, chat *services.ImageStore) {
	g.POST("/upload", middleware.RateLimit(), controllers.UploadImage(bg))
	g.POST("/chat_upload", middleware.RateLimit(), controllers.UploadImage(chat))
}
