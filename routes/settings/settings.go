package settings

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tjlizz/simple-chat-app/controllers"
)

// Register registers the user-settings routes.
func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/user_settings/page_title", controllers.GetPageTitle(db))
	g.POST("/user_settings/page_title", controllers.SetPageTitle(db))
}
