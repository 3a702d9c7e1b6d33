package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tjlizz/simple-chat-app/pkg/services"
)

// Background handles GET /img/bg.png?user_id=. It serves the user's newest
// uploaded background, falling back to the bundled default asset when the
// user never uploaded one (or supplied no user_id).
func Background(store *services.ImageStore, defaultAsset string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.Query("user_id"); userID != "" {
			if filename, ok := store.Latest(userID); ok {
				if path, ok := store.FilePath(userID, filename); ok {
					c.File(path)
					return
				}
			}
		}
		c.File(defaultAsset)
	}
}

// ServeStored handles GET /uploads/:user_id/:filename and the chat_uploads
// twin. 404 on miss or on anything that is not a plain path segment.
func ServeStored(store *services.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, ok := store.FilePath(c.Param("user_id"), c.Param("filename"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(path)
	}
}
