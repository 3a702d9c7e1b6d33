package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tjlizz/simple-chat-app/pkg/services"
)

// UploadImage handles POST /api/upload and /api/chat_upload; the two routes
// differ only in which store they bind.
func UploadImage(store *services.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// reject oversize bodies before parsing the multipart form
		if max := store.MaxBytes(); max > 0 && c.Request.ContentLength > max+(64<<10) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}

		userID := strings.TrimSpace(c.PostForm("user_id"))
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		filename, ts, err := store.Save(userID, header)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFile):
				c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			case errors.Is(err, services.ErrUnsupportedType):
				c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
			case errors.Is(err, services.ErrTooLarge):
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "filename": filename, "timestamp": ts})
	}
}
