package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tjlizz/simple-chat-app/models"
)

// GetPageTitle handles GET /api/user_settings/page_title?user_id=.
func GetPageTitle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.Query("user_id"))
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var s models.UserSetting
		err := db.First(&s, "user_id = ?", userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"success": true, "page_title": nil})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "page_title": s.PageTitle})
	}
}

// SetPageTitle handles POST /api/user_settings/page_title. An empty or absent
// title clears the setting. The whole row is upserted atomically, so exactly
// one row per user survives concurrent writers (last write wins).
func SetPageTitle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			UserID    string  `json:"user_id"`
			PageTitle *string `json:"page_title"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.UserID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var title *string
		if body.PageTitle != nil {
			if t := strings.TrimSpace(*body.PageTitle); t != "" {
				title = &t
			}
		}

		setting := models.UserSetting{
			UserID:    body.UserID,
			PageTitle: title,
			UpdatedAt: time.Now().UnixMilli(),
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"page_title", "updated_at"}),
		}).Create(&setting).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "page_title": title})
	}
}
