package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tjlizz/simple-chat-app/middleware"
	"github.com/tjlizz/simple-chat-app/models"
)

// replySnapshot is the referenced message's state captured at read time.
type replySnapshot struct {
	ID        uint   `json:"id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type messageView struct {
	ID             uint           `json:"id"`
	UserID         string         `json:"user_id"`
	Message        string         `json:"message"`
	Timestamp      int64          `json:"timestamp"`
	IsSelf         bool           `json:"is_self"` // always false; the client decides
	ReplyTo        *uint          `json:"reply_to"`
	ReplyToMessage *replySnapshot `json:"reply_to_message,omitempty"`
}

// PostMessage handles POST /api/messages.
func PostMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			UserID  string `json:"user_id"`
			Message string `json:"message"`
			ReplyTo *uint  `json:"reply_to"`
		}
		if err := c.ShouldBindJSON(&body); err != nil ||
			strings.TrimSpace(body.UserID) == "" || strings.TrimSpace(body.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		if !middleware.DuplicateGuard(body.UserID, body.Message) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "duplicate message"})
			return
		}

		msg := models.Message{
			UserID:    body.UserID,
			Text:      body.Message,
			Timestamp: time.Now().UnixMilli(),
			ReplyTo:   body.ReplyTo,
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "id": msg.ID, "timestamp": msg.Timestamp})
	}
}

// ListMessages handles GET /api/messages?after=cursor. Visibility is the
// intersection of "newer than the cursor" and "within the rolling window":
// a stale cursor never re-opens old history.
func ListMessages(db *gorm.DB, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		after, _ := strconv.ParseInt(c.DefaultQuery("after", "0"), 10, 64)
		floor := time.Now().UnixMilli() - window.Milliseconds()

		var msgs []models.Message
		if err := db.Where("timestamp > ? AND timestamp > ?", after, floor).
			Order("timestamp ASC").
			Find(&msgs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
			return
		}

		views := make([]messageView, 0, len(msgs))
		refs := resolveReplies(db, msgs)
		for _, m := range msgs {
			v := messageView{
				ID:        m.ID,
				UserID:    m.UserID,
				Message:   m.Text,
				Timestamp: m.Timestamp,
				ReplyTo:   m.ReplyTo,
			}
			if m.ReplyTo != nil {
				if ref, ok := refs[*m.ReplyTo]; ok {
					v.ReplyToMessage = &replySnapshot{
						ID:        ref.ID,
						UserID:    ref.UserID,
						Message:   ref.Text,
						Timestamp: ref.Timestamp,
					}
				}
				// dangling reply_to keeps the id but embeds nothing
			}
			views = append(views, v)
		}

		c.JSON(http.StatusOK, views)
	}
}

// resolveReplies fetches every referenced message in one query.
func resolveReplies(db *gorm.DB, msgs []models.Message) map[uint]models.Message {
	ids := make([]uint, 0)
	seen := map[uint]bool{}
	for _, m := range msgs {
		if m.ReplyTo != nil && !seen[*m.ReplyTo] {
			seen[*m.ReplyTo] = true
			ids = append(ids, *m.ReplyTo)
		}
	}
	refs := make(map[uint]models.Message, len(ids))
	if len(ids) == 0 {
		return refs
	}
	var rows []models.Message
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return refs
	}
	for _, r := range rows {
		refs[r.ID] = r
	}
	return refs
}
