package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/tjlizz/simple-chat-app/middleware"
	"github.com/tjlizz/simple-chat-app/models"
)

type postResponse struct {
	Success   bool  `json:"success"`
	ID        uint  `json:"id"`
	Timestamp int64 `json:"timestamp"`
}

type listEntry struct {
	ID             uint   `json:"id"`
	UserID         string `json:"user_id"`
	Message        string `json:"message"`
	Timestamp      int64  `json:"timestamp"`
	IsSelf         bool   `json:"is_self"`
	ReplyTo        *uint  `json:"reply_to"`
	ReplyToMessage *struct {
		ID        uint   `json:"id"`
		UserID    string `json:"user_id"`
		Message   string `json:"message"`
		Timestamp int64  `json:"timestamp"`
	} `json:"reply_to_message"`
}

func TestPostAndListMessage(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter()
	r.POST("/api/messages", PostMessage(db))
	r.GET("/api/messages", ListMessages(db, time.Hour))

	before := time.Now().UnixMilli()
	rr := doJSON(t, r, http.MethodPost, "/api/messages", map[string]any{
		"user_id": "alice", "message": "hi",
	})
	after := time.Now().UnixMilli()
	if rr.Code != http.StatusOK {
		t.Fatalf("post status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	var posted postResponse
	decodeJSON(t, rr, &posted)
	if !posted.Success || posted.ID == 0 {
		t.Fatalf("unexpected post response: %+v", posted)
	}
	if posted.Timestamp < before || posted.Timestamp > after {
		t.Fatalf("timestamp %d outside call window [%d, %d]", posted.Timestamp, before, after)
	}

	rr = doJSON(t, r, http.MethodGet, "/api/messages?after=0", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rr.Code)
	}
	var views []listEntry
	decodeJSON(t, rr, &views)
	if len(views) != 1 {
		t.Fatalf("expected 1 message, got %d", len(views))
	}
	v := views[0]
	if v.UserID != "alice" || v.Message != "hi" || v.Timestamp != posted.Timestamp {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v.IsSelf {
		t.Fatalf("is_self must always be false server-side")
	}
	if v.ReplyTo != nil {
		t.Fatalf("expected reply_to null, got %v", *v.ReplyTo)
	}
}

func TestPostMessageMissingFields(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter()
	r.POST("/api/messages", PostMessage(db))

	cases := []map[string]any{
		{"message": "hi"},
		{"user_id": "alice"},
		{"user_id": "", "message": "hi"},
		{"user_id": "alice", "message": "  "},
		nil,
	}
	for i, body := range cases {
		rr := doJSON(t, r, http.MethodPost, "/api/messages", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rr.Code)
		}
		var resp map[string]any
		decodeJSON(t, rr, &resp)
		if _, ok := resp["error"]; !ok {
			t.Errorf("case %d: missing error field in %s", i, rr.Body.String())
		}
	}
}

func TestDuplicateMessagePostRejected(t *testing.T) {
	middleware.SetDuplicateTTL(time.Minute)
	defer middleware.SetDuplicateTTL(10 * time.Second)

	db := newTestDB(t)
	r := newTestRouter()
	r.POST("/api/messages", PostMessage(db))

	body := map[string]any{"user_id": "dup-user", "message": "same thing"}
	if rr := doJSON(t, r, http.MethodPost, "/api/messages", body); rr.Code != http.StatusOK {
		t.Fatalf("first post: status = %d", rr.Code)
	}
	if rr := doJSON(t, r, http.MethodPost, "/api/messages", body); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("repeated post: status = %d, want 429", rr.Code)
	}

	// a different user may say the same thing
	other := map[string]any{"user_id": "dup-user-2", "message": "same thing"}
	if rr := doJSON(t, r, http.MethodPost, "/api/messages", other); rr.Code != http.StatusOK {
		t.Fatalf("other user: status = %d, want 200", rr.Code)
	}

	var count int64
	if err := db.Table("messages").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 stored messages, got %d", count)
	}
}

func TestListMessagesCursorExclusive(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter()
	r.POST("/api/messages", PostMessage(db))
	r.GET("/api/messages", ListMessages(db, time.Hour))

	rr := doJSON(t, r, http.MethodPost, "/api/messages", map[string]any{
		"user_id": "alice", "message": "first",
	})
	var posted postResponse
	decodeJSON(t, rr, &posted)

	rr = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/messages?after=%d", posted.Timestamp), nil)
	var views []listEntry
	decodeJSON(t, rr, &views)
	for _, v := range views {
		if v.Timestamp <= posted.Timestamp {
			t.Fatalf("returned message at %d despite cursor %d", v.Timestamp, posted.Timestamp)
		}
	}
	if len(views) != 0 {
		t.Fatalf("expected no messages past cursor, got %d", len(views))
	}
}

func TestListMessagesHourWindow(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter()
	r.GET("/api/messages", ListMessages(db, time.Hour))

	now := time.Now().UnixMilli()
	old := models.Message{UserID: "bob", Text: "stale", Timestamp: now - 2*3600*1000}
	fresh := models.Message{UserID: "bob", Text: "fresh", Timestamp: now - 1000}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("seed old message: %v", err)
	}
	if err := db.Create(&fresh).Error; err != nil {
		t.Fatalf("seed fresh message: %v", err)
	}

	// cursor far in the past must not re-open history beyond the window
	rr := doJSON(t, r, http.MethodGet, "/api/messages?after=0", nil)
	var views []listEntry
	decodeJSON(t, rr, &views)
	if len(views) != 1 {
		t.Fatalf("expected only the fresh message, got %d", len(views))
	}
	if views[0].Message != "fresh" {
		t.Fatalf("expected fresh message, got %q", views[0].Message)
	}
}

func TestListMessagesAscendingOrder(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter()
	r.GET("/api/messages", ListMessages(db, time.Hour))

	now := time.Now().UnixMilli()
	for i, ts := range []int64{now - 30, now - 10, now - 20} {
		m := models.Message{UserID: "u", Text: fmt.Sprintf("m%d", i), Timestamp: ts}
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rr := doJSON(t, r, http.MethodGet, "/api/messages?after=0", nil)
	var views []listEntry
	decodeJSON(t, rr, &views)
	if len(views) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i].Timestamp < views[i-1].Timestamp {
			t.Fatalf("messages not in ascending timestamp order: %+v", views)
		}
	}
}

func TestReplySnapshot(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter()
	r.POST("/api/messages", PostMessage(db))
	r.GET("/api/messages", ListMessages(db, time.Hour))

	rr := doJSON(t, r, http.MethodPost, "/api/messages", map[string]any{
		"user_id": "alice", "message": "original",
	})
	var first postResponse
	decodeJSON(t, rr, &first)

	rr = doJSON(t, r, http.MethodPost, "/api/messages", map[string]any{
		"user_id": "bob", "message": "a reply", "reply_to": first.ID,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("reply post status = %d", rr.Code)
	}

	rr = doJSON(t, r, http.MethodGet, "/api/messages?after=0", nil)
	var views []listEntry
	decodeJSON(t, rr, &views)
	if len(views) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(views))
	}
	reply := views[1]
	if reply.ReplyTo == nil || *reply.ReplyTo != first.ID {
		t.Fatalf("reply_to not carried: %+v", reply)
	}
	if reply.ReplyToMessage == nil {
		t.Fatalf("expected embedded reply snapshot")
	}
	if reply.ReplyToMessage.UserID != "alice" || reply.ReplyToMessage.Message != "original" ||
		reply.ReplyToMessage.Timestamp != first.Timestamp {
		t.Fatalf("snapshot mismatch: %+v", reply.ReplyToMessage)
	}
}

func TestReplyToMissingMessage(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter()
	r.POST("/api/messages", PostMessage(db))
	r.GET("/api/messages", ListMessages(db, time.Hour))

	rr := doJSON(t, r, http.MethodPost, "/api/messages", map[string]any{
		"user_id": "bob", "message": "into the void", "reply_to": 9999,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("post status = %d, want 200 (reply_to is not validated at write time)", rr.Code)
	}

	rr = doJSON(t, r, http.MethodGet, "/api/messages?after=0", nil)
	var views []listEntry
	decodeJSON(t, rr, &views)
	if len(views) != 1 {
		t.Fatalf("expected 1 message, got %d", len(views))
	}
	v := views[0]
	if v.ReplyTo == nil || *v.ReplyTo != 9999 {
		t.Fatalf("dangling reply_to must keep the id: %+v", v)
	}
	if v.ReplyToMessage != nil {
		t.Fatalf("dangling reply_to must embed no snapshot: %+v", v.ReplyToMessage)
	}
}

func TestListMessagesEmptyIsArray(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter()
	r.GET("/api/messages", ListMessages(db, time.Hour))

	rr := doJSON(t, r, http.MethodGet, "/api/messages", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Body.String(); got != "[]" {
		t.Fatalf("empty poll must serialize as [], got %q", got)
	}
}
