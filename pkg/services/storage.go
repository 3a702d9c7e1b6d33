package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tjlizz/simple-chat-app/pkg/cache"
	utils "github.com/tjlizz/simple-chat-app/pkg/utills"
)

var (
	ErrMissingFile     = errors.New("no file supplied")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("file too large")
)

// ImageStore persists uploaded images under basePath/<user_id>/ and records a
// metadata row per upload. Backgrounds and chat images are two instances with
// separate roots and tables; they never share state.
type ImageStore struct {
	db       *gorm.DB
	basePath string
	table    string
	maxBytes int64
	cache    *cache.Cache
	cacheTTL time.Duration
}

// NewImageStore builds a store writing into basePath and recording rows in
// table. c may be nil to disable latest-lookup caching.
func NewImageStore(db *gorm.DB, basePath, table string, maxBytes int64, c *cache.Cache, cacheTTL time.Duration) *ImageStore {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		log.Printf("[storage] mkdir %s: %v", basePath, err)
	}
	return &ImageStore{
		db:       db,
		basePath: basePath,
		table:    table,
		maxBytes: maxBytes,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// MaxBytes returns the payload cap for pre-parse Content-Length checks.
func (s *ImageStore) MaxBytes() int64 { return s.maxBytes }

// Save validates and persists one uploaded file, then appends its metadata
// row. Validation order: file present, extension allow-listed, size within
// cap. Nothing touches disk until all three pass.
func (s *ImageStore) Save(userID string, header *multipart.FileHeader) (string, int64, error) {
	if header == nil || strings.TrimSpace(header.Filename) == "" {
		return "", 0, ErrMissingFile
	}
	if !utils.AllowedImageExt(header.Filename) {
		return "", 0, ErrUnsupportedType
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return "", 0, ErrTooLarge
	}

	userDir := filepath.Join(s.basePath, utils.SanitizeFilename(userID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create user dir: %w", err)
	}

	ts := time.Now().UnixMilli()
	stored := fmt.Sprintf("%d_%s_%s", ts, uuid.NewString()[:8], utils.SanitizeFilename(header.Filename))

	src, err := header.Open()
	if err != nil {
		return "", 0, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(userDir, stored)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", 0, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", 0, fmt.Errorf("save file: %w", err)
	}

	row := map[string]any{"user_id": userID, "filename": stored, "timestamp": ts}
	if err := s.db.Table(s.table).Create(row).Error; err != nil {
		// the bytes are useless without a metadata row
		os.Remove(dstPath)
		return "", 0, fmt.Errorf("record upload: %w", err)
	}

	s.cache.Delete(s.cacheKey(userID))
	return stored, ts, nil
}

// Latest returns the newest stored filename for the user, or false if the
// user has never uploaded. Hits are cached; Save invalidates.
func (s *ImageStore) Latest(userID string) (string, bool) {
	key := s.cacheKey(userID)
	if v, ok := s.cache.Get(key); ok {
		return v.(string), true
	}

	var filenames []string
	err := s.db.Table(s.table).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(1).
		Pluck("filename", &filenames).Error
	if err != nil {
		log.Printf("[storage] latest lookup %s/%s: %v", s.table, userID, err)
		return "", false
	}
	if len(filenames) == 0 {
		return "", false
	}

	s.cache.Set(key, filenames[0], s.cacheTTL)
	return filenames[0], true
}

// FilePath resolves a stored filename to its on-disk path. Both segments are
// rejected unless they are plain path components.
func (s *ImageStore) FilePath(userID, filename string) (string, bool) {
	if !utils.SafeSegment(userID) || !utils.SafeSegment(filename) {
		return "", false
	}
	p := filepath.Join(s.basePath, utils.SanitizeFilename(userID), filename)
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

func (s *ImageStore) cacheKey(userID string) string {
	return cache.KeyFromStrings("latest", s.table, userID)
}
