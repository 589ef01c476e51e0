package handlers

import (
	"errors"
	"net/http"

	"consultly/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// maxPhotoCount and maxPhotoBytes bound one upload request: at most 5
	// files, 10MB per file and 10MB in total.
	maxPhotoCount = 5
	maxPhotoBytes = 10 << 20
)

// StorageHandler serves the consultation photo upload endpoint.
type StorageHandler struct {
	Svc    storage.Service
	Logger *zap.Logger
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.Service, logger *zap.Logger) *StorageHandler {
	return &StorageHandler{Svc: svc, Logger: logger}
}

// UploadPhotosHandler uploads every file in the "photos" multipart field and
// returns one URL per file, in input order. The first failed upload aborts
// the whole request; there is no partial success.
func (h *StorageHandler) UploadPhotosHandler(c *gin.Context) {
	if !h.Svc.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service is not configured"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["photos"]
	if len(files) > maxPhotoCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many files; at most 5 photos per request"})
		return
	}
	var total int64
	for _, fh := range files {
		if fh.Size > maxPhotoBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the 10MB size limit"})
			return
		}
		total += fh.Size
	}
	if total > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photos exceed the 10MB total size limit"})
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.Logger.Error("failed to open uploaded file", zap.String("filename", fh.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photos"})
			return
		}
		url, err := h.Svc.UploadPhoto(c.Request.Context(), fh.Filename, f)
		f.Close()
		if err != nil {
			if errors.Is(err, storage.ErrNotConfigured) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service is not configured"})
				return
			}
			h.Logger.Error("photo upload failed", zap.String("filename", fh.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photos"})
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{"urls": urls})
}
