package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"consultly/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageRoutes(svc storage.Service) func(r *gin.Engine) {
	h := NewStorageHandler(svc, testLogger())
	return func(r *gin.Engine) {
		r.POST("/upload-photos", h.UploadPhotosHandler)
	}
}

func TestUploadPhotos_OrderPreserved(t *testing.T) {
	for k := 0; k <= 5; k++ {
		t.Run(fmt.Sprintf("%d files", k), func(t *testing.T) {
			svc := &fakeStorage{configured: true}

			var names []string
			for i := 0; i < k; i++ {
				names = append(names, fmt.Sprintf("pic-%d.jpg", i))
			}
			body, contentType := multipartBody(names...)
			req := httptest.NewRequest(http.MethodPost, "/upload-photos", body)
			req.Header.Set("Content-Type", contentType)
			rec := perform(storageRoutes(svc), req)

			assert.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				URLs []string `json:"urls"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.Len(t, resp.URLs, k)
			for i, name := range names {
				assert.Equal(t, "https://cdn.example.com/"+name, resp.URLs[i])
			}
			assert.Equal(t, names, svc.uploaded)
		})
	}
}

func TestUploadPhotos_TooManyFiles(t *testing.T) {
	svc := &fakeStorage{configured: true}

	body, contentType := multipartBody("a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg")
	req := httptest.NewRequest(http.MethodPost, "/upload-photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := perform(storageRoutes(svc), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.uploaded)
}

func TestUploadPhotos_Unconfigured(t *testing.T) {
	svc := &fakeStorage{configured: false}

	body, contentType := multipartBody("a.jpg")
	req := httptest.NewRequest(http.MethodPost, "/upload-photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := perform(storageRoutes(svc), req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, svc.uploaded)
}

func TestUploadPhotos_UnconfiguredWithoutFiles(t *testing.T) {
	svc := &fakeStorage{configured: false}

	body, contentType := multipartBody()
	req := httptest.NewRequest(http.MethodPost, "/upload-photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := perform(storageRoutes(svc), req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUploadPhotos_UploadFailureAbortsRequest(t *testing.T) {
	svc := &fakeStorage{configured: true, err: errors.New("bucket on fire")}

	body, contentType := multipartBody("a.jpg", "b.jpg")
	req := httptest.NewRequest(http.MethodPost, "/upload-photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := perform(storageRoutes(svc), req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Generic message only; no per-file detail.
	assert.NotContains(t, rec.Body.String(), "bucket on fire")
	assert.NotContains(t, rec.Body.String(), "a.jpg")
}

func TestUploadPhotos_NotMultipart(t *testing.T) {
	svc := &fakeStorage{configured: true}

	req := httptest.NewRequest(http.MethodPost, "/upload-photos", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := perform(storageRoutes(svc), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
