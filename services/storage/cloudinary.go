package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// photoPrefix is the fixed object name prefix for uploaded consultation
// photos. The millisecond timestamp is the only collision guard.
const photoPrefix = "photo"

// CloudinaryService is the production Service implementation backed by
// Cloudinary. A nil client means the connection string was absent and every
// upload short-circuits with ErrNotConfigured.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService creates the blob adapter from a Cloudinary connection
// URL. An empty URL yields an unconfigured service rather than an error, so
// the rest of the API can still come up.
func NewCloudinaryService(connectionURL string) (*CloudinaryService, error) {
	if connectionURL == "" {
		return &CloudinaryService{}, nil
	}
	cld, err := cloudinary.NewFromURL(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryService: failed to initialize client: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

// Configured reports whether a connection string was supplied.
func (s *CloudinaryService) Configured() bool {
	return s.cld != nil
}

// UploadPhoto uploads one photo and returns its public URL. The object name
// keeps the client-supplied filename, prefixed with the upload timestamp.
func (s *CloudinaryService) UploadPhoto(ctx context.Context, filename string, data io.Reader) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	name := objectName(filename, time.Now())
	result, err := s.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		PublicID:     name,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryService: failed to upload %q: %w", filename, err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryService: upload of %q returned no URL", filename)
	}
	return result.SecureURL, nil
}

// objectName builds the storage object name for one uploaded photo.
func objectName(filename string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", photoPrefix, now.UnixMilli(), filename)
}
