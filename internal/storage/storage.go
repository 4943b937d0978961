package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/fuazim/fitcamp/internal/config"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var (
	ErrNoFile   = errors.New("no file provided")
	ErrNotImage = errors.New("file must be an image")
	ErrTooLarge = errors.New("file exceeds 5MB")
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string) (string, error)
	Driver() string
}

// New picks the uploader configured by STORAGE_DRIVER.
func New(cfg *config.Config) (Uploader, error) {
	switch cfg.StorageDriver {
	case config.StorageOSS:
		return NewOSSUploader(cfg.OSS)
	case config.StorageCloudinary:
		return NewCloudinaryUploader(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// ValidateImage checks the multipart header before anything is read.
func ValidateImage(fh *multipart.FileHeader) error {
	if fh == nil {
		return ErrNoFile
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return ErrNotImage
	}
	if fh.Size > MaxImageSize {
		return ErrTooLarge
	}
	return nil
}

// objectName builds folder/YYYYMMDD/<uuid><ext>.
func objectName(folder, filename string, now time.Time) string {
	name := fmt.Sprintf("%s/%s%s", now.Format("20060102"), uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	if folder == "" {
		return name
	}
	return strings.Trim(folder, "/") + "/" + name
}
