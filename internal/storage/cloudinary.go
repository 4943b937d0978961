package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/fuazim/fitcamp/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

type CloudinaryUploader struct {
	api  cloudinaryAPI
	root string
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{api: &cld.Upload, root: cfg.Folder}, nil
}

func (u *CloudinaryUploader) Driver() string { return config.StorageCloudinary }

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	key := objectName(path.Join(u.root, folder), filename, time.Now())
	dir, base := path.Split(key)

	res, err := u.api.Upload(ctx, file, uploader.UploadParams{
		Folder:       strings.TrimSuffix(dir, "/"),
		PublicID:     strings.TrimSuffix(base, path.Ext(base)),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res == nil || res.SecureURL == "" {
		return "", errors.New("cloudinary upload returned no url")
	}
	return res.SecureURL, nil
}
