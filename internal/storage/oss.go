package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/fuazim/fitcamp/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossBucket interface {
	PutObject(objectKey string, reader io.Reader, options ...oss.Option) error
}

type OSSUploader struct {
	bucket   ossBucket
	name     string
	endpoint string
}

func NewOSSUploader(cfg config.OSSConfig) (*OSSUploader, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket: %w", err)
	}

	return &OSSUploader{bucket: bucket, name: cfg.Bucket, endpoint: cfg.Endpoint}, nil
}

func (u *OSSUploader) Driver() string { return config.StorageOSS }

// Upload assumes a public-read bucket and returns the virtual-hosted URL.
func (u *OSSUploader) Upload(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	key := objectName(folder, filename, time.Now())

	opts := []oss.Option{oss.WithContext(ctx)}
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		opts = append(opts, oss.ContentType(ct))
	}

	if err := u.bucket.PutObject(key, file, opts...); err != nil {
		return "", fmt.Errorf("oss put %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.%s/%s", u.name, u.endpoint, key), nil
}
