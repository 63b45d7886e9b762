package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
	ContentTypeMP3  = "audio/mpeg"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}

type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Publisher uploads media to an S3-compatible bucket and hands back a public URL.
type Publisher struct {
	store     objectStore
	bucket    string
	publicURL string
}

func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is empty")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Publisher{
		store:     client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Publish stores data under filename and returns its public URL.
func (p *Publisher) Publish(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to publish empty object %s", filename)
	}

	_, err := p.store.PutObject(ctx, p.bucket, filename, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	return p.URL(filename), nil
}

func (p *Publisher) URL(filename string) string {
	return fmt.Sprintf("%s/%s/%s", p.publicURL, p.bucket, url.PathEscape(filename))
}
