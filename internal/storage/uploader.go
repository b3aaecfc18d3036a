// Package storage stores uploaded images in a MinIO bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/thuwalaco/thuwala-site/internal/config"
)

// ErrBadExtension is returned before anything is written when the uploaded
// file's extension is not in the allow-list.
var ErrBadExtension = errors.New("file type not allowed")

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Uploader wraps a MinIO client bound to a single bucket.
type Uploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewUploader connects to MinIO and ensures the bucket exists.
func NewUploader(ctx context.Context, cfg config.MinIO) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio bucket create: %w", err)
		}
	}

	return &Uploader{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(cfg.PublicURL, "/")}, nil
}

// AllowedFile reports whether the filename carries an accepted image extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename strips path components and replaces unsafe characters so
// the original name can be embedded in the object key.
func SanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "upload"
	}
	return base
}

// SaveImage validates the extension, then stores the file under
// <subdir>/<unix-timestamp>_<sanitized-name> and returns the public URL.
// Validation happens before any byte is written.
func (u *Uploader) SaveImage(ctx context.Context, subdir, filename string, file io.Reader, size int64) (string, error) {
	if !AllowedFile(filename) {
		return "", ErrBadExtension
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := path.Join(subdir, fmt.Sprintf("%d_%s", time.Now().Unix(), SanitizeFilename(filename)))

	_, err := u.client.PutObject(ctx, u.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filepath.Base(filename),
				"uploaded-at":       time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("minio upload: %w", err)
	}

	return u.URL(objectName), nil
}

// DeleteImage removes an object by its public URL or object key. Unknown
// URLs are ignored so stale references never block an entity delete.
func (u *Uploader) DeleteImage(ctx context.Context, ref string) error {
	objectName := strings.TrimPrefix(ref, u.publicURL+"/"+u.bucket+"/")
	objectName = strings.TrimPrefix(objectName, "/")
	if objectName == "" || strings.Contains(objectName, "://") {
		return nil
	}
	if err := u.client.RemoveObject(ctx, u.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete: %w", err)
	}
	return nil
}

// URL builds the public URL for an object key.
func (u *Uploader) URL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, objectName)
}
