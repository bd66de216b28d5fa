// Package storage uploads request content to an S3-compatible object store
// so workflows reference documents by URL instead of carrying bytes around.
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gistloop/gistloop/pkg/config"
)

// Uploaded describes one stored object.
type Uploaded struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	MIME  string `json:"mime"`
	Title string `json:"title"`
}

// Client wraps the object store connection.
type Client struct {
	mc  *minio.Client
	cfg *config.StorageConfig
}

// New connects to the configured object store.
func New(cfg *config.StorageConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("storage is not configured")
	}

	secure := cfg.UseSSL == nil || *cfg.UseSSL
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Client{mc: mc, cfg: cfg}, nil
}

// UploadFile stores a document under a content-addressed key and returns its
// location.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte, contentType string) (*Uploaded, error) {
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = guessMIME(name)
	}

	key := c.destKey(name, data, time.Now())
	_, err := c.mc.PutObject(ctx, c.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", name, err)
	}

	slog.Info("Uploaded object", "bucket", c.cfg.Bucket, "key", key, "bytes", len(data))
	return &Uploaded{
		Key:   key,
		URL:   c.objectURL(key),
		MIME:  contentType,
		Title: path.Base(name),
	}, nil
}

// UploadText stores raw text under a generated file name.
func (c *Client) UploadText(ctx context.Context, text string) (*Uploaded, error) {
	name := fmt.Sprintf("text-input-%s.txt", strings.ReplaceAll(uuid.NewString(), "-", ""))
	return c.UploadFile(ctx, name, []byte(text), "text/plain")
}

// destKey builds the object key: <prefix>/<YYYY-MM>/<name>-<hash8>/<name>.
// The content hash in the folder keeps re-uploads of changed files apart
// while identical content lands on the same key.
func (c *Client) destKey(name string, data []byte, now time.Time) string {
	base := path.Base(name)
	sum := sha256.Sum256(data)
	hash := fmt.Sprintf("%x", sum)[:8]
	yearMonth := now.Format("2006-01")

	parts := []string{}
	if p := strings.Trim(c.cfg.Prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, yearMonth, fmt.Sprintf("%s-%s", base, hash), base)
	return path.Join(parts...)
}

// objectURL builds the externally reachable URL for a key.
func (c *Client) objectURL(key string) string {
	if c.cfg.PublicBaseURL != "" {
		return strings.TrimRight(c.cfg.PublicBaseURL, "/") + "/" + c.cfg.Bucket + "/" + key
	}
	scheme := "https"
	if c.cfg.UseSSL != nil && !*c.cfg.UseSSL {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.cfg.Endpoint, c.cfg.Bucket, key)
}

func guessMIME(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
