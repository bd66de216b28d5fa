package storage

import (
	"crypto/sha256"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gistloop/gistloop/pkg/config"
)

func testClient(cfg config.StorageConfig) *Client {
	return &Client{cfg: &cfg}
}

func TestDestKey(t *testing.T) {
	c := testClient(config.StorageConfig{Prefix: "uploads"})
	data := []byte("document body")
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	sum := sha256.Sum256(data)
	hash := fmt.Sprintf("%x", sum)[:8]

	key := c.destKey("/tmp/report.pdf", data, now)
	assert.Equal(t, fmt.Sprintf("uploads/2026-03/report.pdf-%s/report.pdf", hash), key)
}

func TestDestKeyNoPrefix(t *testing.T) {
	c := testClient(config.StorageConfig{Prefix: "/"})
	now := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	key := c.destKey("notes.txt", []byte("x"), now)
	assert.Regexp(t, `^2026-01/notes\.txt-[0-9a-f]{8}/notes\.txt$`, key)
}

func TestDestKeyIdenticalContentSameKey(t *testing.T) {
	c := testClient(config.StorageConfig{})
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	a := c.destKey("a.txt", []byte("same"), now)
	b := c.destKey("a.txt", []byte("same"), now)
	changed := c.destKey("a.txt", []byte("different"), now)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, changed)
}

func TestObjectURLPublicBase(t *testing.T) {
	c := testClient(config.StorageConfig{
		Bucket:        "docs",
		PublicBaseURL: "https://cdn.example.com/",
	})
	assert.Equal(t, "https://cdn.example.com/docs/2026-01/a.txt", c.objectURL("2026-01/a.txt"))
}

func TestObjectURLFromEndpoint(t *testing.T) {
	insecure := false
	c := testClient(config.StorageConfig{
		Endpoint: "s3.local:9000",
		Bucket:   "docs",
		UseSSL:   &insecure,
	})
	assert.Equal(t, "http://s3.local:9000/docs/k", c.objectURL("k"))

	secure := testClient(config.StorageConfig{Endpoint: "s3.example.com", Bucket: "docs"})
	assert.Equal(t, "https://s3.example.com/docs/k", secure.objectURL("k"))
}

func TestGuessMIME(t *testing.T) {
	assert.Equal(t, "text/plain", guessMIME("a.txt"))
	assert.Equal(t, "application/pdf", guessMIME("a.PDF"))
	assert.Equal(t, "application/octet-stream", guessMIME("a.bin"))
}
