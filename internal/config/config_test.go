package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Uploads are opt-in: with MINIO_ENDPOINT unset the endpoint stays
// empty and main never constructs an uploader.
func TestLoadMinIODisabledByDefault(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "")
	cfg := Load()
	assert.Empty(t, cfg.MinIO.Endpoint)
}

func TestLoadMinIOEndpoint(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio.internal:9000")
	cfg := Load()
	assert.Equal(t, "minio.internal:9000", cfg.MinIO.Endpoint)
}
