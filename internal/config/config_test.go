package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "jobboard", cfg.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.EqualValues(t, 5*1024*1024, cfg.MaxUploadSize)
	assert.Equal(t, []string{"pdf", "doc", "docx"}, cfg.AllowedExtensions)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "1h")
	t.Setenv("MAX_UPLOAD_SIZE", "1048576")
	t.Setenv("ALLOWED_EXTENSIONS", " PDF , Docx ")
	t.Setenv("DB_HOST", "db.internal")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
	assert.EqualValues(t, 1048576, cfg.MaxUploadSize)
	assert.Equal(t, []string{"pdf", "docx"}, cfg.AllowedExtensions)
	assert.Contains(t, cfg.DSN(), "host=db.internal")
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")
	t.Setenv("MAX_UPLOAD_SIZE", "-1")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.EqualValues(t, 5*1024*1024, cfg.MaxUploadSize)
}
