package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/easy-style/internal/common"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/kim")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.TextModel)
	assert.Equal(t, "gemini-2.5-flash-image-preview", cfg.Gemini.ImageModel)
	assert.Equal(t, 300*time.Millisecond, cfg.Shopping.MinLatency)
	assert.Equal(t, 700*time.Millisecond, cfg.Shopping.MaxLatency)
	assert.Equal(t, "/home/kim/.local/share/easystyle/easystyle.db", cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "admin@easystyle.com", cfg.Server.AdminEmail)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(10), cfg.Server.MaxUploadMB)
	assert.Equal(t, 7*24*time.Hour, cfg.Share.PresignTTL)
	assert.Empty(t, cfg.Share.Bucket)
	assert.Empty(t, cfg.Notify.SendGridAPIKey)
	assert.False(t, cfg.IsProduction())
}

func TestLoadAPIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "from-api-key")

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, "from-api-key", cfg.Gemini.APIKey)

	v := newViper()
	v.Set("gemini.api_key", "explicit")
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Gemini.APIKey)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		wantErr error
		set     map[string]any
		name    string
	}{
		{name: "bad level", set: map[string]any{"logging.level": "loud"}, wantErr: common.ErrInvalidConfig},
		{name: "bad format", set: map[string]any{"logging.format": "xml"}, wantErr: common.ErrInvalidConfig},
		{name: "empty db path", set: map[string]any{"database.path": ""}, wantErr: common.ErrMissingConfig},
		{name: "inverted latency", set: map[string]any{"shopping.min_latency": "2s", "shopping.max_latency": "1s"}, wantErr: common.ErrInvalidConfig},
		{name: "negative rate", set: map[string]any{"gemini.rate_limit": -1}, wantErr: common.ErrInvalidConfig},
		{name: "zero upload", set: map[string]any{"server.max_upload_mb": 0}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateServer(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	cfg.Gemini.APIKey = ""
	assert.ErrorIs(t, cfg.ValidateServer(), common.ErrMissingConfig)

	cfg.Gemini.APIKey = "key"
	cfg.Server.JWTSecret = ""
	assert.ErrorIs(t, cfg.ValidateServer(), common.ErrMissingConfig)

	cfg.Server.JWTSecret = "secret"
	assert.NoError(t, cfg.ValidateServer())
}

func TestPrepareReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  addr: ":9090"
  environment: production
shopping:
  min_latency: 0s
  max_latency: 0s
  seed: 42
share:
  bucket: easystyle-shares
`), 0o600))

	t.Setenv("EASYSTYLE_SERVER_JWT_SECRET", "from-env")
	t.Setenv("EASYSTYLE_SERVER_ADDR", ":7070")

	v := viper.New()
	require.NoError(t, Prepare(v, file))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Server.JWTSecret)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, uint64(42), cfg.Shopping.Seed)
	assert.Zero(t, cfg.Shopping.MaxLatency)
	assert.Equal(t, "easystyle-shares", cfg.Share.Bucket)
}

func TestPrepareRejectsBrokenFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server: [unclosed"), 0o600))

	assert.Error(t, Prepare(viper.New(), file))
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/kim")
	t.Setenv("EASYSTYLE_DATA", "/data")

	tests := map[string]string{
		"":                  "",
		"~":                 "/home/kim",
		"~/db/easy.db":      "/home/kim/db/easy.db",
		"$EASYSTYLE_DATA/x": "/data/x",
		"/abs/path":         "/abs/path",
		"relative/~/path":   "relative/~/path",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExpandPath(in), in)
	}
}
