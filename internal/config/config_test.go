package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("TEMP_DIR", "/tmp/convert")
	t.Setenv("BODY_LIMIT_MB", "20")
	t.Setenv("SWAGGER_ENABLED", "false")
	t.Setenv("CONVERTER_BACKEND", "LibreOffice")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test,")

	cfg := Load()

	assert.Equal(t, "/tmp/convert", cfg.Storage.TempDir)
	assert.Equal(t, 20, cfg.BodyLimitMB)
	assert.Equal(t, 20<<20, cfg.BodyLimitBytes())
	assert.False(t, cfg.SwaggerEnabled)
	assert.Equal(t, "libreoffice", cfg.Converter.Backend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "TEMP_DIR", "CONVERTER_BACKEND", "CORS_ALLOW_ORIGINS", "BODY_LIMIT_MB", "APP_TIMEZONE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "temp", cfg.Storage.TempDir)
	assert.Equal(t, "native", cfg.Converter.Backend)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 512<<20, cfg.BodyLimitBytes())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "Local"
	assert.Equal(t, time.Local, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"
	def := []string{"x"}

	t.Setenv(key, "a,b")
	assert.Equal(t, []string{"a", "b"}, getEnvList(key, def))

	t.Setenv(key, " , ")
	assert.Equal(t, def, getEnvList(key, def))

	t.Setenv(key, "")
	assert.Equal(t, def, getEnvList(key, def))
}
