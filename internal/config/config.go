package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// StorageConfig holds settings for the local conversion workspace.
type StorageConfig struct {
	TempDir string
}

// ConverterConfig selects and configures the PDF-to-DOCX backend.
type ConverterConfig struct {
	// Backend is one of "native", "pdf2docx" or "libreoffice".
	Backend string
	// Binary overrides the executable used by command backends.
	Binary string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string
	Timezone       string
	LogLevel       string
	BodyLimitMB    int
	AllowedOrigins []string
	FCGIAddr       string
	SwaggerEnabled bool
	Storage        StorageConfig
	Converter      ConverterConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8000"),
		Port:           getEnv("PORT", "8000"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BodyLimitMB:    getEnvInt("BODY_LIMIT_MB", 512),
		AllowedOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173"}),
		FCGIAddr:       getEnv("FCGI_ADDR", ""),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
		Storage: StorageConfig{
			TempDir: getEnv("TEMP_DIR", "temp"),
		},
		Converter: ConverterConfig{
			Backend: strings.ToLower(getEnv("CONVERTER_BACKEND", "native")),
			Binary:  getEnv("CONVERTER_BINARY", ""),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BodyLimitBytes is the request body limit handed to Fiber.
func (c *AppConfig) BodyLimitBytes() int {
	if c.BodyLimitMB <= 0 {
		return 512 << 20
	}
	return c.BodyLimitMB << 20
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
