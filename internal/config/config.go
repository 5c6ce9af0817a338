package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Config holds the service configuration
type Config struct {
	Port string
	Env  string

	DataDir      string
	UploadDir    string
	OutputDir    string
	TextFile     string
	ChaptersFile string
	FontPath     string

	TTSLang    string
	TTSBaseURL string

	StoreBackend string
	MongoURI     string
	MongoDB      string

	RedisAddr string
	CacheTTL  time.Duration

	CORSAllowedOrigins string
	CORSAllowedMethods string
	CORSAllowedHeaders string
}

// Load reads configuration from the environment, after applying a .env file if present
func Load() *Config {
	_ = godotenv.Load()

	dataDir := getEnvOrDefault("DATA_DIR", ".")

	return &Config{
		Port: getEnvOrDefault("PORT", "5001"),
		Env:  getEnvOrDefault("APP_ENV", "production"),

		DataDir:      dataDir,
		UploadDir:    resolve(dataDir, getEnvOrDefault("UPLOAD_DIR", "uploads")),
		OutputDir:    resolve(dataDir, getEnvOrDefault("OUTPUT_DIR", "output")),
		TextFile:     resolve(dataDir, getEnvOrDefault("TEXT_FILE", "text.json")),
		ChaptersFile: resolve(dataDir, getEnvOrDefault("CHAPTERS_FILE", "chapters.json")),
		FontPath:     resolve(dataDir, getEnvOrDefault("FONT_PATH", "OpenDyslexic3-Regular.ttf")),

		TTSLang:    getEnvOrDefault("TTS_LANG", "hi"),
		TTSBaseURL: getEnvOrDefault("TTS_BASE_URL", "https://translate.google.com/translate_tts"),

		StoreBackend: strings.ToLower(getEnvOrDefault("STORE_BACKEND", BackendFile)),
		MongoURI:     getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnvOrDefault("MONGO_DB", "neurodiverse"),

		RedisAddr: strings.TrimPrefix(os.Getenv("REDIS_URI"), "redis://"),
		CacheTTL:  getDurationOrDefault("CACHE_TTL", 24*time.Hour),

		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowedMethods: getEnvOrDefault("CORS_ALLOWED_METHODS", "GET, POST, OPTIONS"),
		CORSAllowedHeaders: getEnvOrDefault("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),
	}
}

// IsDevelopment reports whether development logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Redis address was configured
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// EnsureDirs creates the upload and output directories
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.UploadDir, c.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
