package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	DBMaxConns  int
	LogDir      string
	APIKey      string // API key for authentication

	// TrustedProxies are peer IPs whose X-Forwarded-For header is believed
	TrustedProxies []string

	// EncryptionKey is the 32-byte AES key for stored provider tokens
	EncryptionKey []byte

	IngestURL    string
	IngestAPIKey string

	Twitter   ProviderConfig
	Pinterest ProviderConfig

	Sync   SyncConfig
	Worker WorkerConfig
}

// ProviderConfig holds OAuth client and endpoint settings for one provider
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	RevokeURL    string
	APIBaseURL   string
}

// SyncConfig holds pacing and budget settings for sync runs
type SyncConfig struct {
	MaxItems          int
	ItemDelay         time.Duration
	GroupDelay        time.Duration
	PageDelay         time.Duration
	LockTTL           time.Duration
	ScheduleInterval  time.Duration
	ReconcileInterval time.Duration
	RunMigrations     bool
}

// WorkerConfig sizes the background worker pool
type WorkerConfig struct {
	Count     int
	QueueSize int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		Environment:  getEnv("ENVIRONMENT", "dev"),
		ServiceName:  getEnv("SERVICE_NAME", "curio-sync"),
		Version:      getEnv("VERSION", "dev"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "curiosync"),
		LogDir:       getEnv("LOG_DIR", "logs"),
		APIKey:       getEnv("API_KEY", ""),
		IngestURL:    getEnv("INGEST_URL", "http://localhost:3000/api/process-item"),
		IngestAPIKey: getEnv("INGEST_API_KEY", ""),
		Twitter: ProviderConfig{
			ClientID:     getEnv("TWITTER_CLIENT_ID", ""),
			ClientSecret: getEnv("TWITTER_CLIENT_SECRET", ""),
			TokenURL:     getEnv("TWITTER_TOKEN_URL", "https://api.twitter.com/2/oauth2/token"),
			RevokeURL:    getEnv("TWITTER_REVOKE_URL", "https://api.twitter.com/2/oauth2/revoke"),
			APIBaseURL:   getEnv("TWITTER_API_URL", "https://api.twitter.com/2"),
		},
		Pinterest: ProviderConfig{
			ClientID:     getEnv("PINTEREST_CLIENT_ID", ""),
			ClientSecret: getEnv("PINTEREST_CLIENT_SECRET", ""),
			TokenURL:     getEnv("PINTEREST_TOKEN_URL", "https://api.pinterest.com/v5/oauth/token"),
			APIBaseURL:   getEnv("PINTEREST_API_URL", "https://api.pinterest.com/v5"),
		},
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.Sync, err = loadSyncConfig(); err != nil {
		return nil, err
	}
	if cfg.Worker.Count, err = getEnvInt("WORKER_COUNT", 4); err != nil {
		return nil, err
	}
	if cfg.Worker.QueueSize, err = getEnvInt("WORKER_QUEUE_SIZE", 100); err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	key, err := parseEncryptionKey(getEnv("TOKEN_ENCRYPTION_KEY", ""))
	if err != nil {
		return nil, err
	}
	cfg.EncryptionKey = key

	return cfg, nil
}

func loadSyncConfig() (SyncConfig, error) {
	var sc SyncConfig
	var err error

	if sc.MaxItems, err = getEnvInt("SYNC_MAX_ITEMS", 50); err != nil {
		return sc, err
	}
	if sc.MaxItems <= 0 {
		return sc, fmt.Errorf("invalid SYNC_MAX_ITEMS value: must be positive")
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"SYNC_ITEM_DELAY", 500 * time.Millisecond, &sc.ItemDelay},
		{"SYNC_GROUP_DELAY", 200 * time.Millisecond, &sc.GroupDelay},
		{"SYNC_PAGE_DELAY", 100 * time.Millisecond, &sc.PageDelay},
		{"SYNC_LOCK_TTL", 15 * time.Minute, &sc.LockTTL},
		{"SYNC_SCHEDULE_INTERVAL", 6 * time.Hour, &sc.ScheduleInterval},
		{"RECONCILE_INTERVAL", 24 * time.Hour, &sc.ReconcileInterval},
	}
	for _, d := range durations {
		if *d.dest, err = getEnvDuration(d.key, d.def); err != nil {
			return sc, err
		}
	}

	sc.RunMigrations, err = strconv.ParseBool(getEnv("RUN_MIGRATIONS", "false"))
	if err != nil {
		return sc, fmt.Errorf("invalid RUN_MIGRATIONS value: %w", err)
	}
	return sc, nil
}

// parseEncryptionKey accepts either 32 raw bytes or 64 hex characters
func parseEncryptionKey(raw string) ([]byte, error) {
	if raw == "" {
		return nil, fmt.Errorf("TOKEN_ENCRYPTION_KEY environment variable must be set")
	}
	if len(raw) == 64 {
		key, err := hex.DecodeString(raw)
		if err == nil {
			return key, nil
		}
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("TOKEN_ENCRYPTION_KEY must be 32 bytes or 64 hex characters")
	}
	return []byte(raw), nil
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
