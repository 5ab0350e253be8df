package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string
	CronSpec string

	ScoreThreshold int
	AdapterTimeout time.Duration

	// Snapshot storage: Azure Blob when a connection string is set,
	// otherwise a local directory.
	StorageConnString string
	FeedContainer     string
	LatestBlobName    string
	SnapshotDir       string

	RedisAddr   string
	PostgresDSN string

	RecipientEmail string
	EmailAddress   string
	EmailPassword  string
	SMTPServer     string
	SMTPPort       int

	RedditUserAgent    string
	TwitterBearerToken string
	DumpDir            string
}

func Load() *Config {
	// Best effort: a missing .env just means plain environment config.
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:  getEnv("APP_PORT", "5001"),
		CronSpec: getEnv("CRON_SPEC", "0 4 * * *"),

		ScoreThreshold: getEnvInt("SCORE_THRESHOLD", 100),
		AdapterTimeout: time.Duration(getEnvInt("ADAPTER_TIMEOUT_SECONDS", 20)) * time.Second,

		StorageConnString: getEnv("AZURE_STORAGE_CONNECTION_STRING", ""),
		FeedContainer:     getEnv("FEED_CONTAINER", "feeds"),
		LatestBlobName:    getEnv("FEED_BLOB_NAME", "latest.json"),
		SnapshotDir:       getEnv("SNAPSHOT_DIR", "feeds"),

		RedisAddr:   getEnv("REDIS_ADDR", ""),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		RecipientEmail: getEnv("RECIPIENT_EMAIL", ""),
		EmailAddress:   getEnv("EMAIL_ADDRESS", ""),
		EmailPassword:  getEnv("EMAIL_PASSWORD", ""),
		SMTPServer:     getEnv("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),

		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "skinfeed/1.0"),
		TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		DumpDir:            getEnv("DUMP_DIR", "."),
	}

	log.Printf("config loaded: port=%s cron=%q threshold=%d storage=%s",
		cfg.AppPort, cfg.CronSpec, cfg.ScoreThreshold, cfg.storageKind())
	return cfg
}

func (c *Config) storageKind() string {
	if c.StorageConnString != "" {
		return "azure-blob"
	}
	return "local-dir"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warn: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}
