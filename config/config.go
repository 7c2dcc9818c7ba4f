package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings, loaded once at startup.
type Config struct {
	ServerPort int
	// JWTSecret signs every issued token. Passed explicitly into the token
	// service; nothing reads it from the environment at call time.
	JWTSecret string
	// TokenTTL is the validity window for issued tokens. Registration and
	// login tokens share the same TTL.
	TokenTTL time.Duration

	Mongo   MongoConfig
	Storage StorageConfig
	Events  EventsConfig
}

// MongoConfig describes the document store connection.
type MongoConfig struct {
	URL      string
	Database string
}

// StorageConfig selects and configures the gift image store backend.
// Backend is one of "minio", "gcs" or "none".
type StorageConfig struct {
	Backend string
	Minio   MinioConfig
	GCS     GCSConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

// EventsConfig selects and configures the catalog event broker backend.
// Backend is one of "rabbitmq", "pubsub" or "none".
type EventsConfig struct {
	Backend string
	Channel string

	RabbitMQ RabbitMQConfig
	PubSub   PubSubConfig
}

type RabbitMQConfig struct {
	URL             string
	QueueDurable    bool
	QueueAutoDelete bool
	PrefetchCount   int
}

type PubSubConfig struct {
	ProjectID          string
	CredentialsFile    string
	SubscriptionSuffix string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 3060),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 24*time.Hour),
		Mongo: MongoConfig{
			URL:      getEnv("MONGO_URL", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "secondChance"),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "none"),
			Minio: MinioConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", "secondchance-images"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			GCS: GCSConfig{
				Bucket:          getEnv("GCS_BUCKET", ""),
				ProjectID:       getEnv("GCS_PROJECT_ID", ""),
				CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
			},
		},
		Events: EventsConfig{
			Backend: getEnv("EVENTS_BACKEND", "none"),
			Channel: getEnv("EVENTS_CHANNEL", "gift-events"),
			RabbitMQ: RabbitMQConfig{
				URL:             getEnv("RABBITMQ_URL", ""),
				QueueDurable:    getEnvBool("RABBITMQ_QUEUE_DURABLE", true),
				QueueAutoDelete: getEnvBool("RABBITMQ_QUEUE_AUTO_DELETE", false),
				PrefetchCount:   getEnvInt("RABBITMQ_PREFETCH_COUNT", 0),
			},
			PubSub: PubSubConfig{
				ProjectID:          getEnv("PUBSUB_PROJECT_ID", ""),
				CredentialsFile:    getEnv("PUBSUB_CREDENTIALS_FILE", ""),
				SubscriptionSuffix: getEnv("PUBSUB_SUBSCRIPTION_SUFFIX", "-sub"),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
		fmt.Fprintf(os.Stderr, "invalid integer for %s: %q\n", key, valueStr)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
		fmt.Fprintf(os.Stderr, "invalid boolean for %s: %q\n", key, valueStr)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s: %q\n", key, valueStr)
	}
	return defaultValue
}
