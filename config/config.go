package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs, loaded once in main and passed
// down explicitly. No package-level singletons.
type Config struct {
	Port string `yaml:"port"`

	// Store selects the key-value backend: "redis" or "dynamo".
	Store         string `yaml:"store"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	DynamoTable   string `yaml:"dynamoTable"`
	AWSRegion     string `yaml:"awsRegion"`

	// Relational database for marketplace and donation records.
	PostgresDSN string `yaml:"postgresDSN"`

	// Hosted auth provider.
	AuthBaseURL    string `yaml:"authBaseURL"`
	AuthServiceKey string `yaml:"authServiceKey"`
	// JWTSecret enables local HS256 verification of access tokens. When
	// empty every Verify call goes to the provider.
	JWTSecret string `yaml:"jwtSecret"`

	S3Bucket string `yaml:"s3Bucket"`

	// Credential delivery queue. Empty means log-only delivery.
	AMQPURL     string `yaml:"amqpURL"`
	NotifyQueue string `yaml:"notifyQueue"`

	// InviteSingleUse rejects invitation codes that already carry a used
	// marker. Off by default to match historical behavior.
	InviteSingleUse bool `yaml:"inviteSingleUse"`
}

// Load reads config from path (optional) and applies env overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		Port:        "8080",
		Store:       "redis",
		RedisAddr:   "localhost:6379",
		DynamoTable: "JamaahRecords",
		NotifyQueue: "notifications.outbound",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.Store, "KV_STORE")
	overrideString(&cfg.RedisAddr, "REDIS_ADDR")
	overrideString(&cfg.RedisPassword, "REDIS_PASSWORD")
	overrideString(&cfg.DynamoTable, "DYNAMO_TABLE")
	overrideString(&cfg.AWSRegion, "AWS_REGION")
	overrideString(&cfg.PostgresDSN, "POSTGRES_DSN")
	overrideString(&cfg.AuthBaseURL, "AUTH_BASE_URL")
	overrideString(&cfg.AuthServiceKey, "AUTH_SERVICE_KEY")
	overrideString(&cfg.JWTSecret, "AUTH_JWT_SECRET")
	overrideString(&cfg.S3Bucket, "S3_BUCKET_NAME")
	overrideString(&cfg.AMQPURL, "AMQP_URL")
	overrideString(&cfg.NotifyQueue, "NOTIFY_QUEUE")
	overrideBool(&cfg.InviteSingleUse, "INVITE_SINGLE_USE")

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func overrideBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
