package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Config struct {
	Port           string
	PostgresURI    string
	AdminPassword  string
	SecretKey      string
	OpenAIKey      string
	DispatchEvery  string
	PublishTimeout time.Duration
	SessionTTL     time.Duration
	Concurrency    int
	R2             R2
}

func LoadConfig() *Config {
	return &Config{
		Port:           getEnv("PORT", "4000"),
		PostgresURI:    getEnv("POSTGRES_URI", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		SecretKey:      getEnv("SECRET_KEY", ""),
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		DispatchEvery:  getEnv("DISPATCH_EVERY", "@every 0h1m0s"),
		PublishTimeout: getDuration("PUBLISH_TIMEOUT", time.Minute),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		Concurrency:    getInt("DISPATCH_CONCURRENCY", 10),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
