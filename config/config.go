package config

import (
	"github.com/joho/godotenv"
	"log/slog"
	"os"
)

const (
	defaultDomain    = "data.cityofnewyork.us"
	defaultDatasetID = "erm2-nwe9"
)

type Config struct {
	AppToken   string
	Domain     string
	DatasetID  string
	HTTPProxy  string
	HTTPSProxy string

	// S3 settings, only needed for the upload command.
	BucketName string
	Region     string
	ApiURL     string
	AccessKey  string
	SecretKey  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables only")
	}

	config := &Config{
		AppToken:   getEnv("APP_TOKEN", ""),
		Domain:     getEnv("BASE_DOMAIN", defaultDomain),
		DatasetID:  getEnv("DATASET_ID", defaultDatasetID),
		HTTPProxy:  getEnv("HTTP_PROXY", ""),
		HTTPSProxy: getEnv("HTTPS_PROXY", ""),
		BucketName: getEnv("BUCKET_NAME", ""),
		Region:     getEnv("REGION", ""),
		ApiURL:     getEnv("API_URL", ""),
		AccessKey:  getEnv("ACCESS_KEY", ""),
		SecretKey:  getEnv("SECRET_KEY", ""),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
