package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from KEEPSAKE_* environment variables.
// Unset variables leave the current value untouched. Values typically come
// from the process environment or a .env file loaded by godotenv in main.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("KEEPSAKE_ADDR"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_ADMIN_SECRET"); ok {
		config.AdminSecret = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_SESSION_SECRET_KEY"); ok {
		config.SessionSecretKey = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_SESSION_TOKEN_VALIDITY_MINUTES"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.SessionTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("KEEPSAKE_S3_ACCESS_KEY"); ok {
		config.S3AccessKey = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_S3_SECRET_KEY"); ok {
		config.S3SecretKey = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
	if v, ok := os.LookupEnv("KEEPSAKE_S3_PUBLIC_BASE_URL"); ok {
		config.S3PublicBaseURL = v
	}
}
