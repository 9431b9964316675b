package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// parseEnv overlays values from environment variables. Duration variables
// accept Go duration strings ("15m", "240h"). Malformed numbers panic, like
// a malformed config file.
func parseEnv(config *Config) {
	envString("HTTP_ADDR", &config.HTTPAddr)
	envString("GRPC_ADDR", &config.GRPCAddr)
	envString("DATABASE_DSN", &config.DatabaseDSN)
	envString("ACCESS_TOKEN_SECRET", &config.AccessTokenSecret)
	envDuration("ACCESS_TOKEN_EXPIRY", &config.AccessTokenValidityDuration)
	envString("REFRESH_TOKEN_SECRET", &config.RefreshTokenSecret)
	envDuration("REFRESH_TOKEN_EXPIRY", &config.RefreshTokenValidityDuration)
	envInt("BCRYPT_COST", &config.BcryptCost)
	envString("CORS_ORIGIN", &config.CORSOrigin)
	envString("S3_ROOT_USER", &config.S3RootUser)
	envString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	envString("S3_BUCKET", &config.S3Bucket)
	envString("S3_REGION", &config.S3Region)
	envString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	envString("S3_PUBLIC_URL", &config.S3PublicURL)
	envString("REDIS_ADDR", &config.RedisAddr)
	envString("REDIS_PASSWORD", &config.RedisPassword)
	envInt("LOGIN_RATE_LIMIT", &config.LoginRateLimit)
	envDuration("LOGIN_RATE_WINDOW", &config.LoginRateWindow)
	envInt("MAX_UPLOAD_BYTES", &config.MaxUploadBytes)
	envDuration("HEALTH_CHECK_INTERVAL", &config.HealthCheckInterval)
	envString("LOG_LEVEL", &config.LogLevel)
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("env %s: %w", name, err))
	}
	*dst = n
}

func envDuration(name string, dst *time.Duration) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("env %s: %w", name, err))
	}
	*dst = d
}
