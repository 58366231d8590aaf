package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Only set
// variables override; empty or missing ones leave the current value alone.
//
// Supported variables:
//
//	ADDRESS                 HTTP bind address
//	DATABASE_DSN            PostgreSQL DSN
//	REDIS_URL               Redis connection URL
//	OTP_BACKEND             "postgres" or "redis"
//	SECRET_KEY              JWT HMAC secret
//	ACCESS_TOKEN_VALIDITY   session token lifetime (Go duration, e.g. "24h")
//	OTP_VALIDITY            one-time code lifetime (Go duration, e.g. "5m")
//	ADMIN_ACCESS_CODE       shared secret for admin logins
func parseEnv(config *Config) {
	setString := func(key string, target *string) {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
	setDuration := func(key string, target *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*target = d
			}
		}
	}

	setString("ADDRESS", &config.EndpointAddrHTTP)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("REDIS_URL", &config.RedisURL)
	setString("OTP_BACKEND", &config.OtpBackend)
	setString("SECRET_KEY", &config.SecretKey)
	setDuration("ACCESS_TOKEN_VALIDITY", &config.AccessTokenValidityDuration)
	setDuration("OTP_VALIDITY", &config.OtpValidityDuration)
	setString("ADMIN_ACCESS_CODE", &config.AdminAccessCode)
}
