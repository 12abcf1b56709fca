package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("STREAMHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("STREAMHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "streamhub"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("STREAMHUB_JWT_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			duration = time.Duration(hours) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: duration,
	}
}

type ServerConfig struct {
	HTTPAddr    string
	SyncAddr    string
	DatasetPath string
}

func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		HTTPAddr:    ":8080",
		SyncAddr:    ":7070",
		DatasetPath: "netflix_titles.csv",
	}
	if v := os.Getenv("STREAMHUB_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STREAMHUB_SYNC_ADDR"); v != "" {
		cfg.SyncAddr = v
	}
	if v := os.Getenv("STREAMHUB_DATASET"); v != "" {
		cfg.DatasetPath = v
	}
	return cfg
}
