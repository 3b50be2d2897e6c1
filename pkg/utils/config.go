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
	secret := os.Getenv("ADDONHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("ADDONHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "addonhub"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("ADDONHUB_JWT_TTL_HOURS"); ttl != "" {
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

type APIConfig struct {
	// BaseURL is the site origin every relative path is absolutified
	// against in serialized documents.
	BaseURL string
}

func LoadAPIConfig() APIConfig {
	base := os.Getenv("ADDONHUB_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return APIConfig{BaseURL: base}
}
