package app

import (
	"time"

	"github.com/utavu/auth-backend/internal/platform/envutil"
)

type Config struct {
	GoogleClientID string

	JWTSecretKey    string
	JWTIssuer       string
	JWTAudience     string
	SessionTokenTTL time.Duration

	LoginQueueSize int
}

func LoadConfig() Config {
	sessionTTLSeconds := envutil.Int("SESSION_TOKEN_TTL", 7*24*60*60)
	return Config{
		GoogleClientID:  envutil.String("GOOGLE_CLIENT_ID", ""),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", ""),
		JWTIssuer:       envutil.String("JWT_ISSUER", ""),
		JWTAudience:     envutil.String("JWT_AUDIENCE", ""),
		SessionTokenTTL: time.Duration(sessionTTLSeconds) * time.Second,
		LoginQueueSize:  envutil.Int("LOGIN_EVENT_QUEUE_SIZE", 256),
	}
}
