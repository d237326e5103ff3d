package app

import (
	"fmt"

	redisclient "github.com/utavu/auth-backend/internal/clients/redis"
	"github.com/utavu/auth-backend/internal/platform/logger"
	"github.com/utavu/auth-backend/internal/services"
)

type Services struct {
	Verifier services.GoogleVerifier
	Tokens   services.SessionTokenIssuer
	Notifier services.LoginNotifier
	SignUp   services.SignUpService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos, bus redisclient.LoginEventBus) (Services, error) {
	log.Info("Wiring services...")

	verifier, err := services.NewGoogleVerifier(nil, cfg.GoogleClientID)
	if err != nil {
		return Services{}, fmt.Errorf("init google verifier: %w", err)
	}

	tokens := services.NewSessionTokenIssuer(cfg.JWTSecretKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionTokenTTL)
	notifier := services.NewLoginNotifier(log, bus, cfg.LoginQueueSize)
	signup := services.NewSignUpService(log, verifier, repos.User, tokens, notifier)

	return Services{
		Verifier: verifier,
		Tokens:   tokens,
		Notifier: notifier,
		SignUp:   signup,
	}, nil
}
