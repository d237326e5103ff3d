package services

import (
	"context"
	"fmt"
	"net/http"

	userRepo "github.com/utavu/auth-backend/internal/data/repos/user"
	types "github.com/utavu/auth-backend/internal/domain"
	"github.com/utavu/auth-backend/internal/platform/apierr"
	"github.com/utavu/auth-backend/internal/platform/logger"
)

type SignUpResult struct {
	Email string
	Token string
}

// SignUpService runs the whole sign-up/sign-in pipeline: verify the Google ID
// token, find or provision the user, mint a fresh session token, and emit the
// login notification. Every step except the notification gates the response.
type SignUpService interface {
	SignUp(ctx context.Context, idToken string) (*SignUpResult, error)
}

type signUpService struct {
	log      *logger.Logger
	verifier GoogleVerifier
	users    userRepo.UserRepo
	tokens   SessionTokenIssuer
	notifier LoginNotifier
}

func NewSignUpService(
	log *logger.Logger,
	verifier GoogleVerifier,
	users userRepo.UserRepo,
	tokens SessionTokenIssuer,
	notifier LoginNotifier,
) SignUpService {
	return &signUpService{
		log:      log.With("service", "SignUpService"),
		verifier: verifier,
		users:    users,
		tokens:   tokens,
		notifier: notifier,
	}
}

func (s *signUpService) SignUp(ctx context.Context, idToken string) (*SignUpResult, error) {
	claims, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "token_invalid", err)
	}

	found, err := s.users.GetByEmails(ctx, nil, []string{claims.Email})
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if len(found) == 0 {
		// First sign-in for this email. The credential stored on the row is
		// the one minted here; the response token is minted separately below.
		storedToken, err := s.tokens.Issue(claims.Email)
		if err != nil {
			return nil, err
		}
		u := &types.User{
			Email:        claims.Email,
			Name:         claims.Name,
			GoogleSub:    claims.Sub,
			SessionToken: storedToken,
		}
		_, created, err := s.users.CreateIfAbsent(ctx, nil, u)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		if !created {
			// Lost the race to a concurrent first sign-in; proceed as found.
			s.log.Debug("concurrent sign-up detected, reusing existing user", "email", claims.Email)
		}
	}

	token, err := s.tokens.Issue(claims.Email)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(claims.Email)

	return &SignUpResult{Email: claims.Email, Token: token}, nil
}
