package services

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utavu/auth-backend/internal/platform/apierr"
)

type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionTokenIssuer mints the application session credential returned to
// clients after a verified sign-in. Tokens are minted fresh on every call;
// only the shape (claims, issuer, audience, TTL) is fixed.
type SessionTokenIssuer interface {
	Issue(email string) (string, error)
}

type sessionTokenIssuer struct {
	secretKey string
	issuer    string
	audience  string
	ttl       time.Duration
}

func NewSessionTokenIssuer(secretKey, issuer, audience string, ttl time.Duration) SessionTokenIssuer {
	return &sessionTokenIssuer{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		ttl:       ttl,
	}
}

func (s *sessionTokenIssuer) Issue(email string) (string, error) {
	if strings.TrimSpace(s.secretKey) == "" || strings.TrimSpace(s.issuer) == "" || strings.TrimSpace(s.audience) == "" {
		return "", apierr.New(http.StatusInternalServerError, "signing_config",
			errors.New("session token signing configuration is incomplete"))
	}

	now := time.Now()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", apierr.New(http.StatusInternalServerError, "signing_config", err)
	}
	return signed, nil
}
