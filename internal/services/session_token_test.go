package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utavu/auth-backend/internal/platform/apierr"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	const (
		secret   = "test-secret"
		issuer   = "utavu"
		audience = "utavu-clients"
		email    = "a@x.com"
	)
	ttl := 7 * 24 * time.Hour

	issuerSvc := NewSessionTokenIssuer(secret, issuer, audience, ttl)

	before := time.Now()
	tokenStr, err := issuerSvc.Issue(email)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	after := time.Now()

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("issued token did not validate")
	}

	if claims.Email != email {
		t.Fatalf("email claim = %q, want %q", claims.Email, email)
	}
	if claims.Issuer != issuer {
		t.Fatalf("iss = %q, want %q", claims.Issuer, issuer)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != audience {
		t.Fatalf("aud = %v, want [%q]", claims.Audience, audience)
	}

	exp := claims.ExpiresAt.Time
	if exp.Before(before.Add(ttl).Add(-time.Minute)) || exp.After(after.Add(ttl).Add(time.Minute)) {
		t.Fatalf("exp = %v, want within a minute of issuance+%v", exp, ttl)
	}
}

func TestSessionTokenMissingConfig(t *testing.T) {
	cases := []struct {
		name     string
		secret   string
		issuer   string
		audience string
	}{
		{"missing key", "", "utavu", "utavu-clients"},
		{"missing issuer", "secret", "", "utavu-clients"},
		{"missing audience", "secret", "utavu", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSessionTokenIssuer(tc.secret, tc.issuer, tc.audience, time.Hour)
			_, err := svc.Issue("a@x.com")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ae *apierr.Error
			if !errors.As(err, &ae) {
				t.Fatalf("error is %T, want *apierr.Error", err)
			}
			if ae.Status != 500 {
				t.Fatalf("status = %d, want 500", ae.Status)
			}
			if ae.Code != "signing_config" {
				t.Fatalf("code = %q, want signing_config", ae.Code)
			}
		})
	}
}
