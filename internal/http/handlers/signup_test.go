package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/utavu/auth-backend/internal/http/response"
	"github.com/utavu/auth-backend/internal/platform/apierr"
	"github.com/utavu/auth-backend/internal/services"
)

type stubSignUpService struct {
	result   *services.SignUpResult
	err      error
	gotToken string
}

func (s *stubSignUpService) SignUp(ctx context.Context, idToken string) (*services.SignUpResult, error) {
	s.gotToken = idToken
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func signUpRouter(svc services.SignUpService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/SignUp", NewSignUpHandler(svc).SignUp)
	return r
}

func doSignUp(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/SignUp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignUpHandlerSuccess(t *testing.T) {
	svc := &stubSignUpService{result: &services.SignUpResult{Email: "a@x.com", Token: "jwt-token"}}
	w := doSignUp(t, signUpRouter(svc), `{"idToken":"raw-token"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.gotToken != "raw-token" {
		t.Fatalf("service got idToken %q, want raw-token", svc.gotToken)
	}

	var resp SignUpResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Email != "a@x.com" || resp.Token != "jwt-token" {
		t.Fatalf("response = %+v", resp)
	}

	// Field names are part of the wire contract.
	var raw map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	if _, ok := raw["Email"]; !ok {
		t.Fatal(`response missing "Email" key`)
	}
	if _, ok := raw["Token"]; !ok {
		t.Fatal(`response missing "Token" key`)
	}
}

func TestSignUpHandlerVerificationFailure(t *testing.T) {
	svc := &stubSignUpService{
		err: apierr.New(http.StatusBadRequest, "token_invalid", errors.New("Invalid ID token")),
	}
	w := doSignUp(t, signUpRouter(svc), `{"idToken":"bad"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var env response.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if env.Status != 400 {
		t.Fatalf("Status = %d, want 400", env.Status)
	}
	if env.Errors != "Invalid ID token" {
		t.Fatalf("Errors = %q, want Invalid ID token", env.Errors)
	}
}

func TestSignUpHandlerSigningMisconfiguration(t *testing.T) {
	svc := &stubSignUpService{
		err: apierr.New(http.StatusInternalServerError, "signing_config", errors.New("session token signing configuration is incomplete")),
	}
	w := doSignUp(t, signUpRouter(svc), `{"idToken":"raw-token"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for signing misconfiguration", w.Code)
	}

	var env response.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if env.Status != 500 {
		t.Fatalf("Status = %d, want 500", env.Status)
	}
}

func TestSignUpHandlerMissingIDToken(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body object", `{}`},
		{"empty idToken", `{"idToken":""}`},
		{"malformed json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubSignUpService{result: &services.SignUpResult{Email: "a@x.com", Token: "t"}}
			w := doSignUp(t, signUpRouter(svc), tc.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if svc.gotToken != "" {
				t.Fatal("service should not be called without an idToken")
			}

			var env response.ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode error envelope: %v", err)
			}
			if env.Status != 400 || env.Errors == "" {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}
