package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

type stubRegisterService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) error
	confirmFn  func(ctx context.Context, tokenValue string) error
	resendFn   func(ctx context.Context, email string) error
}

func (s *stubRegisterService) Register(ctx context.Context, input ports.RegisterInput) error {
	return s.registerFn(ctx, input)
}

func (s *stubRegisterService) Confirm(ctx context.Context, tokenValue string) error {
	return s.confirmFn(ctx, tokenValue)
}

func (s *stubRegisterService) Resend(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.Account, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp["code"]
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubRegisterService{
		registerFn: func(_ context.Context, input ports.RegisterInput) error {
			if input.Email != "alice@example.com" || input.FirstName != "Alice" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub, &stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/public/users/register",
		`{"email":"alice@example.com","password":"s3cretpass","first_name":"Alice","last_name":"Smith"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if code := decodeCode(t, rec); code != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", code)
	}
}

func TestAuthHandler_Register_AlreadyRegistered(t *testing.T) {
	stub := &stubRegisterService{
		registerFn: func(context.Context, ports.RegisterInput) error {
			return domain.ErrAlreadyRegistered
		},
	}
	h := NewAuthHandler(stub, &stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/public/users/register",
		`{"email":"bob@example.com","password":"s3cretpass","first_name":"Bob","last_name":"Jones"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeCode(t, rec); code != "ALREADY_REGISTERED" {
		t.Fatalf("expected ALREADY_REGISTERED, got %s", code)
	}
}

func TestAuthHandler_Register_EmailDeliveryFailure(t *testing.T) {
	stub := &stubRegisterService{
		registerFn: func(context.Context, ports.RegisterInput) error {
			return domain.ErrEmailDelivery
		},
	}
	h := NewAuthHandler(stub, &stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/public/users/register",
		`{"email":"carol@example.com","password":"s3cretpass","first_name":"Carol","last_name":"King"}`)

	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeCode(t, rec); code != "EMAIL_ERROR" {
		t.Fatalf("expected EMAIL_ERROR, got %s", code)
	}
}

func TestAuthHandler_Register_ShortPasswordRejected(t *testing.T) {
	stub := &stubRegisterService{
		registerFn: func(context.Context, ports.RegisterInput) error {
			t.Fatalf("service must not be called for invalid input")
			return nil
		},
	}
	h := NewAuthHandler(stub, &stubAuthService{})

	c, _ := newAuthTestContext(t, http.MethodPost, "/public/users/register",
		`{"email":"dave@example.com","password":"short","first_name":"Dave","last_name":"Lee"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Confirm(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode string
	}{
		{"success", nil, http.StatusOK, "SUCCESS"},
		{"unknown", domain.ErrTokenNotFound, http.StatusBadRequest, "TOKEN_NOT_FOUND"},
		{"expired", domain.ErrTokenExpired, http.StatusBadRequest, "TOKEN_EXPIRED"},
	}
	for _, tc := range cases {
		stub := &stubRegisterService{
			confirmFn: func(_ context.Context, tokenValue string) error {
				if tokenValue != "tok_123" {
					t.Fatalf("%s: unexpected token %s", tc.name, tokenValue)
				}
				return tc.err
			},
		}
		h := NewAuthHandler(stub, &stubAuthService{})

		c, rec := newAuthTestContext(t, http.MethodGet, "/public/users/confirm/tok_123", "")
		c.SetParamNames("token")
		c.SetParamValues("tok_123")

		if err := h.Confirm(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != tc.wantHTTP {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.wantHTTP, rec.Code)
		}
		if code := decodeCode(t, rec); code != tc.wantCode {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.wantCode, code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.Account, error) {
			if email != "alice@example.com" || password != "s3cretpass" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Account{ID: "acc_1"}, nil
		},
	}
	h := NewAuthHandler(&stubRegisterService{}, stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/public/users/login",
		`{"email":"alice@example.com","password":"s3cretpass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_FailureCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"not enabled", domain.ErrAccountNotEnabled, "CONFIRM_YOUR_ACCOUNT"},
		{"bad credentials", domain.ErrInvalidCredentials, "WRONG_LOGIN_OR_PASSWORD"},
	}
	for _, tc := range cases {
		stub := &stubAuthService{
			loginFn: func(context.Context, string, string) (string, *domain.Account, error) {
				return "", nil, tc.err
			},
		}
		h := NewAuthHandler(&stubRegisterService{}, stub)

		c, rec := newAuthTestContext(t, http.MethodPost, "/public/users/login",
			`{"email":"x@example.com","password":"whatever"}`)

		if err := h.Login(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
		if code := decodeCode(t, rec); code != tc.wantCode {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.wantCode, code)
		}
	}
}
