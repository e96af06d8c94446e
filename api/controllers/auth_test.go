package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/pizzaria-backend/api/middleware"
	"github.com/angelmondragon/pizzaria-backend/internal/auth"
	"github.com/angelmondragon/pizzaria-backend/internal/users"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
)

type stubAuthService struct {
	loginResult *auth.LoginResponse
	meResult    *users.UserDTO
	err         error
	lastLogin   auth.LoginRequest
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.lastLogin = req
	return s.loginResult, s.err
}

func (s *stubAuthService) Me(_ context.Context, _ uuid.UUID) (*users.UserDTO, error) {
	return s.meResult, s.err
}

type stubRegisterService struct {
	result *users.UserDTO
	err    error
}

func (s *stubRegisterService) Register(_ context.Context, _ auth.RegisterRequest) (*users.UserDTO, error) {
	return s.result, s.err
}

func TestAuthRegisterSuccess(t *testing.T) {
	created := &users.UserDTO{ID: uuid.New(), Name: "Mario", Email: "mario@example.com"}
	login := &stubAuthService{loginResult: &auth.LoginResponse{AccessToken: "token", User: created}}
	handler := AuthRegister(&stubRegisterService{result: created}, login, nil)

	body := `{"name":"Mario","email":"mario@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if login.lastLogin.Email != "mario@example.com" {
		t.Fatalf("expected immediate login, got email %q", login.lastLogin.Email)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "token" {
		t.Fatalf("expected a token in the register response")
	}
	if envelope.Data.User == nil || envelope.Data.User.ID != created.ID {
		t.Fatalf("unexpected user payload: %+v", envelope.Data.User)
	}
}

func TestAuthRegisterConflict(t *testing.T) {
	svc := &stubRegisterService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	handler := AuthRegister(svc, &stubAuthService{}, nil)

	body := `{"name":"Mario","email":"mario@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAuthRegisterRejectsMalformedBody(t *testing.T) {
	handler := AuthRegister(&stubRegisterService{}, &stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"name":`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{loginResult: &auth.LoginResponse{
		AccessToken: "token",
		User:        &users.UserDTO{ID: uuid.New(), Email: "mario@example.com"},
	}}
	handler := AuthLogin(svc, nil)

	body := `{"email":"mario@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastLogin.Email != "mario@example.com" {
		t.Fatalf("unexpected login email: %s", svc.lastLogin.Email)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "token" {
		t.Fatalf("unexpected token: %s", envelope.Data.AccessToken)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, nil)

	body := `{"email":"mario@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthMeSuccess(t *testing.T) {
	profile := &users.UserDTO{ID: uuid.New(), Email: "mario@example.com", CreatedAt: time.Now().UTC()}
	handler := AuthMe(&stubAuthService{meResult: profile}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), profile.ID.String()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthMeMissingIdentity(t *testing.T) {
	handler := AuthMe(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
