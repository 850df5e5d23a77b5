package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/campusbooks/campusbooks-backend/api/middleware"
	authsvc "github.com/campusbooks/campusbooks-backend/internal/auth"
	usersvc "github.com/campusbooks/campusbooks-backend/internal/users"
)

type stubAuthService struct {
	resp *authsvc.AuthResponse
	pair *authsvc.TokenPair
	err  error

	loggedOut string
}

func (s *stubAuthService) Login(_ context.Context, _ authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) Refresh(_ context.Context, _, _ string) (*authsvc.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.loggedOut = accessID
	return s.err
}

type stubRegisterService struct {
	resp *authsvc.AuthResponse
	err  error

	got authsvc.RegisterRequest
}

func (s *stubRegisterService) Register(_ context.Context, req authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
	s.got = req
	return s.resp, s.err
}

type stubProfileService struct {
	profile *usersvc.ProfileDTO
	err     error

	gotID uuid.UUID
}

func (s *stubProfileService) GetProfile(_ context.Context, userID uuid.UUID) (*usersvc.ProfileDTO, error) {
	s.gotID = userID
	return s.profile, s.err
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	svc := &stubRegisterService{}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"not-an-email","password":"short"}`))
	rec := httptest.NewRecorder()

	Register(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterForwardsPayload(t *testing.T) {
	svc := &stubRegisterService{resp: &authsvc.AuthResponse{AccessToken: "token"}}
	body := `{"username":"booklover","email":"booklover@campus.edu","password":"long-enough-pass","name":"Book Lover"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	Register(svc, testLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.got.Email != "booklover@campus.edu" {
		t.Fatalf("payload not forwarded: %+v", svc.got)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "access-1"))
	rec := httptest.NewRecorder()

	Logout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.loggedOut != "access-1" {
		t.Fatalf("expected session revoked, got %q", svc.loggedOut)
	}
}

func TestGetProfileRejectsPathMismatch(t *testing.T) {
	svc := &stubProfileService{}
	actor := uuid.New()
	other := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user/"+other.String(), nil)
	req = withChiParams(asUser(req, actor), map[string]string{"id": other.String()})
	rec := httptest.NewRecorder()

	GetProfile(svc, testLogger())(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGetProfileReturnsAggregate(t *testing.T) {
	actor := uuid.New()
	svc := &stubProfileService{profile: &usersvc.ProfileDTO{Watchlist: []uuid.UUID{}}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user/"+actor.String(), nil)
	req = withChiParams(asUser(req, actor), map[string]string{"id": actor.String()})
	rec := httptest.NewRecorder()

	GetProfile(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotID != actor {
		t.Fatal("profile must be loaded for the session actor")
	}
}
