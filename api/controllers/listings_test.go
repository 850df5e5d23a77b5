package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/campusbooks/campusbooks-backend/api/middleware"
	listingsvc "github.com/campusbooks/campusbooks-backend/internal/listings"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
	"github.com/campusbooks/campusbooks-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func asUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID.String()))
}

type stubListingService struct {
	listing *listingsvc.ListingDTO
	page    *listingsvc.ListingPageDTO
	err     error

	createdBy  uuid.UUID
	deletedID  uuid.UUID
	gotFilters listingsvc.Filters
}

func (s *stubListingService) Create(_ context.Context, sellerID uuid.UUID, _ listingsvc.CreateListingInput) (*listingsvc.ListingDTO, error) {
	s.createdBy = sellerID
	return s.listing, s.err
}

func (s *stubListingService) Get(_ context.Context, _ uuid.UUID) (*listingsvc.ListingDTO, error) {
	return s.listing, s.err
}

func (s *stubListingService) List(_ context.Context, input listingsvc.ListListingsInput) (*listingsvc.ListingPageDTO, error) {
	s.gotFilters = input.Filters
	return s.page, s.err
}

func (s *stubListingService) Update(_ context.Context, _, _ uuid.UUID, _ listingsvc.UpdateListingInput) (*listingsvc.ListingDTO, error) {
	return s.listing, s.err
}

func (s *stubListingService) Delete(_ context.Context, _, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

func TestCreateListingUsesSessionActor(t *testing.T) {
	actor := uuid.New()
	svc := &stubListingService{listing: &listingsvc.ListingDTO{ID: uuid.New(), SellerID: actor}}

	body := `{"title":"Calculus","author":"Stewart","condition":"GOOD","price":"40"}`
	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
	req = asUser(req, actor)
	rec := httptest.NewRecorder()

	CreateListing(svc, testLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.createdBy != actor {
		t.Fatal("seller must come from the session, not the payload")
	}
}

func TestCreateListingRequiresAuthContext(t *testing.T) {
	svc := &stubListingService{}
	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	CreateListing(svc, testLogger())(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGetListingRejectsBadID(t *testing.T) {
	svc := &stubListingService{}
	req := httptest.NewRequest(http.MethodGet, "/api/listings/not-a-uuid", nil)
	req = withChiParams(req, map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()

	GetListing(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListListingsParsesFilters(t *testing.T) {
	svc := &stubListingService{page: &listingsvc.ListingPageDTO{Items: []listingsvc.ListingDTO{}}}

	req := httptest.NewRequest(http.MethodGet,
		"/api/listings?q=algebra&course=math201&condition=GOOD,LIKE_NEW&maxPrice=50.25", nil)
	rec := httptest.NewRecorder()

	ListListings(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	f := svc.gotFilters
	if f.Query != "algebra" || f.Course != "math201" {
		t.Fatalf("unexpected filters: %+v", f)
	}
	if len(f.Conditions) != 2 || f.Conditions[0] != enums.ConditionGood || f.Conditions[1] != enums.ConditionLikeNew {
		t.Fatalf("unexpected conditions: %v", f.Conditions)
	}
	if f.MaxPrice == nil || !f.MaxPrice.Equal(decimal.RequireFromString("50.25")) {
		t.Fatalf("unexpected max price: %v", f.MaxPrice)
	}
}

func TestListListingsRejectsUnknownCondition(t *testing.T) {
	svc := &stubListingService{}
	req := httptest.NewRequest(http.MethodGet, "/api/listings?condition=PRISTINE", nil)
	rec := httptest.NewRecorder()

	ListListings(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteListingReturnsNoContent(t *testing.T) {
	actor := uuid.New()
	listingID := uuid.New()
	svc := &stubListingService{}

	req := httptest.NewRequest(http.MethodDelete, "/api/listings/"+listingID.String(), nil)
	req = withChiParams(asUser(req, actor), map[string]string{"id": listingID.String()})
	rec := httptest.NewRecorder()

	DeleteListing(svc, testLogger())(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.deletedID != listingID {
		t.Fatal("expected delete forwarded to the service")
	}
	if rec.Body.Len() != 0 {
		t.Fatal("204 must carry no body")
	}
}

func TestGetListingEnvelope(t *testing.T) {
	id := uuid.New()
	svc := &stubListingService{listing: &listingsvc.ListingDTO{ID: id, Title: "Calculus"}}

	req := httptest.NewRequest(http.MethodGet, "/api/listings/"+id.String(), nil)
	req = withChiParams(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()

	GetListing(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data listingsvc.ListingDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Data.ID != id {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}
