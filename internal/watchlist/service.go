package watchlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/internal/users"
	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
)

// UpdateInput is the payload for the watchlist mutation endpoint.
type UpdateInput struct {
	ListingID uuid.UUID `json:"listingId" validate:"required"`
	Action    string    `json:"action" validate:"required"`
}

// UserDTO is the resource returned by the watchlist endpoint: the profile
// fields plus the resulting ordered watchlist.
type UserDTO struct {
	users.UserDTO
	Watchlist []uuid.UUID `json:"watchlist"`
}

// Service defines the behavior needed by the watchlist controller.
type Service interface {
	Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*UserDTO, error)
	ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	repo     watchlistRepository
	listings listingLoader
	users    userLoader
}

type watchlistRepository interface {
	AddItem(ctx context.Context, userID, listingID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, listingID uuid.UUID) error
	ListItemIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type listingLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build a watchlist service.
type ServiceParams struct {
	Repo     watchlistRepository
	Listings listingLoader
	Users    userLoader
}

// NewService constructs a watchlist service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("watchlist repository is required")
	}
	if params.Listings == nil {
		return nil, fmt.Errorf("listing loader is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user loader is required")
	}
	return &service{repo: params.Repo, listings: params.Listings, users: params.Users}, nil
}

// Update applies an add or remove and returns the updated user carrying the
// resulting id list. Both verbs are idempotent.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*UserDTO, error) {
	action, err := enums.ParseWatchlistAction(input.Action)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown watchlist action")
	}

	switch action {
	case enums.WatchlistActionAdd:
		if _, err := s.listings.FindByID(ctx, input.ListingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load listing")
		}
		if err := s.repo.AddItem(ctx, userID, input.ListingID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add watchlist item")
		}
	case enums.WatchlistActionRemove:
		if err := s.repo.RemoveItem(ctx, userID, input.ListingID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove watchlist item")
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	ids, err := s.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserDTO{UserDTO: *users.FromModel(user), Watchlist: ids}, nil
}

func (s *service) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.repo.ListItemIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list watchlist")
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}
