package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/internal/deals"
	"github.com/campusbooks/campusbooks-backend/internal/listings"
	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
)

// ProfileDTO aggregates everything the profile page shows about a user.
type ProfileDTO struct {
	User      *UserDTO              `json:"user"`
	Listings  []listings.ListingDTO `json:"listings"`
	Deals     []deals.DealDTO       `json:"deals"`
	Watchlist []uuid.UUID           `json:"watchlist"`
}

// Service defines the behavior needed by the profile controller.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
}

type service struct {
	users     userLoader
	listings  sellerListingLister
	deals     dealLister
	watchlist watchlistLister
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type sellerListingLister interface {
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Listing, error)
}

type dealLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]deals.DealDTO, error)
}

type watchlistLister interface {
	ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ServiceParams bundles the dependencies required to build a profile service.
type ServiceParams struct {
	Users     userLoader
	Listings  sellerListingLister
	Deals     dealLister
	Watchlist watchlistLister
}

// NewService constructs a profile service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user loader is required")
	}
	if params.Listings == nil {
		return nil, fmt.Errorf("listing lister is required")
	}
	if params.Deals == nil {
		return nil, fmt.Errorf("deal lister is required")
	}
	if params.Watchlist == nil {
		return nil, fmt.Errorf("watchlist lister is required")
	}
	return &service{
		users:     params.Users,
		listings:  params.Listings,
		deals:     params.Deals,
		watchlist: params.Watchlist,
	}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	owned, err := s.listings.ListBySeller(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user listings")
	}
	userDeals, err := s.deals.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	watched, err := s.watchlist.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileDTO{
		User:      FromModel(user),
		Listings:  listings.NewListingDTOs(owned),
		Deals:     userDeals,
		Watchlist: watched,
	}, nil
}
