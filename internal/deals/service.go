package deals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/internal/listings"
	"github.com/campusbooks/campusbooks-backend/pkg/db"
	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
)

// Service defines the behavior needed by the deals controller.
type Service interface {
	Create(ctx context.Context, buyerID uuid.UUID, input CreateDealInput) (*DealDTO, error)
	Get(ctx context.Context, actorID, id uuid.UUID) (*DealDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]DealDTO, error)
	UpdateStatus(ctx context.Context, actorID, id uuid.UUID, input UpdateDealStatusInput) (*DealDTO, error)
}

type service struct {
	db       *db.Client
	repo     *Repository
	listings *listings.Repository
}

// ServiceParams bundles the dependencies required to build a deals service.
type ServiceParams struct {
	DB       *db.Client
	Repo     *Repository
	Listings *listings.Repository
}

// NewService constructs a deals service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("deal repository is required")
	}
	if params.Listings == nil {
		return nil, fmt.Errorf("listing repository is required")
	}
	return &service{db: params.DB, repo: params.Repo, listings: params.Listings}, nil
}

// Create records an agreed sale between the buyer and the listing's seller.
func (s *service) Create(ctx context.Context, buyerID uuid.UUID, input CreateDealInput) (*DealDTO, error) {
	if input.AgreedPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agreed price must not be negative")
	}

	listing, err := s.listings.FindByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load listing")
	}
	if listing.Status == enums.ListingStatusDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
	}
	if listing.SellerID == buyerID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot open a deal on your own listing")
	}

	deal := &models.Deal{
		ListingID:   input.ListingID,
		BuyerID:     buyerID,
		SellerID:    listing.SellerID,
		AgreedPrice: input.AgreedPrice,
		Status:      enums.DealStatusPending,
		Meetup:      input.Meetup,
	}
	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create deal")
	}
	return NewDealDTO(deal), nil
}

func (s *service) Get(ctx context.Context, actorID, id uuid.UUID) (*DealDTO, error) {
	deal, err := s.loadParticipantDeal(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	return NewDealDTO(deal), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]DealDTO, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list deals")
	}
	return NewDealDTOs(rows), nil
}

// UpdateStatus advances the deal lifecycle. Completing a deal marks the
// listing SOLD in the same transaction.
func (s *service) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, input UpdateDealStatusInput) (*DealDTO, error) {
	next, err := enums.ParseDealStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown deal status")
	}

	deal, err := s.loadParticipantDeal(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if !deal.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move deal from %s to %s", deal.Status, next))
	}

	deal.Status = next
	if input.Meetup != nil {
		deal.Meetup = input.Meetup
	}
	if next == enums.DealStatusCompleted || next == enums.DealStatusCancelled {
		now := time.Now().UTC()
		deal.ClosedAt = &now
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, deal); err != nil {
			return fmt.Errorf("save deal: %w", err)
		}
		if next == enums.DealStatusCompleted {
			if err := s.listings.WithTx(tx).SetStatus(ctx, deal.ListingID, enums.ListingStatusSold); err != nil {
				return fmt.Errorf("mark listing sold: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update deal status")
	}
	return NewDealDTO(deal), nil
}

func (s *service) loadParticipantDeal(ctx context.Context, actorID, id uuid.UUID) (*models.Deal, error) {
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deal")
	}
	if deal.BuyerID != actorID && deal.SellerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a participant in this deal")
	}
	return deal, nil
}
