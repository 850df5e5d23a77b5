package listings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
	"github.com/campusbooks/campusbooks-backend/pkg/pagination"
)

// Service defines the behavior needed by the listings controller.
type Service interface {
	Create(ctx context.Context, sellerID uuid.UUID, input CreateListingInput) (*ListingDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ListingDTO, error)
	List(ctx context.Context, input ListListingsInput) (*ListingPageDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateListingInput) (*ListingDTO, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type service struct {
	repo listingRepository
}

type listingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	List(ctx context.Context, filters Filters, limit int, cursor *pagination.Cursor) ([]models.Listing, error)
	Save(ctx context.Context, listing *models.Listing) error
	SetStatus(ctx context.Context, id uuid.UUID, status enums.ListingStatus) error
}

// ServiceParams bundles the dependencies required to build a listings service.
type ServiceParams struct {
	Repo listingRepository
}

// NewService constructs a listings service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("listing repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, sellerID uuid.UUID, input CreateListingInput) (*ListingDTO, error) {
	condition, err := enums.ParseCondition(input.Condition)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown condition")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	listing := &models.Listing{
		SellerID:      sellerID,
		Title:         input.Title,
		Author:        input.Author,
		ISBN:          input.ISBN,
		Edition:       input.Edition,
		Description:   input.Description,
		CourseCodes:   models.StringList(NormalizeCourseCodes(input.CourseCodes)),
		Condition:     condition,
		HasNotes:      input.HasNotes,
		HasHighlights: input.HasHighlights,
		Price:         input.Price,
		Images:        models.StringList(append([]string{}, input.Images...)),
		Status:        enums.ListingStatusAvailable,
	}
	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create listing")
	}
	return NewListingDTO(listing), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ListingDTO, error) {
	listing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewListingDTO(listing), nil
}

func (s *service) List(ctx context.Context, input ListListingsInput) (*ListingPageDTO, error) {
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	rows, err := s.repo.List(ctx, input.Filters, limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list listings")
	}

	page := &ListingPageDTO{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	page.Items = NewListingDTOs(rows)
	return page, nil
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateListingInput) (*ListingDTO, error) {
	listing, err := s.loadOwned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if listing.Status == enums.ListingStatusDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "listing is deleted")
	}

	if input.Condition != nil {
		condition, err := enums.ParseCondition(*input.Condition)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown condition")
		}
		listing.Condition = condition
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		listing.Price = *input.Price
	}
	if input.Description != nil {
		listing.Description = input.Description
	}
	if input.Images != nil {
		listing.Images = models.StringList(append([]string{}, (*input.Images)...))
	}
	if input.Status != nil {
		status, err := enums.ParseListingStatus(*input.Status)
		if err != nil || status == enums.ListingStatusDeleted {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status")
		}
		listing.Status = status
	}
	if input.HasNotes != nil {
		listing.HasNotes = *input.HasNotes
	}
	if input.HasHighlights != nil {
		listing.HasHighlights = *input.HasHighlights
	}

	if err := s.repo.Save(ctx, listing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update listing")
	}
	return NewListingDTO(listing), nil
}

// Delete soft-deletes the listing. Deleting an already deleted listing is a
// no-op so the operation stays idempotent.
func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	listing, err := s.loadOwned(ctx, actorID, id)
	if err != nil {
		return err
	}
	if listing.Status == enums.ListingStatusDeleted {
		return nil
	}
	if err := s.repo.SetStatus(ctx, id, enums.ListingStatusDeleted); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete listing")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load listing")
	}
	return listing, nil
}

func (s *service) loadOwned(ctx context.Context, actorID, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the seller can modify a listing")
	}
	return listing, nil
}
