package listings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
)

// ListingDTO is the wire shape for a listing.
type ListingDTO struct {
	ID            uuid.UUID           `json:"id"`
	SellerID      uuid.UUID           `json:"seller_id"`
	Title         string              `json:"title"`
	Author        string              `json:"author"`
	ISBN          *string             `json:"isbn,omitempty"`
	Edition       *string             `json:"edition,omitempty"`
	Description   *string             `json:"description,omitempty"`
	CourseCodes   []string            `json:"course_codes"`
	Condition     enums.Condition     `json:"condition"`
	HasNotes      bool                `json:"has_notes"`
	HasHighlights bool                `json:"has_highlights"`
	Price         decimal.Decimal     `json:"price"`
	Images        []string            `json:"images"`
	Status        enums.ListingStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewListingDTO maps a listing model to its wire shape.
func NewListingDTO(m *models.Listing) *ListingDTO {
	if m == nil {
		return nil
	}
	return &ListingDTO{
		ID:            m.ID,
		SellerID:      m.SellerID,
		Title:         m.Title,
		Author:        m.Author,
		ISBN:          m.ISBN,
		Edition:       m.Edition,
		Description:   m.Description,
		CourseCodes:   append([]string{}, m.CourseCodes...),
		Condition:     m.Condition,
		HasNotes:      m.HasNotes,
		HasHighlights: m.HasHighlights,
		Price:         m.Price,
		Images:        append([]string{}, m.Images...),
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// NewListingDTOs maps a slice of listing models.
func NewListingDTOs(ms []models.Listing) []ListingDTO {
	out := make([]ListingDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *NewListingDTO(&ms[i]))
	}
	return out
}

// CreateListingInput is the payload for publishing a new listing.
type CreateListingInput struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Author        string          `json:"author" validate:"required,max=200"`
	ISBN          *string         `json:"isbn,omitempty" validate:"omitempty,max=20"`
	Edition       *string         `json:"edition,omitempty" validate:"omitempty,max=50"`
	Description   *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	CourseCodes   []string        `json:"course_codes" validate:"max=10,dive,max=20"`
	Condition     string          `json:"condition" validate:"required"`
	HasNotes      bool            `json:"has_notes"`
	HasHighlights bool            `json:"has_highlights"`
	Price         decimal.Decimal `json:"price"`
	Images        []string        `json:"images" validate:"max=10,dive,max=500"`
}

// UpdateListingInput carries the mutable subset of a listing. Nil fields are
// left untouched. Seller, ids, and timestamps are never patchable.
type UpdateListingInput struct {
	Condition     *string          `json:"condition,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Images        *[]string        `json:"images,omitempty"`
	Status        *string          `json:"status,omitempty"`
	HasNotes      *bool            `json:"has_notes,omitempty"`
	HasHighlights *bool            `json:"has_highlights,omitempty"`
}

// ListListingsInput bundles filters with cursor pagination for browsing.
type ListListingsInput struct {
	Filters Filters
	Limit   int
	Cursor  string
}

// ListingPageDTO is one page of browse results.
type ListingPageDTO struct {
	Items      []ListingDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}
