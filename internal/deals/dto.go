package deals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
)

// DealDTO is the wire shape for a deal.
type DealDTO struct {
	ID          uuid.UUID        `json:"id"`
	ListingID   uuid.UUID        `json:"listing_id"`
	BuyerID     uuid.UUID        `json:"buyer_id"`
	SellerID    uuid.UUID        `json:"seller_id"`
	AgreedPrice decimal.Decimal  `json:"agreed_price"`
	Status      enums.DealStatus `json:"status"`
	Meetup      *string          `json:"meetup,omitempty"`
	ClosedAt    *time.Time       `json:"closed_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewDealDTO maps a deal model to its wire shape.
func NewDealDTO(d *models.Deal) *DealDTO {
	if d == nil {
		return nil
	}
	return &DealDTO{
		ID:          d.ID,
		ListingID:   d.ListingID,
		BuyerID:     d.BuyerID,
		SellerID:    d.SellerID,
		AgreedPrice: d.AgreedPrice,
		Status:      d.Status,
		Meetup:      d.Meetup,
		ClosedAt:    d.ClosedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// NewDealDTOs maps a slice of deal models.
func NewDealDTOs(ds []models.Deal) []DealDTO {
	out := make([]DealDTO, 0, len(ds))
	for i := range ds {
		out = append(out, *NewDealDTO(&ds[i]))
	}
	return out
}

// CreateDealInput is the payload for recording an agreed sale.
type CreateDealInput struct {
	ListingID   uuid.UUID       `json:"listing_id" validate:"required"`
	AgreedPrice decimal.Decimal `json:"agreed_price"`
	Meetup      *string         `json:"meetup,omitempty" validate:"omitempty,max=500"`
}

// UpdateDealStatusInput is the payload for advancing a deal's lifecycle.
type UpdateDealStatusInput struct {
	Status string  `json:"status" validate:"required"`
	Meetup *string `json:"meetup,omitempty" validate:"omitempty,max=500"`
}
