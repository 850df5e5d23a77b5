package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusbooks/campusbooks-backend/pkg/enums"
)

// Deal tracks an agreed sale between a buyer and a seller for one listing.
// Settlement happens off platform; the deal records the agreed price and
// the handoff lifecycle.
type Deal struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	ListingID   uuid.UUID        `gorm:"column:listing_id;type:uuid;not null;index:deals_listing_id_idx"`
	BuyerID     uuid.UUID        `gorm:"column:buyer_id;type:uuid;not null;index:deals_buyer_id_idx"`
	SellerID    uuid.UUID        `gorm:"column:seller_id;type:uuid;not null;index:deals_seller_id_idx"`
	AgreedPrice decimal.Decimal  `gorm:"column:agreed_price;type:numeric(10,2);not null"`
	Status      enums.DealStatus `gorm:"column:status;type:text;not null;default:PENDING"`
	Meetup      *string          `gorm:"column:meetup"`
	ClosedAt    *time.Time       `gorm:"column:closed_at"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
