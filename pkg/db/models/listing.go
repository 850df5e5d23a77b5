package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusbooks/campusbooks-backend/pkg/enums"
)

// Listing represents a textbook offered for sale by a student.
type Listing struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	SellerID      uuid.UUID           `gorm:"column:seller_id;type:uuid;not null;index:listings_seller_id_idx"`
	Title         string              `gorm:"column:title;not null"`
	Author        string              `gorm:"column:author;not null"`
	ISBN          *string             `gorm:"column:isbn"`
	Edition       *string             `gorm:"column:edition"`
	Description   *string             `gorm:"column:description"`
	CourseCodes   StringList          `gorm:"column:course_codes;not null"`
	Condition     enums.Condition     `gorm:"column:condition;type:text;not null"`
	HasNotes      bool                `gorm:"column:has_notes;not null;default:false"`
	HasHighlights bool                `gorm:"column:has_highlights;not null;default:false"`
	Price         decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	Images        StringList          `gorm:"column:images;not null"`
	Status        enums.ListingStatus `gorm:"column:status;type:text;not null;default:AVAILABLE;index:listings_status_idx"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime;index:listings_created_at_idx,sort:desc"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
