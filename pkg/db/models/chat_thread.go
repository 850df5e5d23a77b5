package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatThread is a buyer/seller conversation scoped to a single listing.
// A buyer gets at most one thread per listing.
type ChatThread struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	ListingID uuid.UUID     `gorm:"column:listing_id;type:uuid;not null;index:chat_threads_listing_id_idx;uniqueIndex:chat_threads_listing_buyer_key"`
	BuyerID   uuid.UUID     `gorm:"column:buyer_id;type:uuid;not null;index:chat_threads_buyer_id_idx;uniqueIndex:chat_threads_listing_buyer_key"`
	SellerID  uuid.UUID     `gorm:"column:seller_id;type:uuid;not null;index:chat_threads_seller_id_idx"`
	Messages  []ChatMessage `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime;index:chat_threads_updated_at_idx,sort:desc"`
}
