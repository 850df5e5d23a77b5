package models

import (
	"time"

	"github.com/google/uuid"
)

// WatchlistItem links a user to a listing they are watching.
type WatchlistItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:watchlist_items_user_id_idx;uniqueIndex:watchlist_items_user_listing_key"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index:watchlist_items_listing_id_idx;uniqueIndex:watchlist_items_user_listing_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
