package watchlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
)

// Repository provides watchlist persistence on top of gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to a gorm handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// AddItem inserts a watchlist row. The unique (user_id, listing_id) pair
// plus ON CONFLICT DO NOTHING makes repeated adds idempotent.
func (r *Repository) AddItem(ctx context.Context, userID, listingID uuid.UUID) error {
	item := &models.WatchlistItem{UserID: userID, ListingID: listingID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "listing_id"}},
			DoNothing: true,
		}).
		Create(item).Error
}

// RemoveItem deletes the watchlist row if present. Removing an absent item
// is not an error.
func (r *Repository) RemoveItem(ctx context.Context, userID, listingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.WatchlistItem{}).Error
}

// ListItemIDs returns the listing ids the user watches, oldest first.
func (r *Repository) ListItemIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("listing_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
