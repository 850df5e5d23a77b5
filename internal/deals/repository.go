package deals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
)

// Repository provides deal persistence on top of gorm.
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

// Create inserts a new deal row.
func (r *Repository) Create(ctx context.Context, deal *models.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

// FindByID loads a deal by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.WithContext(ctx).First(&deal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

// ListForUser returns every deal the user takes part in, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Deal, error) {
	var rows []models.Deal
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Save persists the full deal row.
func (r *Repository) Save(ctx context.Context, deal *models.Deal) error {
	return r.db.WithContext(ctx).Save(deal).Error
}
