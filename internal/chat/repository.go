package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
)

// Repository provides chat persistence on top of gorm.
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

// CreateThread inserts a new thread row.
func (r *Repository) CreateThread(ctx context.Context, thread *models.ChatThread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

// FindThreadByID loads a thread by its id.
func (r *Repository) FindThreadByID(ctx context.Context, id uuid.UUID) (*models.ChatThread, error) {
	var thread models.ChatThread
	if err := r.db.WithContext(ctx).First(&thread, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

// FindThreadByListingAndBuyer loads the unique thread for a listing/buyer pair.
func (r *Repository) FindThreadByListingAndBuyer(ctx context.Context, listingID, buyerID uuid.UUID) (*models.ChatThread, error) {
	var thread models.ChatThread
	err := r.db.WithContext(ctx).
		First(&thread, "listing_id = ? AND buyer_id = ?", listingID, buyerID).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// ListThreadsForUser returns every thread the user participates in, most
// recently active first.
func (r *Repository) ListThreadsForUser(ctx context.Context, userID uuid.UUID) ([]models.ChatThread, error) {
	var threads []models.ChatThread
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, err
	}
	return threads, nil
}

// LatestMessage returns the newest message in a thread, or a not-found error
// for an empty thread.
func (r *Repository) LatestMessage(ctx context.Context, threadID uuid.UUID) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at DESC").
		Order("id DESC").
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns a thread's messages oldest first.
func (r *Repository) ListMessages(ctx context.Context, threadID uuid.UUID) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// CreateMessage inserts a message row.
func (r *Repository) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// MarkMessagesRead flags every unread message in the thread that the reader
// did not send.
func (r *Repository) MarkMessagesRead(ctx context.Context, threadID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("thread_id = ? AND sender_id <> ? AND read = ?", threadID, readerID, false).
		Update("read", true).Error
}

// TouchThread bumps the thread's updated_at so inbox ordering follows
// message activity.
func (r *Repository) TouchThread(ctx context.Context, threadID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ChatThread{}).
		Where("id = ?", threadID).
		UpdateColumn("updated_at", at).Error
}
