package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/pkg/db"
	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
)

// Service defines the behavior needed by the chat controller.
type Service interface {
	CreateOrGetThread(ctx context.Context, buyerID uuid.UUID, input CreateThreadInput) (*ThreadDTO, error)
	FindThread(ctx context.Context, actorID, listingID uuid.UUID) (*ThreadDTO, error)
	ListThreads(ctx context.Context, actorID uuid.UUID) ([]ThreadDTO, error)
	ListMessages(ctx context.Context, actorID, threadID uuid.UUID) ([]MessageDTO, error)
	SendMessage(ctx context.Context, actorID, threadID uuid.UUID, input SendMessageInput) (*MessageDTO, error)
}

type service struct {
	db       *db.Client
	repo     *Repository
	listings listingLoader
}

type listingLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

// ServiceParams bundles the dependencies required to build a chat service.
type ServiceParams struct {
	DB       *db.Client
	Repo     *Repository
	Listings listingLoader
}

// NewService constructs a chat service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("chat repository is required")
	}
	if params.Listings == nil {
		return nil, fmt.Errorf("listing loader is required")
	}
	return &service{db: params.DB, repo: params.Repo, listings: params.Listings}, nil
}

// CreateOrGetThread opens the buyer's conversation on a listing, or returns
// the existing one. A buyer holds at most one thread per listing.
func (s *service) CreateOrGetThread(ctx context.Context, buyerID uuid.UUID, input CreateThreadInput) (*ThreadDTO, error) {
	listing, err := s.listings.FindByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load listing")
	}
	if listing.Status == enums.ListingStatusDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
	}
	if listing.SellerID == buyerID {
		return nil, pkgerrors.New(pkgerrors.CodeSelfMessage, "cannot message yourself about your own listing")
	}

	existing, err := s.repo.FindThreadByListingAndBuyer(ctx, input.ListingID, buyerID)
	if err == nil {
		return NewThreadDTO(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find thread")
	}

	thread := &models.ChatThread{
		ListingID: input.ListingID,
		BuyerID:   buyerID,
		SellerID:  listing.SellerID,
	}
	if err := s.repo.CreateThread(ctx, thread); err != nil {
		// A concurrent create can slip past the lookup; the unique
		// (listing_id, buyer_id) pair keeps the operation idempotent.
		if db.IsUniqueViolation(err, "chat_threads_listing_buyer_key") {
			return s.FindThread(ctx, buyerID, input.ListingID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create thread")
	}
	return NewThreadDTO(thread), nil
}

// FindThread locates the actor's buyer-side thread on a listing. A seller
// can hold many threads per listing, so lookup by listing alone only makes
// sense from the buyer's side.
func (s *service) FindThread(ctx context.Context, actorID, listingID uuid.UUID) (*ThreadDTO, error) {
	thread, err := s.repo.FindThreadByListingAndBuyer(ctx, listingID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "thread not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find thread")
	}
	return NewThreadDTO(thread), nil
}

// ListThreads returns the actor's inbox, most recently active first, each
// thread carrying its latest message when one exists.
func (s *service) ListThreads(ctx context.Context, actorID uuid.UUID) ([]ThreadDTO, error) {
	threads, err := s.repo.ListThreadsForUser(ctx, actorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list threads")
	}

	out := make([]ThreadDTO, 0, len(threads))
	for i := range threads {
		dto := NewThreadDTO(&threads[i])
		latest, err := s.repo.LatestMessage(ctx, threads[i].ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load latest message")
		}
		if err == nil {
			dto.LatestMessage = NewMessageDTO(latest)
		}
		out = append(out, *dto)
	}
	return out, nil
}

// ListMessages returns the thread history oldest first and, as a side
// effect, marks the other participant's messages as read.
func (s *service) ListMessages(ctx context.Context, actorID, threadID uuid.UUID) ([]MessageDTO, error) {
	if _, err := s.loadParticipantThread(ctx, actorID, threadID); err != nil {
		return nil, err
	}

	if err := s.repo.MarkMessagesRead(ctx, threadID, actorID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark messages read")
	}
	msgs, err := s.repo.ListMessages(ctx, threadID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list messages")
	}
	return NewMessageDTOs(msgs), nil
}

// SendMessage appends to the thread and bumps its updated_at to the
// message's creation time in one transaction, so the inbox never reorders
// without the message landing.
func (s *service) SendMessage(ctx context.Context, actorID, threadID uuid.UUID, input SendMessageInput) (*MessageDTO, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body must not be empty")
	}

	if _, err := s.loadParticipantThread(ctx, actorID, threadID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ThreadID: threadID,
		SenderID: actorID,
		Body:     body,
	}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateMessage(ctx, msg); err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		if err := repo.TouchThread(ctx, threadID, msg.CreatedAt); err != nil {
			return fmt.Errorf("touch thread: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send message")
	}
	return NewMessageDTO(msg), nil
}

func (s *service) loadParticipantThread(ctx context.Context, actorID, threadID uuid.UUID) (*models.ChatThread, error) {
	thread, err := s.repo.FindThreadByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "thread not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load thread")
	}
	// Non-participants get the same answer as a missing thread.
	if thread.BuyerID != actorID && thread.SellerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "thread not found")
	}
	return thread, nil
}
