package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
)

// MessageDTO is the wire shape for a chat message.
type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	ThreadID  uuid.UUID `json:"thread_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessageDTO maps a message model to its wire shape.
func NewMessageDTO(m *models.ChatMessage) *MessageDTO {
	if m == nil {
		return nil
	}
	return &MessageDTO{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// NewMessageDTOs maps a slice of message models.
func NewMessageDTOs(ms []models.ChatMessage) []MessageDTO {
	out := make([]MessageDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *NewMessageDTO(&ms[i]))
	}
	return out
}

// ThreadDTO is the wire shape for a thread, optionally carrying the latest
// message for inbox views.
type ThreadDTO struct {
	ID            uuid.UUID   `json:"id"`
	ListingID     uuid.UUID   `json:"listing_id"`
	BuyerID       uuid.UUID   `json:"buyer_id"`
	SellerID      uuid.UUID   `json:"seller_id"`
	LatestMessage *MessageDTO `json:"latest_message,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// NewThreadDTO maps a thread model to its wire shape.
func NewThreadDTO(t *models.ChatThread) *ThreadDTO {
	if t == nil {
		return nil
	}
	return &ThreadDTO{
		ID:        t.ID,
		ListingID: t.ListingID,
		BuyerID:   t.BuyerID,
		SellerID:  t.SellerID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// CreateThreadInput is the payload for opening a conversation on a listing.
type CreateThreadInput struct {
	ListingID uuid.UUID `json:"listingId" validate:"required"`
}

// SendMessageInput is the payload for posting into a thread. The message
// body rides under the text key on the wire.
type SendMessageInput struct {
	Body string `json:"text" validate:"required,max=2000"`
}
