package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a single message within a thread.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ThreadID  uuid.UUID `gorm:"column:thread_id;type:uuid;not null;index:chat_messages_thread_id_idx"`
	SenderID  uuid.UUID `gorm:"column:sender_id;type:uuid;not null"`
	Body      string    `gorm:"column:body;not null"`
	Read      bool      `gorm:"column:read;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:chat_messages_created_at_idx"`
}
