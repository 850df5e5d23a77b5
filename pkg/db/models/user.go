package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity.
type User struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Username      string     `gorm:"column:username;type:text;not null;uniqueIndex:users_username_key"`
	Email         string     `gorm:"column:email;type:text;not null;uniqueIndex:users_email_key"`
	PasswordHash  string     `gorm:"column:password_hash;not null"`
	Name          string     `gorm:"column:name;not null"`
	Phone         *string    `gorm:"column:phone"`
	PaymentHandle *string    `gorm:"column:payment_handle"`
	EmailVerified bool       `gorm:"column:email_verified;not null;default:false"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
