package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Phone         *string    `json:"phone,omitempty"`
	PaymentHandle *string    `json:"payment_handle,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	IsActive      bool       `json:"is_active"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Username      string
	Email         string
	PasswordHash  string
	Name          string
	Phone         *string
	PaymentHandle *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		PaymentHandle: u.PaymentHandle,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Username:      c.Username,
		Email:         c.Email,
		PasswordHash:  c.PasswordHash,
		Name:          c.Name,
		Phone:         c.Phone,
		PaymentHandle: c.PaymentHandle,
		IsActive:      true,
	}
}
