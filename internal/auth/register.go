package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/internal/users"
	pkgAuth "github.com/campusbooks/campusbooks-backend/pkg/auth"
	"github.com/campusbooks/campusbooks-backend/pkg/auth/session"
	"github.com/campusbooks/campusbooks-backend/pkg/config"
	"github.com/campusbooks/campusbooks-backend/pkg/db"
	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
	"github.com/campusbooks/campusbooks-backend/pkg/security"
)

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB                 *db.Client
	SessionManager     sessionManager
	PasswordConfig     config.PasswordConfig
	RegistrationConfig config.RegistrationConfig
	JWTConfig          config.JWTConfig
}

type registerService struct {
	db              *db.Client
	session         sessionManager
	passwordCfg     config.PasswordConfig
	registrationCfg config.RegistrationConfig
	jwtCfg          config.JWTConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager required")
	}
	return &registerService{
		db:              params.DB,
		session:         params.SessionManager,
		passwordCfg:     params.PasswordConfig,
		registrationCfg: params.RegistrationConfig,
		jwtCfg:          params.JWTConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if !s.registrationCfg.AllowsEmail(email) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidDomain, "email must belong to a school domain").
			WithDetails(map[string]any{"allowed_suffixes": s.registrationCfg.AllowedDomainSuffixes})
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var user *models.User
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		if _, err := userRepo.FindByUsername(ctx, username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}

		created, err := userRepo.Create(ctx, users.CreateUserDTO{
			Username:      username,
			Email:         email,
			PasswordHash:  passwordHash,
			Name:          strings.TrimSpace(req.Name),
			Phone:         req.Phone,
			PaymentHandle: req.PaymentHandle,
		})
		if err != nil {
			// a concurrent register can slip past the pre-checks
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email or username already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		user = created
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}
