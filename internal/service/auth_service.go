package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

// ErrInvalidCredentials covers unknown usernames, wrong passwords, and
// deactivated accounts without distinguishing them to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session lifetimes per role. Privileged sessions expire sooner.
var roleTokenTTL = map[string]time.Duration{
	models.RoleAdmin:  15 * time.Minute,
	models.RoleAgent:  time.Hour,
	models.RoleViewer: 4 * time.Hour,
}

// defaultTokenTTL applies to accounts without a role record; they can log in
// but every gated operation will deny them.
const defaultTokenTTL = 15 * time.Minute

// AuthService issues backoffice session tokens.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	users     repository.UserRepository
	secret    string
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, secret string, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		secret:    secret,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}
	if !user.Active {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	ttl, ok := roleTokenTTL[user.Role]
	if !ok {
		ttl = defaultTokenTTL
	}
	expiresAt := s.now().Add(ttl)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.DisplayName(),
		"role": user.Role,
		"exp":  expiresAt.Unix(),
		"iat":  s.now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("backoffice login")
	return dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}
