package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

// User service errors.
var (
	ErrUserNotFound      = repository.ErrUserNotFound
	ErrDuplicateUsername = repository.ErrDuplicateUsername
	ErrDuplicateEmail    = repository.ErrDuplicateEmail
)

// UserService provisions and maintains staff accounts. Every operation is
// admin-only; role assignments happen nowhere else.
type UserService interface {
	Create(ctx context.Context, actor authz.Actor, req dto.UserCreateRequest) (dto.UserResponse, error)
	List(ctx context.Context, actor authz.Actor) ([]dto.UserResponse, error)
	Get(ctx context.Context, actor authz.Actor, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, actor authz.Actor, id uint, req dto.UserUpdateRequest) (dto.UserResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs the user management service.
func NewUserService(repo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, actor authz.Actor, req dto.UserCreateRequest) (dto.UserResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityAdminOnly); err != nil {
		return dto.UserResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         strings.ToLower(req.Role),
		Active:       true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Uint("actor_id", actor.ID).Msg("staff account created")
	return dto.NewUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, actor authz.Actor) ([]dto.UserResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityAdminOnly); err != nil {
		return nil, err
	}

	users, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}
	return responses, nil
}

func (s *userService) Get(ctx context.Context, actor authz.Actor, id uint) (dto.UserResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityAdminOnly); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, actor authz.Actor, id uint, req dto.UserUpdateRequest) (dto.UserResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityAdminOnly); err != nil {
		return dto.UserResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		user.Role = strings.ToLower(*req.Role)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return dto.UserResponse{}, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Uint("actor_id", actor.ID).Msg("staff account updated")
	return dto.NewUserResponse(user), nil
}
