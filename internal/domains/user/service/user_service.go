package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"renthub-backend/internal/domains/user/model"
	"renthub-backend/internal/domains/user/repository"
	"renthub-backend/pkg/jwt"
)

// =====================================================
// USER SERVICE
// =====================================================
type UserServiceInterface interface {
	// Register creates a tenant or owner account
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// GetByID gets a user profile
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	repo   repository.UserRepoInterface
	jwtMgr *jwt.Manager
	logger zerolog.Logger
}

func NewUserService(repo repository.UserRepoInterface, jwtMgr *jwt.Manager, logger zerolog.Logger) UserServiceInterface {
	return &userService{
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// Register creates a tenant or owner account
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Reject duplicate emails up front for a clean error; the unique
	// constraint still backstops races.
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Role:         req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("role", user.Role).
		Msg("user registered")

	return s.issueToken(user)
}

// Login verifies credentials and issues an access token
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Same error for unknown email and wrong password
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GetByID gets a user profile
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) issueToken(user *model.User) (*model.AuthResponse, error) {
	token, err := s.jwtMgr.GenerateAccessToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		AccessToken: token,
		User:        user,
	}, nil
}
