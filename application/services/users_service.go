package services

import (
	"context"

	"jobtrack/application/ports"
	"jobtrack/domain/entities"
	apperrors "jobtrack/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 10

// UsersService implements registration and credential verification.
type UsersService struct {
	repo   ports.UserRepository
	logger *zap.Logger
	newID  func() string
}

// NewUsersService creates a new UsersService
func NewUsersService(repo ports.UserRepository, logger *zap.Logger) *UsersService {
	return &UsersService{
		repo:   repo,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// CreateUserInput is the validated shape for registering a user.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// CreateUser registers a new account in pending status with a bcrypt-hashed
// password. Activation happens out of band.
func (s *UsersService) CreateUser(ctx context.Context, in CreateUserInput) (UserDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return UserDTO{}, apperrors.NewInternalError("failed to hash password").WithCause(err)
	}

	model, err := s.repo.InsertUser(ctx, entities.User{
		ID:        s.newID(),
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Status:    entities.UserStatusPending,
	})
	if err != nil {
		s.logger.Error("could not create user", zap.Error(err))
		return UserDTO{}, err
	}

	return toUserDTO(model)
}

// VerifyUser checks a login attempt: the account must be active and the
// password must match the stored hash.
func (s *UsersService) VerifyUser(ctx context.Context, email, password string) (UserDTO, error) {
	model, err := s.getUserModel(ctx, email)
	if err != nil {
		return UserDTO{}, err
	}

	if model.Status != entities.UserStatusActive {
		s.logger.Warn("login attempt for non-active user", zap.String("status", string(model.Status)))
		return UserDTO{}, apperrors.NewUnauthorizedError("user is not active")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(model.Password), []byte(password)); err != nil {
		s.logger.Warn("password hash does not match")
		return UserDTO{}, apperrors.NewUnauthorizedError("invalid password")
	}

	return toUserDTO(model)
}

// GetActiveUser fetches a user by email and rejects non-active accounts.
func (s *UsersService) GetActiveUser(ctx context.Context, email string) (UserDTO, error) {
	model, err := s.getUserModel(ctx, email)
	if err != nil {
		return UserDTO{}, err
	}

	if model.Status != entities.UserStatusActive {
		return UserDTO{}, apperrors.NewUnauthorizedError("user is not active")
	}

	return toUserDTO(model)
}

// GetUserByEmail fetches a user by email regardless of status.
func (s *UsersService) GetUserByEmail(ctx context.Context, email string) (UserDTO, error) {
	model, err := s.getUserModel(ctx, email)
	if err != nil {
		return UserDTO{}, err
	}
	return toUserDTO(model)
}

func (s *UsersService) getUserModel(ctx context.Context, email string) (entities.User, error) {
	model, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error("could not get user by email", zap.Error(err))
		}
		return entities.User{}, err
	}
	return model, nil
}
