package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/domain/shared"
)

// UserService handles user account administration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	user, err := identity.NewUser(req.Username, req.Password, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	user.ClearDomainEvents()

	s.logger.Info("User account created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	response := ToUserResponse(user)
	return &response, nil
}

// Update updates a user account's profile and role
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.SetEmail(req.Email); err != nil {
		return nil, err
	}
	if err := user.SetDisplayName(req.DisplayName); err != nil {
		return nil, err
	}
	if req.Role != "" {
		if err := user.SetRole(identity.UserRole(req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	user.ClearDomainEvents()

	response := ToUserResponse(user)
	return &response, nil
}

// ResetPassword sets a new password for a user without the old one
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User password reset", zap.String("user_id", id.String()))

	return nil
}

// Unlock clears a user's lockout state
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Unlock(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	user.ClearDomainEvents()

	response := ToUserResponse(user)
	return &response, nil
}

// Deactivate deactivates a user account
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	user.ClearDomainEvents()

	response := ToUserResponse(user)
	return &response, nil
}

// Activate reactivates a deactivated user account
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	user.ClearDomainEvents()

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List returns users with pagination
func (s *UserService) List(ctx context.Context, page, pageSize int) ([]UserResponse, int64, error) {
	filter := shared.DefaultFilter()
	if pageSize > 0 {
		filter.Limit = pageSize
	}
	if page > 1 {
		filter.Offset = (page - 1) * filter.Limit
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Delete deletes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User does not exist")
		}
		return nil, err
	}
	return user, nil
}
