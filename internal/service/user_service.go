package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-reg-api/internal/models"
	"github.com/noah-isme/course-reg-api/internal/repository"
	appErrors "github.com/noah-isme/course-reg-api/pkg/errors"
)

type userRepository interface {
	Create(username, password string, role models.UserRole, email string) models.User
	FindByName(username string) (models.User, error)
	ResetPassword(username, newPassword string) error
}

// RegisterRequest represents payload for registration. Role defaults to
// student when omitted.
type RegisterRequest struct {
	Username string          `json:"username" validate:"required"`
	Password string          `json:"password" validate:"required"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=student admin"`
}

// ResetPasswordRequest resets a password by username.
type ResetPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// UserService handles registration and password management.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Register creates a new user. An already-taken username is rejected here;
// the store itself does not enforce uniqueness, so this check is advisory
// under concurrent registration.
func (s *UserService) Register(req RegisterRequest) (*models.UserInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid register payload")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	if _, err := s.repo.FindByName(req.Username); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}

	user := s.repo.Create(req.Username, req.Password, role, req.Email)
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return &models.UserInfo{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// ResetPassword replaces the password of the named user.
func (s *UserService) ResetPassword(req ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reset payload")
	}

	if err := s.repo.ResetPassword(req.Username, req.NewPassword); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset password")
	}
	return nil
}
