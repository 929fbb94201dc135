package services

import (
	"context"
	"errors"
	"fmt"

	"toko/internal/models"
	"toko/internal/repositories"

	"github.com/go-playground/validator/v10"
)

var ErrUserNotFound = errors.New("user not found")

// UpdateProfileRequest carries the profile fields a user may change. Empty
// fields keep their current value.
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UserService manages the authenticated user's own profile.
type UserService struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, validate: validator.New()}
}

// GetProfile returns the user without the password hash.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, translateUserErr(userID, err)
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile changes the username and/or email. Both must stay unique.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, translateUserErr(userID, err)
	}

	if req.Username != "" && req.Username != user.Username {
		if other, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil && other != nil {
			return nil, fmt.Errorf("username '%s' already taken: %w", req.Username, ErrUserExists)
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		if other, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && other != nil {
			return nil, fmt.Errorf("email '%s' already registered: %w", req.Email, ErrUserExists)
		}
		user.Email = req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, translateUserErr(userID, err)
	}
	user.Password = ""
	return user, nil
}

// DeleteProfile removes the user. Tokens already issued stop resolving to a profile.
func (s *UserService) DeleteProfile(ctx context.Context, userID string) error {
	return translateUserErr(userID, s.userRepo.Delete(ctx, userID))
}

func translateUserErr(id string, err error) error {
	if err != nil && errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("user %s: %w", id, ErrUserNotFound)
	}
	return err
}
