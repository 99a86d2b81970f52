package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/repository"
)

var (
	ErrNoValidFields = errors.New("no valid fields to update")
)

// profileProtectedFields can never be changed through the profile route;
// adminProtectedFields additionally stay locked for admin edits (role is
// allowed there).
var (
	profileProtectedFields = []string{"email", "password", "role", "reset_token", "reset_token_expires"}
	adminProtectedFields   = []string{"password", "reset_token", "reset_token_expires"}
)

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, email string, patch map[string]interface{}) error
	AdminUpdate(ctx context.Context, id primitive.ObjectID, patch map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, email string, patch map[string]interface{}) error {
	fields := sanitize(patch, profileProtectedFields)
	if len(fields) == 0 {
		return ErrNoValidFields
	}

	modified, err := s.userRepo.UpdateByEmail(ctx, email, fields)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) AdminUpdate(ctx context.Context, id primitive.ObjectID, patch map[string]interface{}) error {
	fields := sanitize(patch, adminProtectedFields)
	if len(fields) == 0 {
		return ErrNoValidFields
	}

	if role, ok := fields["role"].(string); ok && !domain.UserRole(role).IsValid() {
		return &ValidationError{Fields: map[string]string{"role": "role must be one of employee, project_manager, admin"}}
	}

	modified, err := s.userRepo.UpdateByID(ctx, id, fields)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}

func sanitize(patch map[string]interface{}, protected []string) bson.M {
	fields := bson.M{}
	for k, v := range patch {
		blocked := false
		for _, p := range protected {
			if k == p {
				blocked = true
				break
			}
		}
		if !blocked {
			fields[k] = v
		}
	}
	return fields
}
