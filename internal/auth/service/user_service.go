package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/khen08/todoapp/internal/auth/domain UserRepository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/khen08/todoapp/internal/auth/domain"
	"github.com/khen08/todoapp/internal/auth/dto"
	autherror "github.com/khen08/todoapp/internal/errors"
	"github.com/khen08/todoapp/pkg/constant"
)

var userOrderColumns = map[string]bool{
	"name":       true,
	"username":   true,
	"role":       true,
	"created_at": true,
}

type UserService struct {
	repo domain.UserRepository
}

func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Create(ctx context.Context, input dto.CreateUserInput) (*domain.User, error) {
	existing, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrUsernameAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role != constant.RoleAdmin {
		role = constant.RoleUser
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input dto.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if input.Username != nil && *input.Username != user.Username {
		duplicate, err := s.repo.GetByUsername(ctx, *input.Username)
		if err != nil {
			return nil, err
		}
		if duplicate != nil {
			return nil, autherror.ErrUsernameAlreadyInUse
		}
		user.Username = *input.Username
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil && (*input.Role == constant.RoleAdmin || *input.Role == constant.RoleUser) {
		user.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashedPassword)
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *UserService) List(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error) {
	if f.Role != constant.RoleAdmin && f.Role != constant.RoleUser {
		f.Role = ""
	}
	if !userOrderColumns[f.OrderBy] {
		f.OrderBy = "name"
	}
	if f.Order != "desc" {
		f.Order = "asc"
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > constant.MaxPageSize {
		f.PageSize = constant.DefaultPageSize
	}
	return s.repo.List(ctx, f)
}
