package service

import (
	"context"
	"errors"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"

	"gorm.io/gorm"
)

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	UserID  uint
	IsStaff bool
}

type UserService interface {
	Get(ctx context.Context, actor Actor, userID uint) (*model.User, error)
	List(ctx context.Context, actor Actor) ([]*model.User, error)
	Update(ctx context.Context, actor Actor, userID uint, req *dto.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, actor Actor, userID uint) error
	ChangeRole(ctx context.Context, userID uint, role string) (*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) Get(ctx context.Context, actor Actor, userID uint) (*model.User, error) {
	if !actor.IsStaff && actor.UserID != userID {
		return nil, apperr.NotFound("user not found")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	return user, nil
}

// List returns every user for staff, and only the caller otherwise.
func (s *userServiceImpl) List(ctx context.Context, actor Actor) ([]*model.User, error) {
	if actor.IsStaff {
		return s.userRepo.List(ctx)
	}

	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return []*model.User{user}, nil
}

func (s *userServiceImpl) Update(ctx context.Context, actor Actor, userID uint, req *dto.UpdateUserRequest) (*model.User, error) {
	if !actor.IsStaff && actor.UserID != userID {
		return nil, apperr.PermissionDenied("you can only update your own profile")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, actor Actor, userID uint) error {
	if !actor.IsStaff && actor.UserID != userID {
		return apperr.PermissionDenied("you can only delete your own account")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}

	return nil
}

func (s *userServiceImpl) ChangeRole(ctx context.Context, userID uint, role string) (*model.User, error) {
	if role != model.RoleClient && role != model.RoleAdmin {
		return nil, apperr.Validation("role must be Client or Admin")
	}

	// The staff flag follows the role; it is what permission checks read.
	if err := s.userRepo.UpdateRole(ctx, userID, role, role == model.RoleAdmin); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	return s.userRepo.FindByID(ctx, userID)
}
