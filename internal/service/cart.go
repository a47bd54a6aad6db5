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

type CartService interface {
	// GetOrCreate returns the caller's cart, creating it on first access.
	// The bool reports whether a new cart was created.
	GetOrCreate(ctx context.Context, userID uint) (*model.Cart, bool, error)
	Get(ctx context.Context, userID, cartID uint) (*model.Cart, error)
	Delete(ctx context.Context, userID, cartID uint) error

	AddItem(ctx context.Context, userID, cartID uint, req *dto.AddCartItemRequest) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, cartID, itemID uint, req *dto.UpdateCartItemRequest) (*model.CartItem, error)
	RemoveItem(ctx context.Context, userID, cartID, itemID uint) error
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) GetOrCreate(ctx context.Context, userID uint) (*model.Cart, bool, error) {
	return s.cartRepo.GetOrCreate(ctx, userID)
}

func (s *cartServiceImpl) Get(ctx context.Context, userID, cartID uint) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cart not found")
		}
		return nil, err
	}

	// A foreign cart is indistinguishable from a missing one.
	if cart.UserID != userID {
		return nil, apperr.NotFound("cart not found")
	}

	return cart, nil
}

func (s *cartServiceImpl) Delete(ctx context.Context, userID, cartID uint) error {
	if _, err := s.Get(ctx, userID, cartID); err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, cartID)
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID, cartID uint, req *dto.AddCartItemRequest) (*model.Cart, error) {
	if req.Quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	if _, err := s.Get(ctx, userID, cartID); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("product does not exist")
		}
		return nil, err
	}

	// Adding a product already in the cart increments its quantity.
	if err := s.cartRepo.UpsertItem(ctx, cartID, req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	return s.cartRepo.FindByID(ctx, cartID)
}

func (s *cartServiceImpl) UpdateItem(ctx context.Context, userID, cartID, itemID uint, req *dto.UpdateCartItemRequest) (*model.CartItem, error) {
	if req.Quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	if _, err := s.Get(ctx, userID, cartID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, cartID, itemID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cart item not found")
		}
		return nil, err
	}

	return s.cartRepo.FindItem(ctx, cartID, itemID)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, cartID, itemID uint) error {
	if _, err := s.Get(ctx, userID, cartID); err != nil {
		return err
	}

	if err := s.cartRepo.RemoveItem(ctx, cartID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("cart item not found")
		}
		return err
	}

	return nil
}
