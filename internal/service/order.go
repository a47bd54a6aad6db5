package service

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	// CreateOrder converts the cart into an immutable order in one
	// transaction. The cart row is locked for the duration, so of two
	// concurrent checkouts of the same cart exactly one succeeds; the
	// other sees an empty cart and fails validation.
	CreateOrder(ctx context.Context, userID, cartID uint) (*model.Order, error)
	CancelOrder(ctx context.Context, actor Actor, orderID uint) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (*model.Order, error)
	Get(ctx context.Context, actor Actor, orderID uint) (*model.Order, error)
	List(ctx context.Context, actor Actor) ([]*model.Order, error)
	Delete(ctx context.Context, orderID uint) error
}

type orderServiceImpl struct {
	db                        *gorm.DB
	cartRepo                  repository.CartRepository
	orderRepo                 repository.OrderRepository
	allowStaffCancelDelivered bool
}

func NewOrderService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	allowStaffCancelDelivered bool,
) OrderService {
	return &orderServiceImpl{
		db:                        db,
		cartRepo:                  cartRepo,
		orderRepo:                 orderRepo,
		allowStaffCancelDelivered: allowStaffCancelDelivered,
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID, cartID uint) (*model.Order, error) {
	var order *model.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.FindForUpdate(ctx, tx, cartID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("cart not found")
			}
			return fmt.Errorf("lock cart: %w", err)
		}

		items, err := s.cartRepo.ListItems(ctx, tx, cart.ID)
		if err != nil {
			return fmt.Errorf("load cart items: %w", err)
		}

		if len(items) == 0 {
			return apperr.Validation("Cart is empty")
		}

		totalPrice := decimal.Zero
		for _, item := range items {
			totalPrice = totalPrice.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order = &model.Order{
			UserID:     userID,
			Status:     model.OrderStatusUnpaid,
			TotalPrice: totalPrice,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		orderItems := make([]*model.OrderItem, len(items))
		for i, item := range items {
			lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			orderItems[i] = &model.OrderItem{
				OrderID:    order.ID,
				ProductID:  item.ProductID,
				Price:      item.Product.Price,
				Quantity:   item.Quantity,
				TotalPrice: lineTotal,
			}
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}
		order.Items = make([]model.OrderItem, len(orderItems))
		for i, item := range orderItems {
			order.Items[i] = *item
		}

		// The cart row survives, empty and ready for reuse.
		if err := s.cartRepo.ClearItems(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderServiceImpl) CancelOrder(ctx context.Context, actor Actor, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	if !actor.IsStaff && order.UserID != actor.UserID {
		return nil, apperr.PermissionDenied("You can only cancel your own order")
	}

	// Re-canceling is a no-op, not an error.
	if order.Status == model.OrderStatusCanceled {
		return order, nil
	}

	if order.Status == model.OrderStatusDelivered {
		if !actor.IsStaff || !s.allowStaffCancelDelivered {
			return nil, apperr.Validation("You can not cancel an order")
		}
	}

	return s.setStatus(ctx, order, model.OrderStatusCanceled)
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID uint, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, apperr.Validation("invalid order status")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	return s.setStatus(ctx, order, status)
}

func (s *orderServiceImpl) Get(ctx context.Context, actor Actor, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	if !actor.IsStaff && order.UserID != actor.UserID {
		return nil, apperr.NotFound("order not found")
	}

	return order, nil
}

func (s *orderServiceImpl) List(ctx context.Context, actor Actor) ([]*model.Order, error) {
	if actor.IsStaff {
		return s.orderRepo.List(ctx)
	}
	return s.orderRepo.ListByUser(ctx, actor.UserID)
}

func (s *orderServiceImpl) Delete(ctx context.Context, orderID uint) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		return err
	}
	return nil
}

func (s *orderServiceImpl) setStatus(ctx context.Context, order *model.Order, status string) (*model.Order, error) {
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
