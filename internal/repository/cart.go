package repository

import (
	"context"
	"errors"

	"ecommerce-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*model.Cart, bool, error)
	FindByID(ctx context.Context, cartID uint) (*model.Cart, error)
	// FindForUpdate loads the cart row inside tx with a row lock, so
	// concurrent checkouts of the same cart serialize on it.
	FindForUpdate(ctx context.Context, tx *gorm.DB, cartID, userID uint) (*model.Cart, error)
	Delete(ctx context.Context, cartID uint) error

	ListItems(ctx context.Context, tx *gorm.DB, cartID uint) ([]*model.CartItem, error)
	UpsertItem(ctx context.Context, cartID, productID uint, quantity int) error
	FindItem(ctx context.Context, cartID, itemID uint) (*model.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID uint) error
	ClearItems(ctx context.Context, tx *gorm.DB, cartID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) GetOrCreate(ctx context.Context, userID uint) (*model.Cart, bool, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error

	if err == nil {
		return &cart, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cart = model.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, false, err
	}
	cart.Items = []model.CartItem{}

	return &cart, true, nil
}

func (r *cartRepoImpl) FindByID(ctx context.Context, cartID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("id = ?", cartID).
		First(&cart).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) FindForUpdate(ctx context.Context, tx *gorm.DB, cartID, userID uint) (*model.Cart, error) {
	q := tx.WithContext(ctx)
	// sqlite has no row locks; its single writer serializes checkouts anyway.
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart model.Cart
	err := q.Where("id = ? AND user_id = ?", cartID, userID).
		First(&cart).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) Delete(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ClearItems(ctx, tx, cartID); err != nil {
			return err
		}
		result := tx.Delete(&model.Cart{}, cartID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *cartRepoImpl) ListItems(ctx context.Context, tx *gorm.DB, cartID uint) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := tx.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) UpsertItem(ctx context.Context, cartID, productID uint, quantity int) error {
	item := model.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
		}),
	}).Create(&item).Error
}

func (r *cartRepoImpl) FindItem(ctx context.Context, cartID, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error {
	result := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)

	if result.Error != nil {
		return result.Error
	}
	// mysql reports zero affected rows for a same-value update, so absence
	// has to be checked explicitly rather than inferred from the count
	if result.RowsAffected == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&model.CartItem{}).
			Where("id = ? AND cart_id = ?", itemID, cartID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *cartRepoImpl) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	result := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}, itemID)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepoImpl) ClearItems(ctx context.Context, tx *gorm.DB, cartID uint) error {
	return tx.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
