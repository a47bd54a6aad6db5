package repository

import (
	"context"

	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	List(ctx context.Context, query *dto.ProductQuery) ([]*model.Product, int64, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID uint) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context, query *dto.ProductQuery) ([]*model.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if query.PriceGT != nil {
		q = q.Where("price > ?", *query.PriceGT)
	}
	if query.PriceLT != nil {
		q = q.Where("price < ?", *query.PriceLT)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	switch query.Ordering {
	case "price":
		q = q.Order("price")
	case "-price":
		q = q.Order("price DESC")
	case "updated_at":
		q = q.Order("updated_at")
	case "-updated_at":
		q = q.Order("updated_at DESC")
	default:
		q = q.Order("id")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var products []*model.Product
	err := q.Preload("Images").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error

	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) Delete(ctx context.Context, productID uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
