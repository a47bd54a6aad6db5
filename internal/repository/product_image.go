package repository

import (
	"context"

	"ecommerce-api/internal/model"

	"gorm.io/gorm"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *model.ProductImage) error
	FindByID(ctx context.Context, productID, imageID uint) (*model.ProductImage, error)
	ListByProduct(ctx context.Context, productID uint) ([]*model.ProductImage, error)
	Delete(ctx context.Context, productID, imageID uint) error
}

type productImageRepoImpl struct {
	db *gorm.DB
}

func NewProductImageRepository(db *gorm.DB) ProductImageRepository {
	return &productImageRepoImpl{
		db: db,
	}
}

func (r *productImageRepoImpl) Create(ctx context.Context, image *model.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productImageRepoImpl) FindByID(ctx context.Context, productID, imageID uint) (*model.ProductImage, error) {
	var image model.ProductImage
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		First(&image).Error

	if err != nil {
		return nil, err
	}

	return &image, nil
}

func (r *productImageRepoImpl) ListByProduct(ctx context.Context, productID uint) ([]*model.ProductImage, error) {
	var images []*model.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id").
		Find(&images).Error

	if err != nil {
		return nil, err
	}

	return images, nil
}

func (r *productImageRepoImpl) Delete(ctx context.Context, productID, imageID uint) error {
	result := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductImage{}, imageID)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
