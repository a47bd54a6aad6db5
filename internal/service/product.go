package service

import (
	"context"
	"errors"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	Get(ctx context.Context, productID uint) (*model.Product, error)
	List(ctx context.Context, query *dto.ProductQuery) (*dto.ProductListResponse, error)
	Update(ctx context.Context, productID uint, req *dto.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, productID uint) error

	CreateReview(ctx context.Context, actor Actor, productID uint, req *dto.ReviewRequest) (*model.Review, error)
	ListReviews(ctx context.Context, productID uint) ([]*model.Review, error)
	UpdateReview(ctx context.Context, actor Actor, productID, reviewID uint, req *dto.ReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, actor Actor, productID, reviewID uint) error

	AddImage(ctx context.Context, productID uint, req *dto.ProductImageRequest) (*model.ProductImage, error)
	ListImages(ctx context.Context, productID uint) ([]*model.ProductImage, error)
	DeleteImage(ctx context.Context, productID, imageID uint) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	imageRepo   repository.ProductImageRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	imageRepo repository.ProductImageRepository,
) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		imageRepo:   imageRepo,
	}
}

func (s *productServiceImpl) Create(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	if req.Name == "" {
		return nil, apperr.Validation("product name is required")
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("price must not be negative")
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productServiceImpl) Get(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	return product, nil
}

func (s *productServiceImpl) List(ctx context.Context, query *dto.ProductQuery) (*dto.ProductListResponse, error) {
	products, count, err := s.productRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &dto.ProductListResponse{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		Results:  products,
	}, nil
}

func (s *productServiceImpl) Update(ctx context.Context, productID uint, req *dto.ProductRequest) (*model.Product, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if !req.Price.IsZero() {
		if req.Price.IsNegative() {
			return nil, apperr.Validation("price must not be negative")
		}
		product.Price = req.Price
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, productID uint) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product not found")
		}
		return err
	}
	return nil
}

func (s *productServiceImpl) CreateReview(ctx context.Context, actor Actor, productID uint, req *dto.ReviewRequest) (*model.Review, error) {
	if req.Ratings < 1 || req.Ratings > 5 {
		return nil, apperr.Validation("ratings must be between 1 and 5")
	}
	if _, err := s.Get(ctx, productID); err != nil {
		return nil, err
	}

	review := &model.Review{
		ProductID: productID,
		UserID:    actor.UserID,
		Ratings:   req.Ratings,
		Body:      req.Body,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *productServiceImpl) ListReviews(ctx context.Context, productID uint) ([]*model.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *productServiceImpl) UpdateReview(ctx context.Context, actor Actor, productID, reviewID uint, req *dto.ReviewRequest) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, productID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}

	// Only the author may edit; staff get no special power over reviews.
	if review.UserID != actor.UserID {
		return nil, apperr.PermissionDenied("you can only edit your own review")
	}

	if req.Ratings != 0 {
		if req.Ratings < 1 || req.Ratings > 5 {
			return nil, apperr.Validation("ratings must be between 1 and 5")
		}
		review.Ratings = req.Ratings
	}
	if req.Body != "" {
		review.Body = req.Body
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *productServiceImpl) DeleteReview(ctx context.Context, actor Actor, productID, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(ctx, productID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("review not found")
		}
		return err
	}

	if review.UserID != actor.UserID {
		return apperr.PermissionDenied("you can only delete your own review")
	}

	return s.reviewRepo.Delete(ctx, productID, reviewID)
}

func (s *productServiceImpl) AddImage(ctx context.Context, productID uint, req *dto.ProductImageRequest) (*model.ProductImage, error) {
	if req.FileName == "" {
		return nil, apperr.Validation("file_name is required")
	}
	if _, err := s.Get(ctx, productID); err != nil {
		return nil, err
	}

	image := &model.ProductImage{
		ProductID:  productID,
		FileName:   req.FileName,
		ObjectName: uuid.NewString(),
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}

	return image, nil
}

func (s *productServiceImpl) ListImages(ctx context.Context, productID uint) ([]*model.ProductImage, error) {
	return s.imageRepo.ListByProduct(ctx, productID)
}

func (s *productServiceImpl) DeleteImage(ctx context.Context, productID, imageID uint) error {
	if err := s.imageRepo.Delete(ctx, productID, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("image not found")
		}
		return err
	}
	return nil
}
