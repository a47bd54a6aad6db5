package service

import (
	"context"
	"testing"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewReviewRepository(db),
		repository.NewProductImageRepository(db),
	)
}

func TestCreateProductValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	svc := newProductService(db)

	_, err := svc.Create(ctx, &dto.ProductRequest{Price: decimal.RequireFromString("10.00")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(ctx, &dto.ProductRequest{Name: "Product", Price: decimal.RequireFromString("-1")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestListProductsFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProduct(t, db, "Cheap Widget", "5.00")
	seedProduct(t, db, "Mid Widget", "15.00")
	seedProduct(t, db, "Posh Widget", "50.00")
	seedProduct(t, db, "Gadget", "20.00")

	svc := newProductService(db)

	result, err := svc.List(ctx, &dto.ProductQuery{Search: "Widget"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Count)

	gt := decimal.RequireFromString("10.00")
	lt := decimal.RequireFromString("30.00")
	result, err = svc.List(ctx, &dto.ProductQuery{PriceGT: &gt, PriceLT: &lt})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Count)

	// count reflects the full filtered set, not the page
	result, err = svc.List(ctx, &dto.ProductQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, result.Count)
	products, ok := result.Results.([]*model.Product)
	require.True(t, ok)
	assert.Len(t, products, 2)
}

func TestListProductsOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProduct(t, db, "B", "20.00")
	seedProduct(t, db, "A", "10.00")

	svc := newProductService(db)

	result, err := svc.List(ctx, &dto.ProductQuery{Ordering: "price"})
	require.NoError(t, err)
	products := result.Results.([]*model.Product)
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].Name)

	result, err = svc.List(ctx, &dto.ProductQuery{Ordering: "-price"})
	require.NoError(t, err)
	products = result.Results.([]*model.Product)
	assert.Equal(t, "B", products[0].Name)
}

func TestReviewsAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := seedUser(t, db, "author@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	staff := seedUser(t, db, "admin@example.com", true)
	product := seedProduct(t, db, "Product", "10.00")

	svc := newProductService(db)

	review, err := svc.CreateReview(ctx, Actor{UserID: author.ID}, product.ID, &dto.ReviewRequest{
		Ratings: 4,
		Body:    "solid",
	})
	require.NoError(t, err)

	_, err = svc.UpdateReview(ctx, Actor{UserID: other.ID}, product.ID, review.ID, &dto.ReviewRequest{Ratings: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermissionDenied, apperr.KindOf(err))

	// staff get no special power over reviews
	err = svc.DeleteReview(ctx, Actor{UserID: staff.ID, IsStaff: true}, product.ID, review.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermissionDenied, apperr.KindOf(err))

	updated, err := svc.UpdateReview(ctx, Actor{UserID: author.ID}, product.ID, review.ID, &dto.ReviewRequest{Ratings: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Ratings)

	require.NoError(t, svc.DeleteReview(ctx, Actor{UserID: author.ID}, product.ID, review.ID))
}

func TestCreateReviewRatingBounds(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "author@example.com", false)
	product := seedProduct(t, db, "Product", "10.00")

	svc := newProductService(db)

	for _, ratings := range []int{0, 6} {
		_, err := svc.CreateReview(ctx, Actor{UserID: user.ID}, product.ID, &dto.ReviewRequest{Ratings: ratings})
		require.Error(t, err, "ratings %d", ratings)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestAddImageAssignsObjectName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Product", "10.00")
	svc := newProductService(db)

	image, err := svc.AddImage(ctx, product.ID, &dto.ProductImageRequest{FileName: "front.png"})
	require.NoError(t, err)

	assert.Equal(t, "front.png", image.FileName)
	_, err = uuid.Parse(image.ObjectName)
	assert.NoError(t, err)
}
