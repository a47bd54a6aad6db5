package handler

import (
	"net/http"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var query dto.ProductQuery
	if err := c.Bind(&query); err != nil {
		return apperr.Validation("invalid query parameters")
	}

	result, err := h.productService.List(ctx, &query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}

	product, err := h.productService.Get(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	product, err := h.productService.Create(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	product, err := h.productService.Update(ctx, productID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}

	if err := h.productService.Delete(ctx, productID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// -------- reviews --------

func (h *ProductHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}

	reviews, err := h.productService.ListReviews(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ProductHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}

	var req dto.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	review, err := h.productService.CreateReview(ctx, act, productID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *ProductHandler) UpdateReview(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}
	reviewID, err := paramUint(c, "reviewId")
	if err != nil {
		return err
	}

	var req dto.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	review, err := h.productService.UpdateReview(ctx, act, productID, reviewID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ProductHandler) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}
	reviewID, err := paramUint(c, "reviewId")
	if err != nil {
		return err
	}

	if err := h.productService.DeleteReview(ctx, act, productID, reviewID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// -------- images --------

func (h *ProductHandler) ListImages(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}

	images, err := h.productService.ListImages(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, images)
}

func (h *ProductHandler) AddImage(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}

	var req dto.ProductImageRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	image, err := h.productService.AddImage(ctx, productID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, image)
}

func (h *ProductHandler) DeleteImage(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramUint(c, "productId")
	if err != nil {
		return err
	}
	imageID, err := paramUint(c, "imageId")
	if err != nil {
		return err
	}

	if err := h.productService.DeleteImage(ctx, productID, imageID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
