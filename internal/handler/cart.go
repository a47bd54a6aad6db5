package handler

import (
	"net/http"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// Create is get-or-create: 201 with a fresh cart on first access, 200 with
// the existing cart afterwards.
func (h *CartHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}

	cart, created, err := h.cartService.GetOrCreate(ctx, act.UserID)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, cart)
}

func (h *CartHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	cartID, err := paramUint(c, "cartId")
	if err != nil {
		return err
	}

	cart, err := h.cartService.Get(ctx, act.UserID, cartID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	cartID, err := paramUint(c, "cartId")
	if err != nil {
		return err
	}

	if err := h.cartService.Delete(ctx, act.UserID, cartID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	cartID, err := paramUint(c, "cartId")
	if err != nil {
		return err
	}

	cart, err := h.cartService.Get(ctx, act.UserID, cartID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cart.Items)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	cartID, err := paramUint(c, "cartId")
	if err != nil {
		return err
	}

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	cart, err := h.cartService.AddItem(ctx, act.UserID, cartID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	cartID, err := paramUint(c, "cartId")
	if err != nil {
		return err
	}
	itemID, err := paramUint(c, "itemId")
	if err != nil {
		return err
	}

	var req dto.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	item, err := h.cartService.UpdateItem(ctx, act.UserID, cartID, itemID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	cartID, err := paramUint(c, "cartId")
	if err != nil {
		return err
	}
	itemID, err := paramUint(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.cartService.RemoveItem(ctx, act.UserID, cartID, itemID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
