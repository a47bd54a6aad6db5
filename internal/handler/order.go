package handler

import (
	"fmt"
	"net/http"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.CartID == 0 {
		return apperr.Validation("cart_id is required")
	}

	order, err := h.orderService.CreateOrder(ctx, act.UserID, req.CartID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.List(ctx, act)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	orderID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(ctx, act, orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	orderID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.orderService.CancelOrder(ctx, act, orderID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "Order canceled"})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	order, err := h.orderService.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": fmt.Sprintf("Order status updated to %s", order.Status),
	})
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if err := h.orderService.Delete(ctx, orderID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
