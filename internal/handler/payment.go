package handler

import (
	"net/http"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	frontendURL    string
}

func NewPaymentHandler(paymentService service.PaymentService, frontendURL string) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		frontendURL:    frontendURL,
	}
}

func (h *PaymentHandler) Initiate(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	paymentURL, err := h.paymentService.Initiate(ctx, act.UserID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.InitiatePaymentResponse{PaymentURL: paymentURL})
}

// Success is the gateway's success callback, a form post carrying tran_id.
// The browser is sent on to the dashboard after the order is reconciled.
func (h *PaymentHandler) Success(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.paymentService.HandleSuccess(ctx, c.FormValue("tran_id")); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, h.frontendURL+"dashboard")
}

// Fail leaves the order untouched; the gateway flow just returns the
// browser to the dashboard.
func (h *PaymentHandler) Fail(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.frontendURL+"dashboard")
}

func (h *PaymentHandler) Cancel(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.frontendURL+"dashboard")
}
