package handler

import (
	"fmt"
	"net/http"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(ctx, act)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	userID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(ctx, act, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(ctx, act, act.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	user, err := h.userService.Update(ctx, act, act.UserID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	userID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	user, err := h.userService.Update(ctx, act, userID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	act, err := actor(c)
	if err != nil {
		return err
	}
	userID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(ctx, act, userID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ChangeRole(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req dto.ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	user, err := h.userService.ChangeRole(ctx, userID, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   fmt.Sprintf("%s's role updated successfully", user.Email),
		"new_role": user.Role,
	})
}
