package handler

import (
	"strconv"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/service"

	"github.com/labstack/echo/v4"
)

// paramUint parses a positive integer path parameter.
func paramUint(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(value), nil
}

// actor resolves the authenticated caller from the JWT claims.
func actor(c echo.Context) (service.Actor, error) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return service.Actor{}, echo.ErrUnauthorized
	}
	return service.Actor{UserID: claims.UserID, IsStaff: claims.IsStaff}, nil
}
