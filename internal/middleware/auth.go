package middleware

import (
	"net/http"
	"strings"
	"time"

	"ecommerce-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth_claims"

// Claims is the JWT payload.
type Claims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsStaff bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

// GenerateToken signs an access token for user, valid for ttl.
func GenerateToken(secret []byte, user *model.User, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "ecommerce-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Auth validates the bearer token and attaches claims to the request context.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Authentication required"})
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid authorization header"})
			}

			token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid or expired token"})
			}

			claims, ok := token.Claims.(*Claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid token claims"})
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// GetClaims returns the claims attached by Auth, or nil.
func GetClaims(c echo.Context) *Claims {
	if claims, ok := c.Get(claimsContextKey).(*Claims); ok {
		return claims
	}
	return nil
}

// AdminOnly rejects callers without the staff flag.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || !claims.IsStaff {
			return c.JSON(http.StatusForbidden, echo.Map{"detail": "admin role required"})
		}
		return next(c)
	}
}
