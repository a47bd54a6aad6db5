package service

import (
	"testing"

	"ecommerce-api/internal/client"
	"ecommerce-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, staff bool) *model.User {
	t.Helper()

	role := model.RoleClient
	if staff {
		role = model.RoleAdmin
	}
	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsStaff:      staff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCart(t *testing.T, db *gorm.DB, userID uint) *model.Cart {
	t.Helper()

	cart := &model.Cart{UserID: userID}
	require.NoError(t, db.Create(cart).Error)
	return cart
}

func seedCartItem(t *testing.T, db *gorm.DB, cartID, productID uint, quantity int) *model.CartItem {
	t.Helper()

	item := &model.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	require.NoError(t, db.Create(item).Error)
	return item
}
