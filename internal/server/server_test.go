package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ecommerce-api/internal/client"
	"ecommerce-api/internal/config"
	"ecommerce-api/internal/handler"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"
	"ecommerce-api/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubGateway struct {
	response *client.SessionResponse
}

func (g *stubGateway) CreateSession(ctx context.Context, req *client.SessionRequest) (*client.SessionResponse, error) {
	return g.response, nil
}

type testEnv struct {
	srv *Server
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, client.Migrate(db))

	cfg := &config.Config{
		BackendURL:  "https://api.example.com",
		FrontendURL: "https://shop.example.com/",
		Auth:        config.Auth{JWTSecret: "test-secret", TokenTTLHours: 1},
		Order:       config.Order{AllowStaffCancelDelivered: true},
	}

	gateway := &stubGateway{response: &client.SessionResponse{
		Status:         "SUCCESS",
		GatewayPageURL: "https://sandbox.sslcommerz.com/pay/session-1",
	}}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	imageRepo := repository.NewProductImageRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	srv := NewServer(
		cfg,
		handler.NewAuthHandler(service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)),
		handler.NewUserHandler(service.NewUserService(userRepo)),
		handler.NewProductHandler(service.NewProductService(productRepo, reviewRepo, imageRepo)),
		handler.NewCartHandler(service.NewCartService(cartRepo, productRepo)),
		handler.NewOrderHandler(service.NewOrderService(db, cartRepo, orderRepo, cfg.Order.AllowStaffCancelDelivered)),
		handler.NewPaymentHandler(service.NewPaymentService(gateway, userRepo, orderRepo, cfg.BackendURL), cfg.FrontendURL),
	)

	return &testEnv{srv: srv, db: db, cfg: cfg}
}

func (env *testEnv) seedUser(t *testing.T, email string, staff bool) (*model.User, string) {
	t.Helper()

	role := model.RoleClient
	if staff {
		role = model.RoleAdmin
	}
	user := &model.User{Email: email, PasswordHash: "x", Role: role, IsStaff: staff}
	require.NoError(t, env.db.Create(user).Error)

	token, err := middleware.GenerateToken([]byte(env.cfg.Auth.JWTSecret), user, time.Hour)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) jsonRequest(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) formRequest(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	return rec
}

func TestPaymentInitiateRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.jsonRequest(http.MethodPost, "/api/v1/payment/initiate", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPaymentInitiateAmountMismatch(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.seedUser(t, "buyer@example.com", false)

	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusUnpaid,
		TotalPrice: decimal.RequireFromString("25.50"),
	}
	require.NoError(t, env.db.Create(order).Error)

	rec := env.jsonRequest(http.MethodPost, "/api/v1/payment/initiate", token,
		`{"order_id": 1, "amount": "25.49", "num_items": 0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Amount mismatch", body["error"])
}

func TestPaymentInitiateNumericAmount(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.seedUser(t, "buyer@example.com", false)

	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusUnpaid,
		TotalPrice: decimal.RequireFromString("25.50"),
	}
	require.NoError(t, env.db.Create(order).Error)

	// a bare JSON number is as good as a string
	rec := env.jsonRequest(http.MethodPost, "/api/v1/payment/initiate", token,
		`{"order_id": 1, "amount": 25.50, "num_items": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://sandbox.sslcommerz.com/pay/session-1", resp["payment_url"])

	rec = env.jsonRequest(http.MethodPost, "/api/v1/payment/initiate", token,
		`{"order_id": 1, "amount": 25.49, "num_items": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Amount mismatch", body["error"])
}

func TestPaymentSuccessCallback(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.seedUser(t, "buyer@example.com", false)

	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusUnpaid,
		TotalPrice: decimal.RequireFromString("25.50"),
	}
	require.NoError(t, env.db.Create(order).Error)

	rec := env.formRequest("/api/v1/payment/success/", url.Values{"tran_id": {"order_1"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://shop.example.com/dashboard", rec.Header().Get("Location"))

	var reloaded model.Order
	require.NoError(t, env.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusPending, reloaded.Status)
}

func TestPaymentSuccessCallbackMalformedTranID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.formRequest("/api/v1/payment/success/", url.Values{"tran_id": {"garbage"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentCancelAndFailCallbacks(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.seedUser(t, "buyer@example.com", false)

	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusUnpaid,
		TotalPrice: decimal.RequireFromString("25.50"),
	}
	require.NoError(t, env.db.Create(order).Error)

	for _, path := range []string{"/api/v1/payment/cancel/", "/api/v1/payment/fail/"} {
		rec := env.formRequest(path, url.Values{"tran_id": {"order_1"}})
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://shop.example.com/dashboard", rec.Header().Get("Location"))
	}

	// neither callback moves the order
	var reloaded model.Order
	require.NoError(t, env.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusUnpaid, reloaded.Status)
}

func TestCheckoutAndPaymentFlow(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "buyer@example.com", false)

	product := &model.Product{Name: "Product A", Price: decimal.RequireFromString("10.00")}
	require.NoError(t, env.db.Create(product).Error)

	// cart is created lazily on first access
	rec := env.jsonRequest(http.MethodPost, "/api/v1/carts", token, ``)
	require.Equal(t, http.StatusCreated, rec.Code)
	var cart model.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))

	rec = env.jsonRequest(http.MethodPost, "/api/v1/carts/1/items", token,
		`{"product_id": 1, "quantity": 2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.jsonRequest(http.MethodPost, "/api/v1/orders", token, `{"cart_id": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, model.OrderStatusUnpaid, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("20.00")))

	rec = env.jsonRequest(http.MethodPost, "/api/v1/payment/initiate", token,
		`{"order_id": 1, "amount": "20.00", "num_items": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://sandbox.sslcommerz.com/pay/session-1", resp["payment_url"])

	// checking out the now-empty cart again fails validation
	rec = env.jsonRequest(http.MethodPost, "/api/v1/orders", token, `{"cart_id": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderCancelEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.seedUser(t, "buyer@example.com", false)

	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusUnpaid,
		TotalPrice: decimal.RequireFromString("25.50"),
	}
	require.NoError(t, env.db.Create(order).Error)

	rec := env.jsonRequest(http.MethodPost, "/api/v1/orders/1/cancel", token, ``)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Order canceled", body["status"])
}

func TestOrderUpdateStatusAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.seedUser(t, "buyer@example.com", false)
	_, adminToken := env.seedUser(t, "admin@example.com", true)

	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusPending,
		TotalPrice: decimal.RequireFromString("25.50"),
	}
	require.NoError(t, env.db.Create(order).Error)

	rec := env.jsonRequest(http.MethodPatch, "/api/v1/orders/1/update_status", token,
		`{"status": "Delivered"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.jsonRequest(http.MethodPatch, "/api/v1/orders/1/update_status", adminToken,
		`{"status": "Delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Order status updated to Delivered", body["status"])
}
