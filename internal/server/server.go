package server

import (
	"net/http"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/config"
	"ecommerce-api/internal/handler"
	"ecommerce-api/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	cfg            *config.Config
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
}

func NewServer(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		cfg:            cfg,
		authHandler:    authHandler,
		userHandler:    userHandler,
		productHandler: productHandler,
		cartHandler:    cartHandler,
		orderHandler:   orderHandler,
		paymentHandler: paymentHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api/v1")
	auth := middleware.Auth([]byte(s.cfg.Auth.JWTSecret))

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/auth/register", s.authHandler.Register)
	api.POST("/auth/login", s.authHandler.Login)

	// -------- users --------
	users := api.Group("/users", auth)
	users.GET("", s.userHandler.List)
	users.GET("/me", s.userHandler.Me)
	users.PATCH("/me", s.userHandler.UpdateMe)
	users.GET("/:id", s.userHandler.Get)
	users.PATCH("/:id", s.userHandler.Update)
	users.DELETE("/:id", s.userHandler.Delete)
	users.PATCH("/:id/change_role", s.userHandler.ChangeRole, middleware.AdminOnly)

	// -------- products (read is public, writes are admin) --------
	products := api.Group("/products")
	products.GET("", s.productHandler.List)
	products.GET("/:productId", s.productHandler.Get)
	products.POST("", s.productHandler.Create, auth, middleware.AdminOnly)
	products.PATCH("/:productId", s.productHandler.Update, auth, middleware.AdminOnly)
	products.DELETE("/:productId", s.productHandler.Delete, auth, middleware.AdminOnly)

	products.GET("/:productId/reviews", s.productHandler.ListReviews)
	products.POST("/:productId/reviews", s.productHandler.CreateReview, auth)
	products.PATCH("/:productId/reviews/:reviewId", s.productHandler.UpdateReview, auth)
	products.DELETE("/:productId/reviews/:reviewId", s.productHandler.DeleteReview, auth)

	products.GET("/:productId/images", s.productHandler.ListImages)
	products.POST("/:productId/images", s.productHandler.AddImage, auth, middleware.AdminOnly)
	products.DELETE("/:productId/images/:imageId", s.productHandler.DeleteImage, auth, middleware.AdminOnly)

	// -------- carts --------
	carts := api.Group("/carts", auth)
	carts.POST("", s.cartHandler.Create)
	carts.GET("/:cartId", s.cartHandler.Get)
	carts.DELETE("/:cartId", s.cartHandler.Delete)
	carts.GET("/:cartId/items", s.cartHandler.ListItems)
	carts.POST("/:cartId/items", s.cartHandler.AddItem)
	carts.PATCH("/:cartId/items/:itemId", s.cartHandler.UpdateItem)
	carts.DELETE("/:cartId/items/:itemId", s.cartHandler.RemoveItem)

	// -------- orders --------
	orders := api.Group("/orders", auth)
	orders.POST("", s.orderHandler.Create)
	orders.GET("", s.orderHandler.List)
	orders.GET("/:id", s.orderHandler.Get)
	orders.POST("/:id/cancel", s.orderHandler.Cancel)
	orders.PATCH("/:id/update_status", s.orderHandler.UpdateStatus, middleware.AdminOnly)
	orders.DELETE("/:id", s.orderHandler.Delete, middleware.AdminOnly)

	// -------- payment --------
	api.POST("/payment/initiate", s.paymentHandler.Initiate, auth)

	// Gateway callbacks must stay public.
	api.POST("/payment/success", s.paymentHandler.Success)
	api.POST("/payment/fail", s.paymentHandler.Fail)
	api.POST("/payment/cancel", s.paymentHandler.Cancel)
}

// httpErrorHandler maps the apperr taxonomy onto status codes. Upstream
// failures surface as 400 with their generic message; anything outside the
// taxonomy is a 500.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindUpstream:
		status = http.StatusBadRequest
	case apperr.KindPermissionDenied:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	default:
		if he, ok := err.(*echo.HTTPError); ok {
			_ = c.JSON(he.Code, echo.Map{"error": he.Message})
			return
		}
		c.Logger().Error(err)
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		return
	}

	_ = c.JSON(status, echo.Map{"error": apperr.MessageOf(err)})
}

// ServeHTTP lets the server be driven directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
