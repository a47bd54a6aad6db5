package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ecommerce-api/internal/client"
	"ecommerce-api/internal/config"
	"ecommerce-api/internal/handler"
	"ecommerce-api/internal/repository"
	"ecommerce-api/internal/server"
	"ecommerce-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitDBClient(cfg.DatabaseURL)
	paymentClient := client.NewSSLCommerzClient(&cfg.SSLCommerz)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	imageRepo := repository.NewProductImageRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, reviewRepo, imageRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(db, cartRepo, orderRepo, cfg.Order.AllowStaffCancelDelivered)
	paymentService := service.NewPaymentService(paymentClient, userRepo, orderRepo, cfg.BackendURL)

	srv := server.NewServer(
		cfg,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewProductHandler(productService),
		handler.NewCartHandler(cartService),
		handler.NewOrderHandler(orderService),
		handler.NewPaymentHandler(paymentService, cfg.FrontendURL),
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
