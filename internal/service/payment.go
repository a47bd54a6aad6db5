package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/client"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// billingPlaceholder substitutes for optional profile fields the gateway
// requires but the user never set.
const billingPlaceholder = "N/A"

type PaymentService interface {
	// Initiate validates the caller's claimed amount and item count against
	// the stored order before opening a gateway session. No session is
	// opened unless every check passes; the session always carries the
	// server-held total.
	Initiate(ctx context.Context, userID uint, req *dto.InitiatePaymentRequest) (string, error)
	// HandleSuccess reconciles a gateway success callback back onto the
	// order named by tranID ("order_{id}") and marks it Pending.
	HandleSuccess(ctx context.Context, tranID string) error
}

type paymentServiceImpl struct {
	paymentClient client.PaymentClient
	userRepo      repository.UserRepository
	orderRepo     repository.OrderRepository
	backendURL    string
}

func NewPaymentService(
	paymentClient client.PaymentClient,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	backendURL string,
) PaymentService {
	return &paymentServiceImpl{
		paymentClient: paymentClient,
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		backendURL:    backendURL,
	}
}

func (s *paymentServiceImpl) Initiate(ctx context.Context, userID uint, req *dto.InitiatePaymentRequest) (string, error) {
	if req.OrderID == nil {
		return "", apperr.Validation("Missing order_id")
	}

	order, err := s.orderRepo.FindUnpaidForUser(ctx, *req.OrderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.Validation("Invalid order")
		}
		return "", err
	}

	amount, err := decimal.NewFromString(string(req.Amount))
	if err != nil {
		return "", apperr.Validation("Invalid amount")
	}

	// Exact decimal equality; a one-cent difference is a mismatch.
	if !amount.Equal(order.TotalPrice) {
		return "", apperr.Validation("Amount mismatch")
	}

	if req.NumItems == nil {
		return "", apperr.Validation("Invalid or missing num_items")
	}

	itemCount, err := s.orderRepo.CountItems(ctx, order.ID)
	if err != nil {
		return "", err
	}
	if int64(*req.NumItems) != itemCount {
		return "", apperr.Validation("Item count mismatch")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	session := &client.SessionRequest{
		// Always the stored total, never the caller-supplied amount.
		TotalAmount:     order.TotalPrice.StringFixed(2),
		Currency:        "USD",
		TranID:          fmt.Sprintf("order_%d", order.ID),
		SuccessURL:      s.backendURL + "/api/v1/payment/success/",
		FailURL:         s.backendURL + "/api/v1/payment/fail/",
		CancelURL:       s.backendURL + "/api/v1/payment/cancel/",
		CustomerName:    billingName(user),
		CustomerEmail:   user.Email,
		CustomerPhone:   orPlaceholder(user.PhoneNumber),
		CustomerAddress: orPlaceholder(user.Address),
		CustomerCity:    "Dhaka",
		CustomerCountry: "Bangladesh",
		NumOfItems:      int(itemCount),
		ProductName:     "E-commerce Products",
		ProductCategory: "General",
		ProductProfile:  "general",
		ShippingMethod:  "NO",
	}

	resp, err := s.paymentClient.CreateSession(ctx, session)
	if err != nil {
		return "", apperr.Upstream("Payment initiation failed", err)
	}
	if !resp.Succeeded() {
		return "", apperr.Upstream("Payment initiation failed", errors.New(resp.FailedReason))
	}

	return resp.GatewayPageURL, nil
}

func (s *paymentServiceImpl) HandleSuccess(ctx context.Context, tranID string) error {
	orderID, err := parseTranID(tranID)
	if err != nil {
		return err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		return err
	}

	// Gateway retries replay the callback; a second Pending write is a
	// no-op and terminal orders are left untouched.
	switch order.Status {
	case model.OrderStatusCanceled, model.OrderStatusDelivered:
		return nil
	case model.OrderStatusPending:
		return nil
	}

	return s.orderRepo.UpdateStatus(ctx, order.ID, model.OrderStatusPending)
}

// parseTranID extracts the order id from a "order_{id}" transaction id,
// failing closed on anything malformed.
func parseTranID(tranID string) (uint, error) {
	parts := strings.Split(tranID, "_")
	if len(parts) < 2 {
		return 0, apperr.Validation("invalid transaction id")
	}

	orderID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || orderID == 0 {
		return 0, apperr.Validation("invalid transaction id")
	}

	return uint(orderID), nil
}

func billingName(user *model.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		return user.Email
	}
	return name
}

func orPlaceholder(value *string) string {
	if value == nil || *value == "" {
		return billingPlaceholder
	}
	return *value
}
