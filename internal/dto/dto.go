package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access"`
}

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductQuery is bound from list query parameters: price window filtering,
// name/description search, ordering by price or updated_at, pagination.
type ProductQuery struct {
	PriceGT  *decimal.Decimal `query:"price_gt"`
	PriceLT  *decimal.Decimal `query:"price_lt"`
	Search   string           `query:"search"`
	Ordering string           `query:"ordering"`
	Page     int              `query:"page"`
	PageSize int              `query:"page_size"`
}

type ProductListResponse struct {
	Count    int64       `json:"count"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Results  interface{} `json:"results"`
}

type ReviewRequest struct {
	Ratings int    `json:"ratings"`
	Body    string `json:"body"`
}

type ProductImageRequest struct {
	FileName string `json:"file_name"`
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CreateOrderRequest struct {
	CartID uint `json:"cart_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Amount is a decimal carried as its raw text. Clients may send either a JSON
// number or a string; validation happens when it is parsed as a decimal.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(s)
		return nil
	}

	// json.Number keeps the literal text, so "25.50" stays "25.50"
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// InitiatePaymentRequest carries the client's claimed view of the order. The
// amount is cross-checked against the server-held total before any gateway
// session is opened.
type InitiatePaymentRequest struct {
	OrderID  *uint  `json:"order_id"`
	Amount   Amount `json:"amount"`
	NumItems *int   `json:"num_items"`
}

type InitiatePaymentResponse struct {
	PaymentURL string `json:"payment_url"`
}
