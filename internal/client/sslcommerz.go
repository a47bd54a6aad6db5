package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ecommerce-api/internal/config"
)

const (
	sandboxSessionURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveSessionURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

// PaymentClient opens gateway payment sessions. The gateway has no Go SDK;
// its v4 session API is a form-encoded POST returning JSON.
type PaymentClient interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*SessionResponse, error)
}

// SessionRequest is the session payload the gateway expects. Amounts are
// decimal strings; TranID correlates the redirect flow back to an order.
type SessionRequest struct {
	TotalAmount     string
	Currency        string
	TranID          string
	SuccessURL      string
	FailURL         string
	CancelURL       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	CustomerCity    string
	CustomerCountry string
	NumOfItems      int
	ProductName     string
	ProductCategory string
	ProductProfile  string
	ShippingMethod  string
}

type SessionResponse struct {
	Status         string `json:"status"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
	FailedReason   string `json:"failedreason"`
}

func (r *SessionResponse) Succeeded() bool {
	return r.Status == "SUCCESS"
}

type sslcommerzClientImpl struct {
	httpClient *http.Client
	sessionURL string
	storeID    string
	storePass  string
}

func NewSSLCommerzClient(cfg *config.SSLCommerz) PaymentClient {
	sessionURL := liveSessionURL
	if cfg.Sandbox {
		sessionURL = sandboxSessionURL
	}

	return &sslcommerzClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sessionURL: sessionURL,
		storeID:    cfg.StoreID,
		storePass:  cfg.StorePass,
	}
}

func (c *sslcommerzClientImpl) CreateSession(ctx context.Context, sr *SessionRequest) (*SessionResponse, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePass)
	form.Set("total_amount", sr.TotalAmount)
	form.Set("currency", sr.Currency)
	form.Set("tran_id", sr.TranID)
	form.Set("success_url", sr.SuccessURL)
	form.Set("fail_url", sr.FailURL)
	form.Set("cancel_url", sr.CancelURL)
	form.Set("emi_option", "0")
	form.Set("cus_name", sr.CustomerName)
	form.Set("cus_email", sr.CustomerEmail)
	form.Set("cus_phone", sr.CustomerPhone)
	form.Set("cus_add1", sr.CustomerAddress)
	form.Set("cus_city", sr.CustomerCity)
	form.Set("cus_country", sr.CustomerCountry)
	form.Set("shipping_method", sr.ShippingMethod)
	form.Set("multi_card_name", "")
	form.Set("num_of_item", strconv.Itoa(sr.NumOfItems))
	form.Set("product_name", sr.ProductName)
	form.Set("product_category", sr.ProductCategory)
	form.Set("product_profile", sr.ProductProfile)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sessionURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sslcommerz error %d: %s", resp.StatusCode, string(b))
	}

	var result SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode sslcommerz response: %w", err)
	}

	return &result, nil
}
