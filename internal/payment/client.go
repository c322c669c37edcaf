package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/umaxship/console/internal/apperrors"
)

const (
	sessionPath       = "/orders"
	defaultAPIVersion = "2023-08-01"
	defaultCurrency   = "INR"
	maxResponseBody   = 1 << 20
)

type Config struct {
	BaseURL    string
	AppID      string
	SecretKey  string
	APIVersion string
	Timeout    time.Duration
}

type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

type SessionRequest struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Customer Customer
}

type Session struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
}

type sessionBody struct {
	OrderID       string          `json:"order_id"`
	OrderAmount   float64         `json:"order_amount"`
	OrderCurrency string          `json:"order_currency"`
	Customer      customerDetails `json:"customer_details"`
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client opens checkout sessions with the payment provider. The browser
// hands the returned session id to the provider's widget.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	body, err := json.Marshal(sessionBody{
		OrderID:       req.OrderID,
		OrderAmount:   req.Amount.Round(2).InexactFloat64(),
		OrderCurrency: currency,
		Customer: customerDetails{
			CustomerID:    req.Customer.ID,
			CustomerName:  req.Customer.Name,
			CustomerEmail: req.Customer.Email,
			CustomerPhone: req.Customer.Phone,
		},
	})
	if err != nil {
		return Session{}, fmt.Errorf("payment: failed to encode request: %w", err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, sessionPath, body)
	if err != nil {
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(respBody, &s); err != nil {
		return Session{}, fmt.Errorf("%w: payment: decode session: %v", apperrors.ErrExternalService, err)
	}
	if s.PaymentSessionID == "" {
		return Session{}, fmt.Errorf("%w: payment: empty payment_session_id", apperrors.ErrExternalService)
	}
	return s, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("payment: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-version", c.config.APIVersion)
	req.Header.Set("x-client-id", c.config.AppID)
	req.Header.Set("x-client-secret", c.config.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: payment: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: payment: read response: %v", apperrors.ErrExternalService, err)
	}
	if len(respBody) > maxResponseBody {
		return nil, fmt.Errorf("%w: payment: response exceeds %d bytes", apperrors.ErrExternalService, maxResponseBody)
	}

	if resp.StatusCode >= 400 {
		var errResp errorBody
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Code != "" {
			return nil, fmt.Errorf("%w: payment: %s - %s", apperrors.ErrExternalService, errResp.Code, errResp.Message)
		}
		return nil, fmt.Errorf("%w: payment: HTTP %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	return respBody, nil
}
