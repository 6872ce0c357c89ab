// internal/domain/order/client.go
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/gamestore-backend/internal/config"
)

// ErrUnavailable indicates the order service could not be reached. The
// request may not have been received at all, so the caller can retry.
var ErrUnavailable = errors.New("order service unavailable")

// RejectedError indicates the order service refused the order (4xx), for
// example because stock ran out. Retrying without changing the order is
// pointless.
type RejectedError struct {
	StatusCode int
	Detail     string
}

func (e *RejectedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("order rejected (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("order rejected (%d)", e.StatusCode)
}

// ServerError indicates the order service failed internally (5xx). The
// order may be retried later.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("order service error (%d)", e.StatusCode)
}

// Line is one product/quantity pair of an order. Prices are not sent;
// the order service prices the lines itself.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Request represents the order creation payload
type Request struct {
	UserID          uint    `json:"user_id"`
	RemoteUserID    *string `json:"remote_user_id,omitempty"`
	Lines           []Line  `json:"lines"`
	PaymentMethod   string  `json:"payment_method"`
	ShippingAddress string  `json:"shipping_address,omitempty"`

	// IdempotencyKey travels in a header, not the body
	IdempotencyKey string `json:"-"`
}

// Confirmation is the order service's response to a successful creation
type Confirmation struct {
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// Client is the consumed contract of the remote order service
type Client interface {
	CreateOrder(ctx context.Context, req *Request) (*Confirmation, error)
}

// HTTPClient talks to the order microservice over its REST API
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

// NewHTTPClient creates an order service client from configuration
func NewHTTPClient(cfg *config.Config, logger *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: cfg.OrderService.Timeout,
		},
		baseURL: cfg.OrderService.BaseURL,
		logger:  logger,
	}
}

// CreateOrder submits the order exactly once. Transport failures wrap
// ErrUnavailable; HTTP failures map to RejectedError or ServerError so the
// caller can tell which failures are retryable.
func (c *HTTPClient) CreateOrder(ctx context.Context, req *Request) (*Confirmation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).Warn("Order service request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var confirmation Confirmation
		if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
			return nil, fmt.Errorf("failed to decode order confirmation: %w", err)
		}
		return &confirmation, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, &RejectedError{StatusCode: resp.StatusCode, Detail: errBody.Error}

	default:
		return nil, &ServerError{StatusCode: resp.StatusCode}
	}
}
