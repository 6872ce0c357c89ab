// internal/domain/order/client_test.go
package order

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/gamestore-backend/internal/config"
)

func newTestClient(baseURL string) *HTTPClient {
	cfg := &config.Config{
		OrderService: config.OrderServiceConfig{
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
		},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHTTPClient(cfg, logger)
}

func sampleRequest() *Request {
	return &Request{
		UserID: 7,
		Lines: []Line{
			{ProductID: "g1", Quantity: 2},
			{ProductID: "g2", Quantity: 1},
		},
		PaymentMethod:  "card",
		IdempotencyKey: "idem-123",
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "idem-123", r.Header.Get("Idempotency-Key"))

		var payload struct {
			UserID        uint   `json:"user_id"`
			Lines         []Line `json:"lines"`
			PaymentMethod string `json:"payment_method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, uint(7), payload.UserID)
		require.Len(t, payload.Lines, 2)
		assert.Equal(t, "g1", payload.Lines[0].ProductID)
		assert.Equal(t, 2, payload.Lines[0].Quantity)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Confirmation{
			OrderNumber: "ORD-2001",
			Status:      "confirmed",
			TotalAmount: 129.97,
			CreatedAt:   time.Now().UTC(),
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	confirmation, err := client.CreateOrder(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "ORD-2001", confirmation.OrderNumber)
	assert.Equal(t, "confirmed", confirmation.Status)
	assert.InDelta(t, 129.97, confirmation.TotalAmount, 0.001)
}

func TestCreateOrderRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "No hay stock disponible"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateOrder(context.Background(), sampleRequest())

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusConflict, rejected.StatusCode)
	assert.Equal(t, "No hay stock disponible", rejected.Detail)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestCreateOrderRejectedWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateOrder(context.Background(), sampleRequest())

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Empty(t, rejected.Detail)
}

func TestCreateOrderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateOrder(context.Background(), sampleRequest())

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.StatusCode)
}

func TestCreateOrderTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL)

	_, err := client.CreateOrder(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateOrderOmitsEmptyIdempotencyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Idempotency-Key"]
		assert.False(t, present)
		json.NewEncoder(w).Encode(Confirmation{OrderNumber: "ORD-2002"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	req := sampleRequest()
	req.IdempotencyKey = ""

	_, err := client.CreateOrder(context.Background(), req)

	require.NoError(t, err)
}
