// internal/interfaces/http/handlers/checkout_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/gamestore-backend/internal/config"
	"github.com/your-org/gamestore-backend/internal/domain/cart"
	"github.com/your-org/gamestore-backend/internal/domain/checkout"
	"github.com/your-org/gamestore-backend/internal/domain/library"
	"github.com/your-org/gamestore-backend/internal/domain/order"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubOrderClient answers every order with a fixed result
type stubOrderClient struct {
	confirmation *order.Confirmation
	err          error
}

func (s *stubOrderClient) CreateOrder(ctx context.Context, req *order.Request) (*order.Confirmation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.confirmation, nil
}

func setupCheckoutRouter(t *testing.T, client order.Client) (*gin.Engine, *cart.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&library.Entry{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		OrderService: config.OrderServiceConfig{
			BaseURL:        "http://orders.local",
			Timeout:        2 * time.Second,
			IdempotencyTTL: time.Minute,
		},
	}

	recorder := library.NewRecorder(db, log)
	svc := checkout.NewService(client, recorder, nil, cfg, log)

	carts := cart.NewRegistry()
	handler := NewCheckoutHandler(carts, svc)

	router := gin.New()
	router.POST("/checkout", handler.Checkout)
	router.POST("/checkout/retry-library", handler.RetryLibrary)

	return router, carts
}

func postCheckout(t *testing.T, router *gin.Engine, cookie *http.Cookie, payload CheckoutRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seededSession(t *testing.T, carts *cart.Registry) *http.Cookie {
	t.Helper()
	sessionID := "test-session"
	store := carts.Get(sessionID)
	require.True(t, store.AddItem("g1", "Eclipse Vanguard", 49.99, "", nil, 0))
	return &http.Cookie{Name: "session_id", Value: sessionID}
}

func checkoutUser(id uint) *uint {
	return &id
}

func TestCheckoutWithoutLoginReturnsUnauthorized(t *testing.T) {
	router, carts := setupCheckoutRouter(t, &stubOrderClient{})
	cookie := seededSession(t, carts)

	w := postCheckout(t, router, cookie, CheckoutRequest{PaymentMethod: "card"})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, checkout.MsgLoginRequired, resp.Message)
}

func TestCheckoutEmptyCartReturnsBadRequest(t *testing.T) {
	router, _ := setupCheckoutRouter(t, &stubOrderClient{})

	w := postCheckout(t, router, nil, CheckoutRequest{UserID: checkoutUser(7), PaymentMethod: "card"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutSuccess(t *testing.T) {
	router, carts := setupCheckoutRouter(t, &stubOrderClient{
		confirmation: &order.Confirmation{OrderNumber: "ORD-3001", Status: "confirmed"},
	})
	cookie := seededSession(t, carts)

	w := postCheckout(t, router, cookie, CheckoutRequest{UserID: checkoutUser(7), PaymentMethod: "card"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data checkout.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, checkout.ResultCompleted, resp.Data.Status)
	assert.Equal(t, "ORD-3001", resp.Data.OrderNumber)

	assert.Equal(t, 0, carts.Get("test-session").TotalQuantity())
}

func TestCheckoutServiceDownReturnsServiceUnavailable(t *testing.T) {
	router, carts := setupCheckoutRouter(t, &stubOrderClient{err: order.ErrUnavailable})
	cookie := seededSession(t, carts)

	w := postCheckout(t, router, cookie, CheckoutRequest{UserID: checkoutUser(7), PaymentMethod: "card"})

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Cart survives the failed attempt
	assert.Equal(t, 1, carts.Get("test-session").TotalQuantity())
}

func TestCheckoutRejectionReturnsUnprocessable(t *testing.T) {
	router, carts := setupCheckoutRouter(t, &stubOrderClient{
		err: &order.RejectedError{StatusCode: 409, Detail: "No hay stock disponible"},
	})
	cookie := seededSession(t, carts)

	w := postCheckout(t, router, cookie, CheckoutRequest{UserID: checkoutUser(7), PaymentMethod: "card"})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No hay stock disponible", resp.Message)
}

func TestRetryLibraryRecordsEntries(t *testing.T) {
	router, _ := setupCheckoutRouter(t, &stubOrderClient{})

	body, err := json.Marshal(RetryLibraryRequest{
		UserID: 7,
		Items: []library.PurchasedItem{
			{ProductID: "g1", Title: "Eclipse Vanguard"},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/checkout/retry-library", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Added int `json:"added"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Added)
}

func TestRetryLibraryRejectsEmptyItems(t *testing.T) {
	router, _ := setupCheckoutRouter(t, &stubOrderClient{})

	req := httptest.NewRequest(http.MethodPost, "/checkout/retry-library", bytes.NewReader([]byte(`{"user_id":7,"items":[]}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
