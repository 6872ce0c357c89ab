// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/gamestore-backend/internal/domain/cart"
	"github.com/your-org/gamestore-backend/internal/domain/checkout"
	"github.com/your-org/gamestore-backend/internal/domain/library"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	carts           *cart.Registry
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(carts *cart.Registry, checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		carts:           carts,
		checkoutService: checkoutService,
	}
}

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	UserID          *uint   `json:"user_id"`
	RemoteUserID    *string `json:"remote_user_id,omitempty"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
	ShippingAddress string  `json:"shipping_address,omitempty"`
}

// RetryLibraryRequest represents a retry of the library-recording step
type RetryLibraryRequest struct {
	UserID uint                    `json:"user_id" binding:"required"`
	Items  []library.PurchasedItem `json:"items" binding:"required,min=1,dive"`
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	store := h.carts.Get(getOrCreateSessionID(c))

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result := h.checkoutService.Execute(c.Request.Context(), store, checkout.Input{
		UserID:          req.UserID,
		RemoteUserID:    req.RemoteUserID,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
	})

	c.JSON(statusCodeFor(result), gin.H{
		"message": result.Message,
		"data":    result,
	})
}

// RetryLibrary handles POST /checkout/retry-library. Used after a
// library_pending checkout result to finish recording ownership without
// resubmitting the order.
func (h *CheckoutHandler) RetryLibrary(c *gin.Context) {
	var req RetryLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	added, err := h.checkoutService.RetryLibraryRecording(c.Request.Context(), req.UserID, req.Items)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to record library entries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Library entries recorded successfully",
		"data": gin.H{
			"added": added,
		},
	})
}

// statusCodeFor maps a checkout result to an HTTP status code
func statusCodeFor(result checkout.Result) int {
	switch result.Status {
	case checkout.ResultCompleted:
		return http.StatusOK
	case checkout.ResultLibraryPending:
		return http.StatusAccepted
	case checkout.ResultInvalid:
		if result.Message == checkout.MsgLoginRequired {
			return http.StatusUnauthorized
		}
		return http.StatusBadRequest
	case checkout.ResultInProgress:
		return http.StatusConflict
	case checkout.ResultRejected:
		return http.StatusUnprocessableEntity
	case checkout.ResultServerError:
		return http.StatusBadGateway
	case checkout.ResultUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
