// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/gamestore-backend/internal/domain/cart"
	"github.com/your-org/gamestore-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	carts          *cart.Registry
	catalogService *catalog.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Registry, db *gorm.DB) *CartHandler {
	return &CartHandler{
		carts:          carts,
		catalogService: catalog.NewService(db),
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// cartResponse builds the cart payload returned by every cart endpoint
func cartResponse(store *cart.Store) gin.H {
	success, errMsg := store.Messages()
	lines := store.Lines()
	return gin.H{
		"lines": lines,
		"totals": cart.Totals{
			LineCount:     len(lines),
			TotalQuantity: store.TotalQuantity(),
			TotalPrice:    store.TotalPrice(),
		},
		"success_message": success,
		"error_message":   errMsg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.carts.Get(getOrCreateSessionID(c))

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse(store),
	})
}

// AddToCart handles POST /cart/items. The game's title and price come from
// the catalog, never from the client.
func (h *CartHandler) AddToCart(c *gin.Context) {
	store := h.carts.Get(getOrCreateSessionID(c))

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	game, err := h.catalogService.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Game not found or inactive",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve game",
		})
		return
	}

	added := store.AddItem(game.ProductID, game.Title, game.Price, game.ImageURL, game.OriginalPrice, game.DiscountPct)
	if !added {
		_, errMsg := store.Messages()
		c.JSON(http.StatusConflict, gin.H{
			"error": errMsg,
			"data":  cartResponse(store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse(store),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	store := h.carts.Get(getOrCreateSessionID(c))
	productID := c.Param("id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if !store.UpdateQuantity(productID, req.Quantity) {
		_, errMsg := store.Messages()
		c.JSON(http.StatusConflict, gin.H{
			"error": errMsg,
			"data":  cartResponse(store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse(store),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	store := h.carts.Get(getOrCreateSessionID(c))
	store.RemoveItem(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse(store),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.carts.Get(getOrCreateSessionID(c))
	store.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	store := h.carts.Get(getOrCreateSessionID(c))

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": store.TotalQuantity(),
		},
	})
}

// ClearCartMessages handles DELETE /cart/messages - called after the UI
// has shown the single-slot messages
func (h *CartHandler) ClearCartMessages(c *gin.Context) {
	store := h.carts.Get(getOrCreateSessionID(c))
	store.ClearMessages()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart messages cleared successfully",
	})
}
