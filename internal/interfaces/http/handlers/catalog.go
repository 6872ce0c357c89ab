// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/gamestore-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CatalogHandler handles game catalog endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalog.NewService(db),
	}
}

// ListGames handles GET /catalog/games
func (h *CatalogHandler) ListGames(c *gin.Context) {
	var req catalog.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.catalogService.List(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve games",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Games retrieved successfully",
		"data":    response,
	})
}

// GetGame handles GET /catalog/games/:id
func (h *CatalogHandler) GetGame(c *gin.Context) {
	game, err := h.catalogService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Game not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve game",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Game retrieved successfully",
		"data":    game,
	})
}

// ListGenres handles GET /catalog/genres
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	genres, err := h.catalogService.Genres()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve genres",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Genres retrieved successfully",
		"data":    gin.H{"genres": genres},
	})
}
