// internal/interfaces/http/handlers/library.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/gamestore-backend/internal/domain/library"
	"gorm.io/gorm"
)

// LibraryHandler handles game library endpoints
type LibraryHandler struct {
	recorder *library.Recorder
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(db *gorm.DB, logger *logrus.Logger) *LibraryHandler {
	return &LibraryHandler{
		recorder: library.NewRecorder(db, logger),
	}
}

// UpdateStatusRequest represents an install-state change for an owned game
type UpdateStatusRequest struct {
	Status library.Status `json:"status" binding:"required,oneof=available downloading updating installed"`
}

// GetLibrary handles GET /library/:userID
func (h *LibraryHandler) GetLibrary(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	entries, err := h.recorder.Entries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve library",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Library retrieved successfully",
		"data": gin.H{
			"entries": entries,
			"count":   len(entries),
		},
	})
}

// CheckOwnership handles GET /library/:userID/games/:id
func (h *LibraryHandler) CheckOwnership(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	owned, err := h.recorder.Contains(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check ownership",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ownership checked successfully",
		"data": gin.H{
			"owned": owned,
		},
	})
}

// UpdateGameStatus handles PUT /library/:userID/games/:id/status
func (h *LibraryHandler) UpdateGameStatus(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.recorder.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Library entry not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Game status updated successfully",
	})
}

func parseUserID(c *gin.Context) (uint, error) {
	userID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(userID), nil
}
