// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/gamestore-backend/internal/domain/cart"
	"github.com/your-org/gamestore-backend/internal/domain/checkout"
	"github.com/your-org/gamestore-backend/internal/interfaces/http/handlers"
	"gorm.io/gorm"
)

// Dependencies carries the shared services the route handlers need
type Dependencies struct {
	DB              *gorm.DB
	Logger          *logrus.Logger
	Carts           *cart.Registry
	CheckoutService *checkout.Service
}

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	setupCatalogRoutes(rg, deps)
	setupCartRoutes(rg, deps)
	setupCheckoutRoutes(rg, deps)
	setupLibraryRoutes(rg, deps)
}

// setupCatalogRoutes sets up game catalog routes
func setupCatalogRoutes(rg *gin.RouterGroup, deps Dependencies) {
	catalogHandler := handlers.NewCatalogHandler(deps.DB)

	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/games", catalogHandler.ListGames)
		catalogGroup.GET("/games/:id", catalogHandler.GetGame)
		catalogGroup.GET("/genres", catalogHandler.ListGenres)
	}
}

// setupCartRoutes sets up session cart routes
func setupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.DB)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.DELETE("/messages", cartHandler.ClearCartMessages)
	}
}

// setupCheckoutRoutes sets up checkout routes
func setupCheckoutRoutes(rg *gin.RouterGroup, deps Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Carts, deps.CheckoutService)

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.POST("", checkoutHandler.Checkout)
		checkoutGroup.POST("/retry-library", checkoutHandler.RetryLibrary)
	}
}

// setupLibraryRoutes sets up game library routes
func setupLibraryRoutes(rg *gin.RouterGroup, deps Dependencies) {
	libraryHandler := handlers.NewLibraryHandler(deps.DB, deps.Logger)

	libraryGroup := rg.Group("/library")
	{
		libraryGroup.GET("/:userID", libraryHandler.GetLibrary)
		libraryGroup.GET("/:userID/games/:id", libraryHandler.CheckOwnership)
		libraryGroup.PUT("/:userID/games/:id/status", libraryHandler.UpdateGameStatus)
	}
}
