package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/ccmercan/littlelemon-api/controllers/cart"
	"github.com/ccmercan/littlelemon-api/middleware"
	"github.com/ccmercan/littlelemon-api/models"
)

// SetupCartRoutes registers the cart endpoints; carts belong to customers
// only.
func SetupCartRoutes(authed *gin.RouterGroup, db *gorm.DB) {
	cart := authed.Group("/cart", middleware.RequireRole(models.RoleCustomer))
	{
		cart.GET("/menu-items", cartControllers.GetCart(db))
		cart.POST("/menu-items", cartControllers.UpsertCartItem(db))
		cart.DELETE("/menu-items", cartControllers.ClearCart(db))
		cart.DELETE("/menu-items/:menu_item_id", cartControllers.DeleteCartItem(db))
	}
}
