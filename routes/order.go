package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/ccmercan/littlelemon-api/controllers/order"
	"github.com/ccmercan/littlelemon-api/middleware"
	"github.com/ccmercan/littlelemon-api/models"
)

// SetupOrderRoutes registers the order lifecycle endpoints. Read and
// update handlers scope by role themselves; creation and deletion are
// role-gated here.
func SetupOrderRoutes(authed *gin.RouterGroup, db *gorm.DB) {
	orders := authed.Group("/orders")
	{
		orders.GET("", orderControllers.GetOrdersHandler(db))
		orders.POST("", middleware.RequireRole(models.RoleCustomer), orderControllers.PlaceOrderHandler(db))
		orders.GET("/:id", orderControllers.GetOrderByIDHandler(db))
		orders.PATCH("/:id", orderControllers.UpdateOrderHandler(db))
		orders.PUT("/:id", middleware.RequireRole(models.RoleManager), orderControllers.ReplaceOrderHandler(db))
		orders.DELETE("/:id", middleware.RequireRole(models.RoleManager), orderControllers.DeleteOrderHandler(db))
	}

	// Websocket feed of newly placed orders for manager dashboards.
	authed.GET("/ws/orders", middleware.RequireRole(models.RoleManager), orderControllers.OrderFeedHandler)
}
