package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogControllers "github.com/ccmercan/littlelemon-api/controllers/catalog"
	"github.com/ccmercan/littlelemon-api/middleware"
	"github.com/ccmercan/littlelemon-api/models"
)

// SetupCatalogRoutes registers category and menu item endpoints. Menu
// reads are public; categories require authentication; all writes are
// manager only.
func SetupCatalogRoutes(public, authed *gin.RouterGroup, db *gorm.DB) {
	public.GET("/menu-items", catalogControllers.GetMenuItems(db))
	public.GET("/menu-items/:id", catalogControllers.GetMenuItemByID(db))

	authed.GET("/categories", catalogControllers.GetAllCategories(db))

	manager := authed.Group("", middleware.RequireRole(models.RoleManager))
	{
		manager.POST("/categories", catalogControllers.CreateCategory(db))
		manager.DELETE("/categories/:id", catalogControllers.DeleteCategory(db))
		manager.POST("/menu-items", catalogControllers.CreateMenuItem(db))
		manager.PUT("/menu-items/:id", catalogControllers.UpdateMenuItem(db))
		manager.PATCH("/menu-items/:id", catalogControllers.PatchMenuItem(db))
		manager.DELETE("/menu-items/:id", catalogControllers.DeleteMenuItem(db))
		manager.GET("/export/menu-items", catalogControllers.ExportMenuItemsToExcel(db))
	}
}
