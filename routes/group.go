package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	groupControllers "github.com/ccmercan/littlelemon-api/controllers/group"
	"github.com/ccmercan/littlelemon-api/middleware"
	"github.com/ccmercan/littlelemon-api/models"
)

// SetupGroupRoutes registers manager-only group membership management for
// the two role groups.
func SetupGroupRoutes(authed *gin.RouterGroup, db *gorm.DB) {
	groups := authed.Group("/groups", middleware.RequireRole(models.RoleManager))
	{
		manager := groups.Group("/manager/users")
		{
			manager.GET("", groupControllers.ListGroupUsers(db, models.GroupManager))
			manager.POST("", groupControllers.AddGroupUser(db, models.GroupManager))
			manager.DELETE("/:user_id", groupControllers.RemoveGroupUser(db, models.GroupManager))
		}

		delivery := groups.Group("/delivery-crew/users")
		{
			delivery.GET("", groupControllers.ListGroupUsers(db, models.GroupDeliveryCrew))
			delivery.POST("", groupControllers.AddGroupUser(db, models.GroupDeliveryCrew))
			delivery.DELETE("/:user_id", groupControllers.RemoveGroupUser(db, models.GroupDeliveryCrew))
		}
	}
}
