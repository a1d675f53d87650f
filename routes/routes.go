package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ccmercan/littlelemon-api/middleware"
)

// SetupRoutes is the single entry point that wires up every route group
// under the /api prefix.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	// Authenticated routes carry the resolved role in the request context.
	authed := api.Group("", middleware.ValidateToken, middleware.ResolveRole(db))

	SetupCatalogRoutes(api, authed, db)
	SetupCartRoutes(authed, db)
	SetupOrderRoutes(authed, db)
	SetupGroupRoutes(authed, db)
}
