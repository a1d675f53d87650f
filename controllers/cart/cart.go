package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ccmercan/littlelemon-api/middleware"
	"github.com/ccmercan/littlelemon-api/models"
)

type CartItemInput struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// GET /api/cart/menu-items
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var items []models.CartItem
		if err := db.Where("user_id = ?", userID).Order("added_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /api/cart/menu-items
//
// Re-adding an item the cart already holds updates the row in place and
// refreshes the price snapshot from the current menu price. The source
// treated the duplicate as a hard uniqueness failure; update-in-place is
// the documented choice here.
func UpsertCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var item models.MenuItem
		if err := db.First(&item, input.MenuItemID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate menu item"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Menu item does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		unitPrice := item.Price
		price := unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))

		var row models.CartItem
		err := db.Where("user_id = ? AND menu_item_id = ?", userID, input.MenuItemID).First(&row).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
				return
			}
			row = models.CartItem{
				UserID:     userID,
				MenuItemID: item.ID,
				Title:      item.Title,
				Quantity:   input.Quantity,
				UnitPrice:  unitPrice,
				Price:      price,
				AddedAt:    time.Now(),
			}
			if err := db.Create(&row).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, row)
			return
		}

		row.Title = item.Title
		row.Quantity = input.Quantity
		row.UnitPrice = unitPrice
		row.Price = price
		row.AddedAt = time.Now()
		res := db.Save(&row)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		// The row can vanish between the read and the update when a
		// checkout clears the cart concurrently; re-create instead of
		// silently dropping the add.
		if res.RowsAffected == 0 {
			row.ID = 0
			if err := db.Create(&row).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, row)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

// DELETE /api/cart/menu-items/:menu_item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("user_id = ? AND menu_item_id = ?", userID, c.Param("menu_item_id")).
			Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /api/cart/menu-items
//
// Clearing an already-empty cart succeeds.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
