package catalogControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ccmercan/littlelemon-api/models"
)

type MenuItemInput struct {
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Featured   bool            `json:"featured"`
	CategoryID uint            `json:"category_id" binding:"required"`
}

type MenuItemPatch struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	Featured   *bool            `json:"featured"`
	CategoryID *uint            `json:"category_id"`
}

// Qualified so sorting stays unambiguous when the category join is applied.
var menuSortColumns = map[string]string{
	"title": "menu_items.title",
	"price": "menu_items.price",
	"id":    "menu_items.id",
}

// GET /api/menu-items
func GetMenuItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.MenuItem{}).Preload("Category")

		if slug := c.Query("category"); slug != "" {
			query = query.
				Joins("JOIN categories ON categories.id = menu_items.category_id").
				Where("categories.slug = ?", slug)
		}
		if featured := c.Query("featured"); featured != "" {
			query = query.Where("featured = ?", featured == "true" || featured == "1")
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("menu_items.title LIKE ?", "%"+search+"%")
		}

		sortBy, ok := menuSortColumns[c.DefaultQuery("sort_by", "id")]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
			return
		}
		if strings.ToLower(c.DefaultQuery("order", "asc")) == "desc" {
			sortBy += " DESC"
		}

		var items []models.MenuItem
		if err := query.Order(sortBy).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /api/menu-items/:id
func GetMenuItemByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItem
		if err := db.Preload("Category").First(&item, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// POST /api/menu-items
func CreateMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MenuItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		item := models.MenuItem{
			Title:      input.Title,
			Price:      input.Price,
			Featured:   input.Featured,
			CategoryID: category.ID,
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
			return
		}

		item.Category = &category
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /api/menu-items/:id
func UpdateMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItem
		if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		var input MenuItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		if err := db.First(&models.Category{}, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		item.Title = input.Title
		item.Price = input.Price
		item.Featured = input.Featured
		item.CategoryID = input.CategoryID
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// PATCH /api/menu-items/:id
func PatchMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItem
		if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		var input MenuItemPatch
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Title != nil {
			item.Title = *input.Title
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
				return
			}
			item.Price = *input.Price
		}
		if input.Featured != nil {
			item.Featured = *input.Featured
		}
		if input.CategoryID != nil {
			if err := db.First(&models.Category{}, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			item.CategoryID = *input.CategoryID
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/menu-items/:id
//
// Menu items stay deletable only while nothing references them. Cart rows
// and order items keep historical snapshots, so deletion is protected, not
// cascaded.
func DeleteMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItem
		if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var refs int64
			if err := tx.Model(&models.CartItem{}).Where("menu_item_id = ?", item.ID).Count(&refs).Error; err != nil {
				return err
			}
			if refs > 0 {
				return models.ErrMenuItemInUse
			}
			if err := tx.Model(&models.OrderItem{}).Where("menu_item_id = ?", item.ID).Count(&refs).Error; err != nil {
				return err
			}
			if refs > 0 {
				return models.ErrMenuItemInUse
			}
			return tx.Delete(&item).Error
		})
		if err != nil {
			if errors.Is(err, models.ErrMenuItemInUse) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	}
}
