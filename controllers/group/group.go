package groupControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ccmercan/littlelemon-api/models"
)

type GroupUserInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

// getOrCreateGroup mirrors the original behavior of creating the named
// group lazily on first use.
func getOrCreateGroup(db *gorm.DB, name string) (*models.Group, error) {
	var group models.Group
	err := db.Where("name = ?", name).FirstOrCreate(&group, models.Group{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GET /api/groups/{manager|delivery-crew}/users
func ListGroupUsers(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		group, err := getOrCreateGroup(db, groupName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
			return
		}

		var users []models.User
		err = db.Model(&models.User{}).
			Joins("JOIN user_groups ON user_groups.user_id = users.id").
			Where("user_groups.group_id = ?", group.ID).
			Find(&users).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// POST /api/groups/{manager|delivery-crew}/users
func AddGroupUser(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GroupUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, input.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		group, err := getOrCreateGroup(db, groupName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
			return
		}

		if err := db.Model(&user).Association("Groups").Append(group); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to group"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "added"})
	}
}

// DELETE /api/groups/{manager|delivery-crew}/users/:user_id
func RemoveGroupUser(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("user_id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		group, err := getOrCreateGroup(db, groupName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
			return
		}

		if err := db.Model(&user).Association("Groups").Delete(group); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from group"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "removed"})
	}
}
