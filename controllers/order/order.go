package orderControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ccmercan/littlelemon-api/middleware"
	"github.com/ccmercan/littlelemon-api/models"
)

type OrderUpdateInput struct {
	Status *models.OrderStatus `json:"status"`
	// Raw so an explicit null (unassign) is distinguishable from absence.
	DeliveryCrewID json.RawMessage `json:"delivery_crew_id"`
}

var errCheckoutConflict = errors.New("cart changed during checkout")

// generateOrderNumber returns an opaque unique reference for a new order.
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder converts the user's cart into an order inside a single
// transaction: snapshot every cart row into an order item, total them, and
// clear the cart. Either all of it commits or none of it does. The final
// delete doubles as the serialization guard: if a concurrent request
// touched the cart between read and delete, the row count mismatches and
// the whole checkout rolls back.
func PlaceOrder(db *gorm.DB, userID uint) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID).Order("id")
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var rows []models.CartItem
		if err := q.Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return models.ErrCartEmpty
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, models.OrderItem{
				MenuItemID: row.MenuItemID,
				Title:      row.Title,
				Quantity:   row.Quantity,
				UnitPrice:  row.UnitPrice,
				Price:      row.Price,
			})
			total = total.Add(row.Price)
		}

		order = models.Order{
			Number: generateOrderNumber(),
			UserID: userID,
			Status: models.OrderStatusPlaced,
			Total:  total,
			Items:  items,
			Date:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ?", userID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(rows)) {
			return errCheckoutConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := PlaceOrder(db, userID)
		if err != nil {
			if errors.Is(err, models.ErrCartEmpty) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		var out models.Order
		if err := db.Preload("Items").Preload("User").First(&out, order.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			return
		}

		broadcastNewOrder(out)
		c.JSON(http.StatusCreated, out)
	}
}

// GET /api/orders
//
// Managers see every order, delivery crew only their assignments, customers
// only their own.
func GetOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		query := db.Preload("Items").Preload("User").Preload("DeliveryCrew").Order("date DESC")
		switch middleware.CurrentRole(c) {
		case models.RoleManager:
		case models.RoleDelivery:
			query = query.Where("delivery_crew_id = ?", userID)
		default:
			query = query.Where("user_id = ?", userID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, done := fetchOrder(c, db, true)
		if done {
			return
		}

		switch middleware.CurrentRole(c) {
		case models.RoleManager:
		case models.RoleDelivery:
			if order.DeliveryCrewID == nil || *order.DeliveryCrewID != userID {
				c.JSON(http.StatusForbidden, gin.H{"error": models.ErrForbidden.Error()})
				return
			}
		default:
			if order.UserID != userID {
				c.JSON(http.StatusForbidden, gin.H{"error": models.ErrForbidden.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, order)
	}
}

// PATCH /api/orders/:id
//
// Managers may set status and reassign (or unassign) the delivery crew.
// Delivery crew may set only the status, and only on orders assigned to
// them. Customers may not update orders at all.
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, done := fetchOrder(c, db, false)
		if done {
			return
		}

		var input OrderUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		role := middleware.CurrentRole(c)
		switch role {
		case models.RoleManager:
		case models.RoleDelivery:
			if order.DeliveryCrewID == nil || *order.DeliveryCrewID != userID {
				c.JSON(http.StatusForbidden, gin.H{"error": models.ErrForbidden.Error()})
				return
			}
			if len(input.DeliveryCrewID) > 0 {
				c.JSON(http.StatusForbidden, gin.H{"error": "delivery crew may only update status"})
				return
			}
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": models.ErrForbidden.Error()})
			return
		}

		applyOrderUpdate(c, db, order, input)
	}
}

// PUT /api/orders/:id
//
// Manager-only full replacement of the mutable pair: status is required and
// an absent delivery_crew_id unassigns the crew.
func ReplaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, done := fetchOrder(c, db, false)
		if done {
			return
		}

		var input OrderUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Status == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		if len(input.DeliveryCrewID) == 0 {
			input.DeliveryCrewID = json.RawMessage("null")
		}

		applyOrderUpdate(c, db, order, input)
	}
}

// applyOrderUpdate validates and persists an already-authorized update.
func applyOrderUpdate(c *gin.Context, db *gorm.DB, order *models.Order, input OrderUpdateInput) {
	updates := map[string]interface{}{}

	if len(input.DeliveryCrewID) > 0 {
		if string(input.DeliveryCrewID) == "null" {
			updates["delivery_crew_id"] = nil
		} else {
			var crewID uint
			if err := json.Unmarshal(input.DeliveryCrewID, &crewID); err != nil || crewID == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_crew_id"})
				return
			}
			// The assignee's group membership is intentionally not checked;
			// see the permissive-assignment note in DESIGN.md.
			if err := db.First(&models.User{}, crewID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery crew user does not exist"})
				return
			}
			updates["delivery_crew_id"] = crewID
		}
	}

	if input.Status != nil {
		if !models.ValidStatusTransition(order.Status, *input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidStatusTransition.Error()})
			return
		}
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		if err := db.Model(order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
	}

	var out models.Order
	if err := db.Preload("Items").Preload("User").Preload("DeliveryCrew").First(&out, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/orders/:id
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, done := fetchOrder(c, db, false)
		if done {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}

// fetchOrder loads the order named by the :id route param, writing the
// error response itself when done is true.
func fetchOrder(c *gin.Context, db *gorm.DB, withItems bool) (*models.Order, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return nil, true
	}

	query := db
	if withItems {
		query = query.Preload("Items").Preload("User").Preload("DeliveryCrew")
	}

	var order models.Order
	if err := query.First(&order, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		}
		return nil, true
	}
	return &order, false
}
