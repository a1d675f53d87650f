package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ValidStatusTransition reports whether an order may move from one status
// to another. Delivery is terminal; writing the current status back is a
// permitted no-op.
func ValidStatusTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	return from == OrderStatusPlaced && to == OrderStatusDelivered
}

// UnmarshalJSON accepts the status name or, for older clients that predate
// the enum, the original boolean flag (false=placed, true=delivered).
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "false":
		*s = OrderStatusPlaced
		return nil
	case "true":
		*s = OrderStatusDelivered
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid order status: %w", err)
	}
	switch OrderStatus(raw) {
	case OrderStatusPlaced, OrderStatusDelivered:
		*s = OrderStatus(raw)
		return nil
	}
	return fmt.Errorf("invalid order status %q", raw)
}

// Order is created only by checkout. Status and DeliveryCrewID are the only
// fields that may change afterwards; items and totals are frozen snapshots.
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Number         string          `gorm:"unique;not null" json:"number"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DeliveryCrewID *uint           `gorm:"index" json:"delivery_crew_id"`
	DeliveryCrew   *User           `gorm:"foreignKey:DeliveryCrewID" json:"delivery_crew,omitempty"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	Total          decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"total"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Date           time.Time       `gorm:"not null;index" json:"date"`
}

// OrderItem snapshots a cart row at checkout. Never mutated after creation;
// menu price changes do not reach back into existing orders.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;uniqueIndex:idx_order_item" json:"order_id"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_order_item" json:"menu_item_id"`
	Title      string          `json:"title"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
}
