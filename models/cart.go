package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a staged, pre-checkout quantity of a menu item for one user.
// One row per (user, menu item); re-adding the same item updates the row in
// place. Title and unit price are denormalized from the menu item at add
// time, so Price is always UnitPrice times Quantity.
type CartItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"user_id"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"menu_item_id"`
	Title      string          `json:"title"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	AddedAt    time.Time       `json:"added_at"`
}
