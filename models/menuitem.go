package models

import "github.com/shopspring/decimal"

// MenuItem prices are fixed-point with two decimals. The menu price is the
// source of truth at cart-add time only; cart rows and order items keep
// their own snapshots afterwards.
type MenuItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string          `gorm:"not null;index" json:"title"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	Featured   bool            `gorm:"index" json:"featured"`
	CategoryID uint            `gorm:"not null" json:"category_id"`
	Category   *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
