package models

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug  string `gorm:"unique;not null" json:"slug"`
	Title string `gorm:"not null;index" json:"title"`
}
