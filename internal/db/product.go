package db

import "time"

// Product 定义了产品模型。同一用户下产品名唯一。
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex:idx_products_owner_name;not null"`
	UserID      uint   `gorm:"uniqueIndex:idx_products_owner_name;not null"`
	Amount      int    `gorm:"not null"`
	UnitID      uint   `gorm:"not null"`
	Unit        Unit
	Public      bool
	Description string
	PhotoURL    string
	ThumbURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
