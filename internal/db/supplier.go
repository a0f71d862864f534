package db

// Supplier 定义了供应商模型，每个用户至多注册一个供应商。
type Supplier struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"uniqueIndex;not null"`
	UserID uint   `gorm:"uniqueIndex;not null"`
}

// Supply 定义了供应商对某食材的报价：amount 个单位售价 price。
type Supply struct {
	ID           uint    `gorm:"primaryKey"`
	IngredientID uint    `gorm:"not null"`
	UnitID       uint    `gorm:"not null"`
	Amount       float64 `gorm:"not null"`
	Price        float64 `gorm:"not null"`
	SupplierID   uint    `gorm:"not null"`
}
