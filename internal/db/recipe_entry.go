package db

// RecipeEntry 定义了产品与食材之间的多对多配方关系，
// 复合主键保证同一产品中每种食材至多出现一次。
type RecipeEntry struct {
	ProductID    uint    `gorm:"primaryKey;autoIncrement:false"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false"`
	Amount       float64 `gorm:"not null"`
}
