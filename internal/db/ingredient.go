package db

// Ingredient 定义了食材模型。同名食材在不同单位下视为不同条目，
// (name, unit_id) 的唯一性由索引保证，而不是仅靠应用层检查。
type Ingredient struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"uniqueIndex:idx_ingredients_name_unit;not null"`
	UnitID uint   `gorm:"uniqueIndex:idx_ingredients_name_unit;not null"`
	Unit   Unit
}
