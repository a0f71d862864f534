package db

// Unit 定义了计量单位模型。Symbol 为空时展示 Name。
// 名称与符号共用一个查找命名空间，唯一性在种子数据校验时保证。
type Unit struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"uniqueIndex;not null"`
	Symbol string
}

// Display returns the short symbol when present, otherwise the full name.
func (u Unit) Display() string {
	if u.Symbol != "" {
		return u.Symbol
	}
	return u.Name
}
