package db

import "time"

// User 定义了用户模型
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"uniqueIndex;not null"`
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	FullName    string `gorm:"not null"`
	DateOfBirth *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
