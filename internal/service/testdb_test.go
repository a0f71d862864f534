package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/recipehub/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T, name string) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedUnit(t *testing.T, gdb *gorm.DB, name, symbol string) uint {
	t.Helper()

	unit := db.Unit{Name: name, Symbol: symbol}
	if err := gdb.Create(&unit).Error; err != nil {
		t.Fatalf("failed to seed unit %s: %v", name, err)
	}
	return unit.ID
}

func seedProduct(t *testing.T, gdb *gorm.DB, ownerID, unitID uint, name string) uint {
	t.Helper()

	product := db.Product{Name: name, Amount: 1, UnitID: unitID, UserID: ownerID}
	if err := gdb.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return product.ID
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) uint {
	t.Helper()

	user := db.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		FullName: username,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user.ID
}
