package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/recipehub/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrIngredientNotFound 在指定食材不存在时返回
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrIngredientInvalid 当食材名为空时返回
	ErrIngredientInvalid = errors.New("ingredient name is required")
)

// IngredientService 负责食材的去重登记与查询。
// 同一名称在不同单位下是不同的食材。
type IngredientService struct {
	db    *gorm.DB
	units *UnitService
}

// NewIngredientService creates an IngredientService instance.
func NewIngredientService(gdb *gorm.DB) *IngredientService {
	return &IngredientService{db: gdb, units: NewUnitService(gdb)}
}

// GetOrCreate resolves the ingredient id for a (name, unit) pair, creating
// the row on first use. The name is lowercased before lookup so repeated
// calls with equivalent spellings converge on one id. A racing insert loses
// to the unique index and falls back to reading the winner's row.
func (s *IngredientService) GetOrCreate(name string, unitID uint) (uint, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return 0, ErrIngredientInvalid
	}

	if _, err := s.units.Display(unitID); err != nil {
		return 0, err
	}

	var existing db.Ingredient
	err := s.db.Where("name = ? AND unit_id = ?", normalized, unitID).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("find ingredient: %w", err)
	}

	ingredient := db.Ingredient{Name: normalized, UnitID: unitID}
	if createErr := s.db.Create(&ingredient).Error; createErr != nil {
		// 唯一索引冲突：并发创建时读取已胜出的行
		if retryErr := s.db.Where("name = ? AND unit_id = ?", normalized, unitID).First(&existing).Error; retryErr == nil {
			return existing.ID, nil
		}
		return 0, fmt.Errorf("create ingredient: %w", createErr)
	}

	return ingredient.ID, nil
}

// Name returns the stored (normalized) ingredient name.
func (s *IngredientService) Name(id uint) (string, error) {
	var ingredient db.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrIngredientNotFound
		}
		return "", fmt.Errorf("get ingredient: %w", err)
	}
	return ingredient.Name, nil
}

// UnitDisplay returns the display string of the ingredient's unit.
func (s *IngredientService) UnitDisplay(id uint) (string, error) {
	var ingredient db.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrIngredientNotFound
		}
		return "", fmt.Errorf("get ingredient: %w", err)
	}
	return s.units.Display(ingredient.UnitID)
}
