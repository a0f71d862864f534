package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/recipehub/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrUnitNotFound 在指定单位不存在时返回
	ErrUnitNotFound = errors.New("unit not found")
	// ErrUnitNamespace 当种子数据的名称与符号存在冲突时返回
	ErrUnitNamespace = errors.New("unit name or symbol already in use")
)

// UnitService wraps measurement unit lookups. Units are seeded once at
// startup and treated as read-only afterwards.
type UnitService struct {
	db *gorm.DB
}

// UnitDefinition 描述一个待种入的单位
type UnitDefinition struct {
	Name   string
	Symbol string
}

// NewUnitService creates a UnitService instance.
func NewUnitService(gdb *gorm.DB) *UnitService {
	return &UnitService{db: gdb}
}

// DefaultUnits returns the built-in unit set used when the registry is empty.
func DefaultUnits() []UnitDefinition {
	return []UnitDefinition{
		{Name: "grams", Symbol: "g"},
		{Name: "kilogram", Symbol: "kg"},
		{Name: "milliliter", Symbol: "ml"},
		{Name: "liter", Symbol: "l"},
		{Name: "teaspoon", Symbol: "tsp"},
		{Name: "tablespoon", Symbol: "tbsp"},
		{Name: "cup"},
		{Name: "whole"},
	}
}

// Display returns the unit's symbol when present, otherwise its name.
func (s *UnitService) Display(id uint) (string, error) {
	var unit db.Unit
	if err := s.db.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnitNotFound
		}
		return "", fmt.Errorf("get unit: %w", err)
	}
	return unit.Display(), nil
}

// ResolveID looks a unit up by either its name or its symbol,
// case-insensitively.
func (s *UnitService) ResolveID(nameOrSymbol string) (uint, error) {
	needle := strings.ToLower(strings.TrimSpace(nameOrSymbol))
	if needle == "" {
		return 0, ErrUnitNotFound
	}

	var unit db.Unit
	if err := s.db.Where("name = ? OR symbol = ?", needle, needle).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnitNotFound
		}
		return 0, fmt.Errorf("resolve unit: %w", err)
	}
	return unit.ID, nil
}

// ListDisplayStrings returns one display string per unit in storage order.
func (s *UnitService) ListDisplayStrings() ([]string, error) {
	var units []db.Unit
	if err := s.db.Find(&units).Error; err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}

	displays := make([]string, 0, len(units))
	for _, unit := range units {
		displays = append(displays, unit.Display())
	}
	return displays, nil
}

// SeedDefaults inserts the given definitions only when the registry is
// empty. Names and symbols share one lookup namespace, so a definition set
// with collisions across the two fields is rejected outright.
func (s *UnitService) SeedDefaults(defs []UnitDefinition) error {
	var count int64
	if err := s.db.Model(&db.Unit{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count units: %w", err)
	}
	if count > 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(defs)*2)
	units := make([]db.Unit, 0, len(defs))
	for _, def := range defs {
		name := strings.ToLower(strings.TrimSpace(def.Name))
		symbol := strings.ToLower(strings.TrimSpace(def.Symbol))
		if name == "" {
			return fmt.Errorf("%w: empty name", ErrUnitNamespace)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrUnitNamespace, name)
		}
		seen[name] = struct{}{}
		if symbol != "" {
			if _, ok := seen[symbol]; ok {
				return fmt.Errorf("%w: %s", ErrUnitNamespace, symbol)
			}
			seen[symbol] = struct{}{}
		}
		units = append(units, db.Unit{Name: name, Symbol: symbol})
	}

	if len(units) == 0 {
		return nil
	}

	if err := s.db.Create(&units).Error; err != nil {
		return fmt.Errorf("seed units: %w", err)
	}
	return nil
}
