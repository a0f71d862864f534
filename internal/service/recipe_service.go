package service

import (
	"errors"
	"fmt"

	"github.com/recipehub/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrRecipeEntryExists 当产品配方中已包含该食材时返回
	ErrRecipeEntryExists = errors.New("ingredient already in recipe")
	// ErrRecipeEntryNotFound 在指定配方条目不存在时返回
	ErrRecipeEntryNotFound = errors.New("recipe entry not found")
	// ErrRecipeAmountInvalid 当配方用量非正时返回
	ErrRecipeAmountInvalid = errors.New("recipe amount must be positive")
)

// RecipeService 维护产品与食材之间的配方条目。
type RecipeService struct {
	db          *gorm.DB
	ingredients *IngredientService
}

// RecipeItem 表示配方列表中的一行
type RecipeItem struct {
	IngredientID uint
	Ingredient   string
	Amount       float64
	Unit         string
}

// NewRecipeService creates a RecipeService instance.
func NewRecipeService(gdb *gorm.DB) *RecipeService {
	return &RecipeService{db: gdb, ingredients: NewIngredientService(gdb)}
}

// AddEntry resolves (or lazily creates) the ingredient and inserts one
// recipe entry for it. The composite primary key is the authoritative
// duplicate check; a conflicting insert reports ErrRecipeEntryExists
// instead of silently creating a second row.
func (s *RecipeService) AddEntry(productID uint, ingredientName string, amount float64, unitID uint) error {
	if amount <= 0 {
		return ErrRecipeAmountInvalid
	}

	ingredientID, err := s.ingredients.GetOrCreate(ingredientName, unitID)
	if err != nil {
		return err
	}

	entry := db.RecipeEntry{ProductID: productID, IngredientID: ingredientID, Amount: amount}
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if result.Error != nil {
		return fmt.Errorf("create recipe entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeEntryExists
	}
	return nil
}

// ListEntries returns the product's recipe rows with resolved ingredient
// names and unit display strings. Order is unspecified.
func (s *RecipeService) ListEntries(productID uint) ([]RecipeItem, error) {
	var rows []struct {
		IngredientID uint
		Ingredient   string
		Amount       float64
		UnitName     string
		UnitSymbol   string
	}

	if err := s.db.Model(&db.RecipeEntry{}).
		Select("recipe_entries.ingredient_id, ingredients.name AS ingredient, recipe_entries.amount, units.name AS unit_name, units.symbol AS unit_symbol").
		Joins("JOIN ingredients ON ingredients.id = recipe_entries.ingredient_id").
		Joins("JOIN units ON units.id = ingredients.unit_id").
		Where("recipe_entries.product_id = ?", productID).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recipe entries: %w", err)
	}

	items := make([]RecipeItem, 0, len(rows))
	for _, row := range rows {
		unit := row.UnitName
		if row.UnitSymbol != "" {
			unit = row.UnitSymbol
		}
		items = append(items, RecipeItem{
			IngredientID: row.IngredientID,
			Ingredient:   row.Ingredient,
			Amount:       row.Amount,
			Unit:         unit,
		})
	}
	return items, nil
}

// RemoveEntry deletes one recipe entry. Removing an entry that does not
// exist is an explicit failure rather than a silent no-op.
func (s *RecipeService) RemoveEntry(productID, ingredientID uint) error {
	result := s.db.Where("product_id = ? AND ingredient_id = ?", productID, ingredientID).
		Delete(&db.RecipeEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete recipe entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeEntryNotFound
	}
	return nil
}
