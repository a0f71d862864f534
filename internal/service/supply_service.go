package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/recipehub/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrSupplierExists 当供应商名已占用或用户已注册供应商时返回
	ErrSupplierExists = errors.New("supplier already registered")
	// ErrSupplierNotFound 在指定供应商不存在时返回
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrSupplyInvalid 当报价字段校验失败时返回
	ErrSupplyInvalid = errors.New("invalid supply input")
)

// SupplyService 负责供应商登记、食材报价与产品成本核算。
type SupplyService struct {
	db          *gorm.DB
	ingredients *IngredientService
}

// SupplyInput 定义一条食材报价
type SupplyInput struct {
	IngredientID uint
	UnitID       uint
	Amount       float64
	Price        float64
}

// ProductCost 汇总一个产品的配方成本。
// Missing 列出没有可比报价、按零计入的食材。
type ProductCost struct {
	Total   float64
	Missing []string
}

// NewSupplyService creates a SupplyService instance.
func NewSupplyService(gdb *gorm.DB) *SupplyService {
	return &SupplyService{db: gdb, ingredients: NewIngredientService(gdb)}
}

// RegisterSupplier creates the supplier record for a user. One supplier per
// user, and supplier names are globally unique.
func (s *SupplyService) RegisterSupplier(userID uint, name string) (*db.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrSupplyInvalid)
	}

	var existing db.Supplier
	if err := s.db.Where("name = ? OR user_id = ?", name, userID).First(&existing).Error; err == nil {
		return nil, ErrSupplierExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check supplier: %w", err)
	}

	supplier := db.Supplier{Name: name, UserID: userID}
	if err := s.db.Create(&supplier).Error; err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return &supplier, nil
}

// SupplierForUser 返回用户名下的供应商
func (s *SupplyService) SupplierForUser(userID uint) (*db.Supplier, error) {
	var supplier db.Supplier
	if err := s.db.Where("user_id = ?", userID).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &supplier, nil
}

// AddSupply records an offer by the user's supplier: Amount units of the
// ingredient for Price.
func (s *SupplyService) AddSupply(userID uint, input SupplyInput) (*db.Supply, error) {
	supplier, err := s.SupplierForUser(userID)
	if err != nil {
		return nil, err
	}

	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrSupplyInvalid)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrSupplyInvalid)
	}
	if _, err := s.ingredients.Name(input.IngredientID); err != nil {
		return nil, err
	}

	supply := db.Supply{
		IngredientID: input.IngredientID,
		UnitID:       input.UnitID,
		Amount:       input.Amount,
		Price:        input.Price,
		SupplierID:   supplier.ID,
	}
	if err := s.db.Create(&supply).Error; err != nil {
		return nil, fmt.Errorf("create supply: %w", err)
	}
	return &supply, nil
}

// ListForIngredient returns all offers recorded for an ingredient.
func (s *SupplyService) ListForIngredient(ingredientID uint) ([]db.Supply, error) {
	var supplies []db.Supply
	if err := s.db.Where("ingredient_id = ?", ingredientID).Find(&supplies).Error; err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	return supplies, nil
}

// ProductCost prices a product's recipe: every entry contributes
// amount × the cheapest per-unit price among offers quoted in the
// ingredient's own unit. Offers in other units are not comparable without a
// conversion table and are ignored; ingredients left without a usable offer
// contribute zero and are reported in Missing.
func (s *SupplyService) ProductCost(productID uint) (*ProductCost, error) {
	var count int64
	if err := s.db.Model(&db.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if count == 0 {
		return nil, ErrProductNotFound
	}

	var entries []struct {
		IngredientID uint
		Ingredient   string
		UnitID       uint
		Amount       float64
	}
	if err := s.db.Model(&db.RecipeEntry{}).
		Select("recipe_entries.ingredient_id, ingredients.name AS ingredient, ingredients.unit_id, recipe_entries.amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_entries.ingredient_id").
		Where("recipe_entries.product_id = ?", productID).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list recipe entries: %w", err)
	}

	cost := &ProductCost{}
	for _, entry := range entries {
		var supplies []db.Supply
		if err := s.db.Where("ingredient_id = ? AND unit_id = ?", entry.IngredientID, entry.UnitID).
			Find(&supplies).Error; err != nil {
			return nil, fmt.Errorf("list supplies: %w", err)
		}

		best := -1.0
		for _, supply := range supplies {
			if supply.Amount <= 0 {
				continue
			}
			unitPrice := supply.Price / supply.Amount
			if best < 0 || unitPrice < best {
				best = unitPrice
			}
		}

		if best < 0 {
			cost.Missing = append(cost.Missing, entry.Ingredient)
			continue
		}
		cost.Total += entry.Amount * best
	}

	return cost, nil
}
