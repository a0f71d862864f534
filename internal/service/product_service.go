package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/recipehub/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 在指定产品不存在时返回
	ErrProductNotFound = errors.New("product not found")
	// ErrProductExists 当同一用户下产品名重复时返回
	ErrProductExists = errors.New("product name already used by this owner")
	// ErrProductInvalid 当产品字段校验失败时返回
	ErrProductInvalid = errors.New("invalid product input")
)

// ProductService 负责产品的增删改查与可见性切换。
// 所有写操作都显式携带 owner id，不依赖任何全局登录态。
type ProductService struct {
	db    *gorm.DB
	units *UnitService
}

// ProductInput 定义创建产品时可配置的字段
type ProductInput struct {
	Name        string
	Amount      int
	UnitID      uint
	Public      bool
	Description string
}

// ProductDetail 聚合产品元数据及展示所需的关联字段
type ProductDetail struct {
	ID          uint
	Name        string
	Amount      int
	Unit        string
	UserID      uint
	Username    string
	Public      bool
	Description string
	PhotoURL    string
	ThumbURL    string
}

// NewProductService creates a ProductService instance.
func NewProductService(gdb *gorm.DB) *ProductService {
	return &ProductService{db: gdb, units: NewUnitService(gdb)}
}

// Create inserts a product owned by ownerID. Names are lowercased; the
// (owner, name) pair is kept unique by the schema index, and a losing
// concurrent insert surfaces as ErrProductExists.
func (s *ProductService) Create(ownerID uint, input ProductInput) (*db.Product, error) {
	name := strings.ToLower(strings.TrimSpace(input.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrProductInvalid)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrProductInvalid)
	}

	if _, err := s.units.Display(input.UnitID); err != nil {
		return nil, err
	}

	var existing db.Product
	if err := s.db.Where("user_id = ? AND name = ?", ownerID, name).First(&existing).Error; err == nil {
		return nil, ErrProductExists
	}

	product := db.Product{
		Name:        name,
		Amount:      input.Amount,
		UnitID:      input.UnitID,
		UserID:      ownerID,
		Public:      input.Public,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.db.Create(&product).Error; err != nil {
		// 唯一索引兜底：并发创建同名产品时以约束冲突为准
		if dupErr := s.db.Where("user_id = ? AND name = ?", ownerID, name).First(&existing).Error; dupErr == nil {
			return nil, ErrProductExists
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// Get returns the product detail with the owner's username and the unit
// display string resolved.
func (s *ProductService) Get(id uint) (*ProductDetail, error) {
	var product db.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return s.detail(product)
}

// ListForOwner returns the owner's products sorted by name ascending.
// With publicOnly set, private products are filtered out (used for the
// public profile page).
func (s *ProductService) ListForOwner(ownerID uint, publicOnly bool) ([]ProductDetail, error) {
	query := s.db.Where("user_id = ?", ownerID)
	if publicOnly {
		query = query.Where("public = ?", true)
	}

	var products []db.Product
	if err := query.Order("name asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return s.toDetails(products)
}

// ListAllPublic returns every public product in a freshly shuffled order,
// so the browse page has no static front-page ordering.
func (s *ProductService) ListAllPublic() ([]ProductDetail, error) {
	var products []db.Product
	if err := s.db.Where("public = ?", true).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list public products: %w", err)
	}

	details, err := s.toDetails(products)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(details), func(i, j int) {
		details[i], details[j] = details[j], details[i]
	})
	return details, nil
}

// Delete removes the product together with its recipe entries in one
// transaction.
func (s *ProductService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&db.Product{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if err := tx.Where("product_id = ?", id).Delete(&db.RecipeEntry{}).Error; err != nil {
			return fmt.Errorf("delete recipe entries: %w", err)
		}
		return nil
	})
}

// ToggleVisibility flips the public flag and returns the new state.
func (s *ProductService) ToggleVisibility(id uint) (bool, error) {
	var product db.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, fmt.Errorf("get product: %w", err)
	}

	product.Public = !product.Public
	if err := s.db.Save(&product).Error; err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	return product.Public, nil
}

// Owner returns the owning user's id, used by handlers for access checks.
func (s *ProductService) Owner(id uint) (uint, error) {
	var product db.Product
	if err := s.db.Select("user_id").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("get product: %w", err)
	}
	return product.UserID, nil
}

// SetPhoto stores the uploaded photo and thumbnail URLs on the product.
func (s *ProductService) SetPhoto(id uint, photoURL, thumbURL string) error {
	result := s.db.Model(&db.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"photo_url": photoURL, "thumb_url": thumbURL})
	if result.Error != nil {
		return fmt.Errorf("update product photo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) toDetails(products []db.Product) ([]ProductDetail, error) {
	details := make([]ProductDetail, 0, len(products))
	for _, product := range products {
		detail, err := s.detail(product)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *ProductService) detail(product db.Product) (*ProductDetail, error) {
	unit, err := s.units.Display(product.UnitID)
	if err != nil {
		return nil, err
	}

	var owner db.User
	if err := s.db.Select("username").First(&owner, product.UserID).Error; err != nil {
		return nil, fmt.Errorf("get product owner: %w", err)
	}

	return &ProductDetail{
		ID:          product.ID,
		Name:        product.Name,
		Amount:      product.Amount,
		Unit:        unit,
		UserID:      product.UserID,
		Username:    owner.Username,
		Public:      product.Public,
		Description: product.Description,
		PhotoURL:    product.PhotoURL,
		ThumbURL:    product.ThumbURL,
	}, nil
}
