package handler

import (
	"github.com/recipehub/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	users       *service.UserService
	units       *service.UnitService
	ingredients *service.IngredientService
	products    *service.ProductService
	recipes     *service.RecipeService
	supplies    *service.SupplyService
	uploadDir   string
	uploadURL   string
	jwtSecret   []byte
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, uploadDir, uploadURL string, jwtSecret []byte) *API {
	return &API{
		db:          db,
		users:       service.NewUserService(db),
		units:       service.NewUnitService(db),
		ingredients: service.NewIngredientService(db),
		products:    service.NewProductService(db),
		recipes:     service.NewRecipeService(db),
		supplies:    service.NewSupplyService(db),
		uploadDir:   uploadDir,
		uploadURL:   uploadURL,
		jwtSecret:   jwtSecret,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
