package service

import (
	"errors"
	"testing"

	"github.com/recipehub/internal/db"
)

func TestProductCreateAndGet(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "product-create")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")

	svc := NewProductService(gdb)
	product, err := svc.Create(ownerID, ProductInput{Name: "  Sourdough ", Amount: 900, UnitID: gramsID, Public: true})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.Name != "sourdough" {
		t.Fatalf("expected normalized name sourdough, got %q", product.Name)
	}

	detail, err := svc.Get(product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if detail.Unit != "g" || detail.Username != "baker" || !detail.Public {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestProductDuplicateNamePerOwnerConflicts(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "product-duplicate")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")
	otherID := seedUser(t, gdb, "rival")

	svc := NewProductService(gdb)
	if _, err := svc.Create(ownerID, ProductInput{Name: "bread", Amount: 1, UnitID: gramsID}); err != nil {
		t.Fatalf("create bread: %v", err)
	}
	if _, err := svc.Create(ownerID, ProductInput{Name: "Bread", Amount: 2, UnitID: gramsID}); !errors.Is(err, ErrProductExists) {
		t.Fatalf("expected ErrProductExists, got %v", err)
	}

	// 不同用户可以使用同名产品
	if _, err := svc.Create(otherID, ProductInput{Name: "bread", Amount: 1, UnitID: gramsID}); err != nil {
		t.Fatalf("create bread for other owner: %v", err)
	}
}

func TestProductListForOwnerSortedByName(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "product-sorted")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")

	svc := NewProductService(gdb)
	for _, name := range []string{"zebra-cake", "apple-pie"} {
		if _, err := svc.Create(ownerID, ProductInput{Name: name, Amount: 1, UnitID: gramsID}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	details, err := svc.ListForOwner(ownerID, false)
	if err != nil {
		t.Fatalf("list for owner: %v", err)
	}
	if len(details) != 2 || details[0].Name != "apple-pie" || details[1].Name != "zebra-cake" {
		t.Fatalf("unexpected order: %+v", details)
	}
}

func TestProductListForOwnerPublicOnly(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "product-public-only")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")

	svc := NewProductService(gdb)
	if _, err := svc.Create(ownerID, ProductInput{Name: "secret", Amount: 1, UnitID: gramsID, Public: false}); err != nil {
		t.Fatalf("create secret: %v", err)
	}
	if _, err := svc.Create(ownerID, ProductInput{Name: "shared", Amount: 1, UnitID: gramsID, Public: true}); err != nil {
		t.Fatalf("create shared: %v", err)
	}

	details, err := svc.ListForOwner(ownerID, true)
	if err != nil {
		t.Fatalf("list public only: %v", err)
	}
	if len(details) != 1 || details[0].Name != "shared" {
		t.Fatalf("expected only the shared product, got %+v", details)
	}
}

func TestProductListAllPublicFiltersPrivate(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "product-public")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")

	svc := NewProductService(gdb)
	if _, err := svc.Create(ownerID, ProductInput{Name: "secret", Amount: 1, UnitID: gramsID, Public: false}); err != nil {
		t.Fatalf("create secret: %v", err)
	}
	if _, err := svc.Create(ownerID, ProductInput{Name: "shared", Amount: 1, UnitID: gramsID, Public: true}); err != nil {
		t.Fatalf("create shared: %v", err)
	}

	details, err := svc.ListAllPublic()
	if err != nil {
		t.Fatalf("list all public: %v", err)
	}
	if len(details) != 1 || details[0].Name != "shared" {
		t.Fatalf("expected only the shared product, got %+v", details)
	}
}

func TestProductToggleVisibilityTwiceRestoresState(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "product-toggle")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")

	svc := NewProductService(gdb)
	product, err := svc.Create(ownerID, ProductInput{Name: "bread", Amount: 1, UnitID: gramsID, Public: false})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	first, err := svc.ToggleVisibility(product.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first {
		t.Fatalf("expected product to become public")
	}

	second, err := svc.ToggleVisibility(product.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second {
		t.Fatalf("expected product to return to private")
	}
}

func TestProductDeleteCascadesRecipeEntries(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "product-delete")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")

	products := NewProductService(gdb)
	recipes := NewRecipeService(gdb)

	product, err := products.Create(ownerID, ProductInput{Name: "bread", Amount: 1, UnitID: gramsID})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := recipes.AddEntry(product.ID, "flour", 500, gramsID); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	if err := products.Delete(product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	var entryCount int64
	if err := gdb.Model(&db.RecipeEntry{}).Where("product_id = ?", product.ID).Count(&entryCount).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if entryCount != 0 {
		t.Fatalf("expected recipe entries to be cascade-deleted, got %d", entryCount)
	}
}

func TestProductDeleteMissingFails(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "product-delete-missing")
	defer cleanup()

	svc := NewProductService(gdb)
	if err := svc.Delete(404); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
