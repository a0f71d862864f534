package service

import (
	"errors"
	"testing"
)

func TestRecipeAddThenListRoundTrip(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "recipe-roundtrip")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")
	productID := seedProduct(t, gdb, ownerID, gramsID, "bread")

	svc := NewRecipeService(gdb)
	if err := svc.AddEntry(productID, "flour", 500, gramsID); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	items, err := svc.ListEntries(productID)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].Ingredient != "flour" || items[0].Amount != 500 || items[0].Unit != "g" {
		t.Fatalf("unexpected entry: %+v", items[0])
	}
}

func TestRecipeDuplicateEntryConflicts(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "recipe-duplicate")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")
	productID := seedProduct(t, gdb, ownerID, gramsID, "bread")

	svc := NewRecipeService(gdb)
	if err := svc.AddEntry(productID, "flour", 500, gramsID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.AddEntry(productID, "flour", 100, gramsID); !errors.Is(err, ErrRecipeEntryExists) {
		t.Fatalf("expected ErrRecipeEntryExists, got %v", err)
	}

	items, err := svc.ListEntries(productID)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 entry after duplicate add, got %d", len(items))
	}
}

func TestRecipeRemoveEntry(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "recipe-remove")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	ownerID := seedUser(t, gdb, "baker")
	productID := seedProduct(t, gdb, ownerID, gramsID, "bread")

	svc := NewRecipeService(gdb)
	if err := svc.AddEntry(productID, "flour", 500, gramsID); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	items, err := svc.ListEntries(productID)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if err := svc.RemoveEntry(productID, items[0].IngredientID); err != nil {
		t.Fatalf("remove entry: %v", err)
	}

	items, err = svc.ListEntries(productID)
	if err != nil {
		t.Fatalf("list entries after remove: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no entries after remove, got %d", len(items))
	}
}

func TestRecipeRemoveMissingEntryFails(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "recipe-remove-missing")
	defer cleanup()

	svc := NewRecipeService(gdb)
	if err := svc.RemoveEntry(1, 1); !errors.Is(err, ErrRecipeEntryNotFound) {
		t.Fatalf("expected ErrRecipeEntryNotFound, got %v", err)
	}
}

func TestRecipeRejectsNonPositiveAmount(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t, "recipe-bad-amount")
	defer cleanup()

	gramsID := seedUnit(t, gdb, "grams", "g")
	svc := NewRecipeService(gdb)
	if err := svc.AddEntry(1, "flour", 0, gramsID); !errors.Is(err, ErrRecipeAmountInvalid) {
		t.Fatalf("expected ErrRecipeAmountInvalid, got %v", err)
	}
}
