package services

import (
	"context"
	"errors"
	"testing"

	"canteen-orders/models"
)

func TestCatalogStore_Integration(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	catalog := NewCatalogStore(pool)

	item := &models.MenuItem{
		Name:         "Lasagna",
		Description:  "baked",
		Price:        14.5,
		Availability: []string{"mon", "tue"},
		Proportions:  map[string]float64{"half": 0.6},
		Available:    true,
	}
	if err := catalog.CreateMenuItem(ctx, item); err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("id not assigned")
	}

	got, err := catalog.GetMenuItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetMenuItem: %v", err)
	}
	if got.Price != 14.5 || got.Proportions["half"] != 0.6 {
		t.Errorf("got price=%v proportions=%v, want 14.5 half=0.6", got.Price, got.Proportions)
	}
	if len(got.Availability) != 2 {
		t.Errorf("availability = %v, want 2 labels", got.Availability)
	}

	got.Price = 16.0
	if err := catalog.UpdateMenuItem(ctx, got); err != nil {
		t.Fatalf("UpdateMenuItem: %v", err)
	}
	got, err = catalog.GetMenuItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetMenuItem after update: %v", err)
	}
	if got.Price != 16.0 {
		t.Errorf("price after update = %v, want 16.0", got.Price)
	}

	if err := catalog.DeleteMenuItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteMenuItem: %v", err)
	}
	// Delete stores a timestamp; the row stays readable.
	got, err = catalog.GetMenuItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetMenuItem after delete: %v", err)
	}
	if got.DeletedFrom == nil {
		t.Error("deleted_from not set")
	}
}

func TestValidateMenuItem(t *testing.T) {
	if err := validateMenuItem(&models.MenuItem{Name: "", Price: 1}); err == nil {
		t.Error("empty name accepted")
	}
	if err := validateMenuItem(&models.MenuItem{Name: "x", Price: -1}); err == nil {
		t.Error("negative price accepted")
	}
	if err := validateMenuItem(&models.MenuItem{
		Name: "x", Price: 1, Proportions: map[string]float64{"zero": 0},
	}); err == nil {
		t.Error("non-positive multiplier accepted")
	}
	if err := validateMenuItem(&models.MenuItem{Name: "x", Price: 0}); err != nil {
		t.Errorf("zero price rejected: %v", err)
	}
}

func TestCatalogStore_NotFound(t *testing.T) {
	pool := testPool(t)
	catalog := NewCatalogStore(pool)

	_, err := catalog.GetMenuItem(context.Background(), 999999999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	err = catalog.DeleteMenuItem(context.Background(), 999999999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("delete err = %v, want ErrNotFound", err)
	}
}
