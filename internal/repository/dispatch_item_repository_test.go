package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDispatchItemRepoTest(t *testing.T) (*GormDispatchItemRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:dispatch_item_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Dispatch{}, &models.DispatchItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewDispatchItemRepository(db), db
}

func createDispatchWithItems(t *testing.T, db *gorm.DB, quantities ...int) models.Dispatch {
	t.Helper()

	total := 0
	items := make([]models.DispatchItem, 0, len(quantities))
	for i, qty := range quantities {
		total += qty
		items = append(items, models.DispatchItem{
			ItemName:        fmt.Sprintf("candy-%d", i),
			OrderedQuantity: qty,
		})
	}
	dispatch := models.Dispatch{
		DispatchNo:   fmt.Sprintf("DP-REPO-%d", time.Now().UnixNano()),
		Type:         constants.DispatchTypePOS,
		Status:       constants.DispatchStatusPending,
		TotalItems:   total,
		CustomerName: "walk-in",
		Items:        items,
	}
	if err := db.Create(&dispatch).Error; err != nil {
		t.Fatalf("create dispatch failed: %v", err)
	}
	return dispatch
}

func TestUpdateQuantityCheckedBumpsVersion(t *testing.T) {
	repo, db := setupDispatchItemRepoTest(t)
	dispatch := createDispatchWithItems(t, db, 5)
	item := dispatch.Items[0]

	if err := repo.UpdateQuantityChecked(&item, 3, true); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if item.DispatchedQuantity != 3 || !item.IsChecked {
		t.Fatalf("in-memory item not updated: %+v", item)
	}
	if item.Version != 1 {
		t.Fatalf("expected version 1, got %d", item.Version)
	}

	stored, err := repo.GetByID(item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if stored.DispatchedQuantity != 3 || stored.Version != 1 {
		t.Fatalf("stored item mismatch: %+v", stored)
	}
}

func TestUpdateQuantityCheckedRejectsStaleVersion(t *testing.T) {
	repo, db := setupDispatchItemRepoTest(t)
	dispatch := createDispatchWithItems(t, db, 5)
	item := dispatch.Items[0]

	if err := repo.UpdateQuantityChecked(&item, 2, false); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	stale := dispatch.Items[0]
	stale.Version = 0
	err := repo.UpdateQuantityChecked(&stale, 4, false)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for stale version, got %v", err)
	}

	stored, err := repo.GetByID(item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if stored.DispatchedQuantity != 2 {
		t.Fatalf("stale write must not apply, got quantity %d", stored.DispatchedQuantity)
	}
}

func TestSumDispatched(t *testing.T) {
	repo, db := setupDispatchItemRepoTest(t)
	dispatch := createDispatchWithItems(t, db, 3, 4)

	sum, err := repo.SumDispatched(dispatch.ID)
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if sum != 0 {
		t.Fatalf("expected zero before updates, got %d", sum)
	}

	first := dispatch.Items[0]
	if err := repo.UpdateQuantityChecked(&first, 2, true); err != nil {
		t.Fatalf("update first failed: %v", err)
	}
	second := dispatch.Items[1]
	if err := repo.UpdateQuantityChecked(&second, 4, true); err != nil {
		t.Fatalf("update second failed: %v", err)
	}

	sum, err = repo.SumDispatched(dispatch.ID)
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if sum != 6 {
		t.Fatalf("expected sum 6, got %d", sum)
	}
}
