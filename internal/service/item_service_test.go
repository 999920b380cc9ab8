package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupItemServiceTest(t *testing.T) (*ItemService, *ItemPriceService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:item_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.ItemCategory{}, &models.Item{}, &models.ItemPrice{},
		&models.Tax{}, &models.StoreCategory{}, &models.Store{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	itemRepo := repository.NewItemRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	priceSvc := NewItemPriceService(repository.NewItemPriceRepository(db), itemRepo, storeRepo)
	return NewItemService(itemRepo), priceSvc, db
}

func TestCreateItemRejectsBothCodes(t *testing.T) {
	svc, _, _ := setupItemServiceTest(t)

	if _, err := svc.Create(CreateItemInput{
		Name:    "double code candy",
		Barcode: "6900000000001",
		QRCode:  "QR-DOUBLE",
	}); !errors.Is(err, ErrItemCodeExclusive) {
		t.Fatalf("expected ErrItemCodeExclusive for both codes, got %v", err)
	}

	// 无码商品（散称）合法
	plain, err := svc.Create(CreateItemInput{Name: "no code candy", IsActive: true})
	if err != nil {
		t.Fatalf("create codeless item failed: %v", err)
	}
	if plain.Barcode != "" || plain.QRCode != "" {
		t.Fatalf("expected no codes, got %+v", plain)
	}

	barcodeItem, err := svc.Create(CreateItemInput{
		Name:     "barcode candy",
		Barcode:  "6900000000001",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create barcode item failed: %v", err)
	}
	if barcodeItem.Barcode == "" || barcodeItem.QRCode != "" {
		t.Fatalf("expected barcode only, got %+v", barcodeItem)
	}

	qrItem, err := svc.Create(CreateItemInput{
		Name:     "qr candy",
		QRCode:   "QR-ONLY",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create qr item failed: %v", err)
	}
	if qrItem.QRCode == "" || qrItem.Barcode != "" {
		t.Fatalf("expected qr only, got %+v", qrItem)
	}
}

func TestCreateItemRequiresName(t *testing.T) {
	svc, _, _ := setupItemServiceTest(t)

	if _, err := svc.Create(CreateItemInput{Barcode: "6900000000009"}); !errors.Is(err, ErrItemInvalid) {
		t.Fatalf("expected ErrItemInvalid for empty name, got %v", err)
	}
}

func TestCreateItemRejectsDuplicateCode(t *testing.T) {
	svc, _, _ := setupItemServiceTest(t)

	if _, err := svc.Create(CreateItemInput{Name: "first", Barcode: "6900000000002", IsActive: true}); err != nil {
		t.Fatalf("create first item failed: %v", err)
	}
	if _, err := svc.Create(CreateItemInput{Name: "second", Barcode: "6900000000002", IsActive: true}); !errors.Is(err, ErrItemCodeConflict) {
		t.Fatalf("expected ErrItemCodeConflict, got %v", err)
	}
}

func TestUpdateItemKeepsOwnCode(t *testing.T) {
	svc, _, _ := setupItemServiceTest(t)

	item, err := svc.Create(CreateItemInput{Name: "caramel bar", Barcode: "6900000000003", IsActive: true})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	// 不换码只改名，不应触发冲突
	updated, err := svc.Update(item.ID, CreateItemInput{
		Name:     "caramel bar deluxe",
		Barcode:  "6900000000003",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("update item failed: %v", err)
	}
	if updated.Name != "caramel bar deluxe" {
		t.Fatalf("expected renamed item, got %s", updated.Name)
	}
}

func TestGetByBarcode(t *testing.T) {
	svc, _, _ := setupItemServiceTest(t)

	created, err := svc.Create(CreateItemInput{Name: "scan candy", Barcode: "6900000000004", IsActive: true})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	found, err := svc.GetByBarcode(context.Background(), "6900000000004")
	if err != nil {
		t.Fatalf("get by barcode failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected item %d, got %d", created.ID, found.ID)
	}

	if _, err := svc.GetByBarcode(context.Background(), "0000000000000"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestEffectivePricePrefersStoreOverride(t *testing.T) {
	svc, priceSvc, db := setupItemServiceTest(t)

	item, err := svc.Create(CreateItemInput{
		Name:        "priced candy",
		Barcode:     "6900000000005",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	store := models.Store{Code: "ST-T1", Name: "test store", Status: "active"}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	// 未设置覆盖价时回落到基础售价
	price, err := priceSvc.EffectivePrice(item.ID, store.ID)
	if err != nil {
		t.Fatalf("effective price failed: %v", err)
	}
	if price.String() != "10.00" {
		t.Fatalf("expected base price 10.00, got %s", price.String())
	}

	if _, err := priceSvc.Set(SetItemPriceInput{
		ItemID:      item.ID,
		StoreID:     store.ID,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
	}); err != nil {
		t.Fatalf("set store price failed: %v", err)
	}

	price, err = priceSvc.EffectivePrice(item.ID, store.ID)
	if err != nil {
		t.Fatalf("effective price failed: %v", err)
	}
	if price.String() != "12.50" {
		t.Fatalf("expected override price 12.50, got %s", price.String())
	}

	// 其他门店不受覆盖影响
	price, err = priceSvc.EffectivePrice(item.ID, 0)
	if err != nil {
		t.Fatalf("effective price failed: %v", err)
	}
	if price.String() != "10.00" {
		t.Fatalf("expected base price for unknown store, got %s", price.String())
	}
}
