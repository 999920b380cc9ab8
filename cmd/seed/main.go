package main

import (
	"fmt"

	"github.com/sweethub-erp/internal/config"
	"github.com/sweethub-erp/internal/logger"
	"github.com/sweethub-erp/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 门店分类
	storeCategories := []models.StoreCategory{
		{Name: "直营门店", SortOrder: 300},
		{Name: "加盟门店", SortOrder: 200},
		{Name: "仓储门店", SortOrder: 100},
	}
	storeCategoryIDs := map[string]uint{}
	for _, cat := range storeCategories {
		var existing models.StoreCategory
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create store category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("Created store category: %s", cat.Name)
			storeCategoryIDs[cat.Name] = cat.ID
			continue
		}
		storeCategoryIDs[cat.Name] = existing.ID
	}

	// 门店
	directID := storeCategoryIDs["直营门店"]
	franchiseID := storeCategoryIDs["加盟门店"]
	stores := []models.Store{
		{Code: "ST001", Name: "中央门市", CategoryID: &directID, Address: "1 Market Street", Phone: "0101001000", Status: "active", SortOrder: 300},
		{Code: "ST002", Name: "东区分店", CategoryID: &directID, Address: "22 East Avenue", Phone: "0101002000", Status: "active", SortOrder: 200},
		{Code: "ST003", Name: "加盟一号店", CategoryID: &franchiseID, Address: "5 Harbor Road", Phone: "0101003000", Status: "active", SortOrder: 100},
	}
	storeIDs := map[string]uint{}
	for _, store := range stores {
		var existing models.Store
		if err := models.DB.Where("code = ?", store.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&store).Error; err != nil {
				stdLog.Printf("Failed to create store %s: %v", store.Code, err)
				continue
			}
			stdLog.Printf("Created store: %s", store.Code)
			storeIDs[store.Code] = store.ID
			continue
		}
		storeIDs[store.Code] = existing.ID
	}

	// 税率
	taxes := []models.Tax{
		{Name: "标准税率", RatePercent: models.NewMoneyFromDecimal(decimal.NewFromFloat(15)), IsInclusive: false},
		{Name: "含税税率", RatePercent: models.NewMoneyFromDecimal(decimal.NewFromFloat(15)), IsInclusive: true},
	}
	taxIDs := map[string]uint{}
	for _, tax := range taxes {
		var existing models.Tax
		if err := models.DB.Where("name = ?", tax.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tax).Error; err != nil {
				stdLog.Printf("Failed to create tax %s: %v", tax.Name, err)
				continue
			}
			stdLog.Printf("Created tax: %s", tax.Name)
			taxIDs[tax.Name] = tax.ID
			continue
		}
		taxIDs[tax.Name] = existing.ID
	}
	standardTaxID := taxIDs["标准税率"]

	// 商品分类
	itemCategories := []models.ItemCategory{
		{Name: "糖果", SortOrder: 300},
		{Name: "巧克力", SortOrder: 200},
		{Name: "坚果零食", SortOrder: 100},
	}
	itemCategoryIDs := map[string]uint{}
	for _, cat := range itemCategories {
		var existing models.ItemCategory
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create item category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("Created item category: %s", cat.Name)
			itemCategoryIDs[cat.Name] = cat.ID
			continue
		}
		itemCategoryIDs[cat.Name] = existing.ID
	}
	candyID := itemCategoryIDs["糖果"]
	chocolateID := itemCategoryIDs["巧克力"]
	nutsID := itemCategoryIDs["坚果零食"]

	// 零售商品（条码与二维码至多填其一）
	items := []models.Item{
		{Name: "水果硬糖 500g", Barcode: "6901001000011", Unit: "袋", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)), CategoryID: &candyID, TaxID: &standardTaxID, IsActive: true, SortOrder: 300},
		{Name: "牛奶巧克力排块", Barcode: "6901001000028", Unit: "块", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)), CategoryID: &chocolateID, TaxID: &standardTaxID, IsActive: true, SortOrder: 280},
		{Name: "散装软糖", QRCode: "QR-GUMMY-BULK", Unit: "kg", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(36.00)), CategoryID: &candyID, TaxID: &standardTaxID, IsActive: true, SortOrder: 260},
		{Name: "盐焗腰果 250g", Barcode: "6901001000042", Unit: "盒", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(28.80)), CategoryID: &nutsID, TaxID: &standardTaxID, IsActive: true, SortOrder: 240},
		{Name: "手工太妃糖", QRCode: "QR-TOFFEE-HAND", Unit: "盒", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(42.00)), CategoryID: &candyID, TaxID: &standardTaxID, IsActive: true, SortOrder: 220},
	}
	itemIDs := map[string]uint{}
	for _, item := range items {
		var existing models.Item
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create item %s: %v", item.Name, err)
				continue
			}
			stdLog.Printf("Created item: %s", item.Name)
			itemIDs[item.Name] = item.ID
			continue
		}
		itemIDs[item.Name] = existing.ID
	}

	// 门店价格覆盖（东区分店糖果上浮）
	if itemID, ok := itemIDs["水果硬糖 500g"]; ok {
		if storeID, ok := storeIDs["ST002"]; ok {
			price := models.ItemPrice{ItemID: itemID, StoreID: storeID, PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(13.50))}
			var existing models.ItemPrice
			if err := models.DB.Where("item_id = ? AND store_id = ?", itemID, storeID).First(&existing).Error; err != nil {
				if err := models.DB.Create(&price).Error; err != nil {
					stdLog.Printf("Failed to create item price: %v", err)
				} else {
					stdLog.Printf("Created item price override for store ST002")
				}
			}
		}
	}

	// 组合装（节日礼盒）
	comboItems := []models.ComboItem{}
	if id, ok := itemIDs["牛奶巧克力排块"]; ok {
		comboItems = append(comboItems, models.ComboItem{ItemID: id, Quantity: 2})
	}
	if id, ok := itemIDs["手工太妃糖"]; ok {
		comboItems = append(comboItems, models.ComboItem{ItemID: id, Quantity: 1})
	}
	if len(comboItems) > 0 {
		combo := models.Combo{
			Name:        "节日甜蜜礼盒",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(68.00)),
			IsActive:    true,
			SortOrder:   100,
			Items:       comboItems,
		}
		var existing models.Combo
		if err := models.DB.Where("name = ?", combo.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&combo).Error; err != nil {
				stdLog.Printf("Failed to create combo %s: %v", combo.Name, err)
			} else {
				stdLog.Printf("Created combo: %s", combo.Name)
			}
		}
	}

	// 批发商品
	products := []models.Product{
		{SKU: "WS-CANDY-10", Name: "水果硬糖 箱装", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(98.00)), UnitsPerBlock: 10, IsActive: true, SortOrder: 300},
		{SKU: "WS-CHOC-20", Name: "牛奶巧克力 箱装", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(320.00)), UnitsPerBlock: 20, IsActive: true, SortOrder: 200},
		{SKU: "WS-NUTS-10", Name: "盐焗腰果 箱装", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(256.00)), UnitsPerBlock: 10, IsActive: true, SortOrder: 100},
	}
	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("sku = ?", prod.SKU).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.SKU, err)
			} else {
				stdLog.Printf("Created product: %s", prod.SKU)
			}
		}
	}

	// 操作员
	centralID := storeIDs["ST001"]
	operators := []models.User{
		{Name: "门店经理 张", Phone: "0102001000", Role: "manager", StoreID: &centralID},
		{Name: "收银员 李", Phone: "0102002000", Role: "operator", StoreID: &centralID},
	}
	for _, user := range operators {
		var existing models.User
		if err := models.DB.Where("name = ?", user.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", user.Name, err)
			} else {
				stdLog.Printf("Created user: %s", user.Name)
			}
		}
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Store categories / 3 Stores")
	fmt.Println("- 2 Taxes")
	fmt.Println("- 3 Item categories / 5 Items (+1 store price override)")
	fmt.Println("- 1 Combo")
	fmt.Println("- 3 Wholesale products")
	fmt.Println("- 2 Operators")
}
