package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// ItemPriceRepository 门店价格数据访问接口
type ItemPriceRepository interface {
	Upsert(price *models.ItemPrice) error
	GetByID(id uint) (*models.ItemPrice, error)
	GetByItemAndStore(itemID, storeID uint) (*models.ItemPrice, error)
	ListByItem(itemID uint) ([]models.ItemPrice, error)
	ListByStore(storeID uint) ([]models.ItemPrice, error)
	Delete(id uint) error
}

// GormItemPriceRepository GORM 实现
type GormItemPriceRepository struct {
	db *gorm.DB
}

// NewItemPriceRepository 创建门店价格仓库
func NewItemPriceRepository(db *gorm.DB) *GormItemPriceRepository {
	return &GormItemPriceRepository{db: db}
}

// Upsert 创建或更新门店价格（item+store 唯一）
func (r *GormItemPriceRepository) Upsert(price *models.ItemPrice) error {
	existing, err := r.GetByItemAndStore(price.ItemID, price.StoreID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(price).Error
	}
	existing.PriceAmount = price.PriceAmount
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}
	*price = *existing
	return nil
}

// GetByID 根据 ID 获取门店价格
func (r *GormItemPriceRepository) GetByID(id uint) (*models.ItemPrice, error) {
	var price models.ItemPrice
	if err := r.db.First(&price, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

// GetByItemAndStore 根据商品与门店获取价格
func (r *GormItemPriceRepository) GetByItemAndStore(itemID, storeID uint) (*models.ItemPrice, error) {
	var price models.ItemPrice
	if err := r.db.Where("item_id = ? AND store_id = ?", itemID, storeID).First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

// ListByItem 查询商品的全部门店价格
func (r *GormItemPriceRepository) ListByItem(itemID uint) ([]models.ItemPrice, error) {
	var prices []models.ItemPrice
	if err := r.db.Where("item_id = ?", itemID).Order("store_id asc").Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// ListByStore 查询门店的全部商品价格
func (r *GormItemPriceRepository) ListByStore(storeID uint) ([]models.ItemPrice, error) {
	var prices []models.ItemPrice
	if err := r.db.Where("store_id = ?", storeID).Order("item_id asc").Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Delete 删除门店价格（软删除）
func (r *GormItemPriceRepository) Delete(id uint) error {
	return r.db.Delete(&models.ItemPrice{}, id).Error
}
