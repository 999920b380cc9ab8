package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// ItemRepository 零售商品数据访问接口
type ItemRepository interface {
	Create(item *models.Item) error
	GetByID(id uint) (*models.Item, error)
	GetByBarcode(barcode string) (*models.Item, error)
	List(filter ItemListFilter) ([]models.Item, int64, error)
	Update(item *models.Item) error
	Delete(id uint) error
	CountByCode(barcode, qrCode string, excludeID *uint) (int64, error)
}

// GormItemRepository GORM 实现
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建零售商品仓库
func NewItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Create 创建商品
func (r *GormItemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// GetByID 根据 ID 获取商品
func (r *GormItemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.Preload("Category").Preload("Tax").Preload("Prices").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByBarcode 根据条码获取商品（POS 扫码）
func (r *GormItemRepository) GetByBarcode(barcode string) (*models.Item, error) {
	var item models.Item
	if err := r.db.Where("barcode = ?", barcode).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List 查询商品列表
func (r *GormItemRepository) List(filter ItemListFilter) ([]models.Item, int64, error) {
	query := r.db.Model(&models.Item{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Barcode != "" {
		query = query.Where("barcode = ?", filter.Barcode)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Category").Preload("Tax").Order("sort_order asc, id asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update 更新商品
func (r *GormItemRepository) Update(item *models.Item) error {
	return r.db.Save(item).Error
}

// Delete 删除商品（软删除）
func (r *GormItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.Item{}, id).Error
}

// CountByCode 统计条码或二维码的占用数（排除指定 ID，用于更新查重）
func (r *GormItemRepository) CountByCode(barcode, qrCode string, excludeID *uint) (int64, error) {
	query := r.db.Model(&models.Item{})
	switch {
	case barcode != "" && qrCode != "":
		query = query.Where("barcode = ? OR qr_code = ?", barcode, qrCode)
	case barcode != "":
		query = query.Where("barcode = ?", barcode)
	case qrCode != "":
		query = query.Where("qr_code = ?", qrCode)
	default:
		return 0, nil
	}
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
