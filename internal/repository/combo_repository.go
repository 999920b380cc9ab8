package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// ComboRepository 套餐数据访问接口
type ComboRepository interface {
	Create(combo *models.Combo) error
	GetByID(id uint) (*models.Combo, error)
	List(filter ComboListFilter) ([]models.Combo, int64, error)
	Update(combo *models.Combo) error
	Delete(id uint) error
	ReplaceItems(comboID uint, items []models.ComboItem) error
}

// GormComboRepository GORM 实现
type GormComboRepository struct {
	db *gorm.DB
}

// NewComboRepository 创建套餐仓库
func NewComboRepository(db *gorm.DB) *GormComboRepository {
	return &GormComboRepository{db: db}
}

// Create 创建套餐（含明细）
func (r *GormComboRepository) Create(combo *models.Combo) error {
	return r.db.Create(combo).Error
}

// GetByID 根据 ID 获取套餐（预加载明细与商品）
func (r *GormComboRepository) GetByID(id uint) (*models.Combo, error) {
	var combo models.Combo
	if err := r.db.Preload("Items").Preload("Items.Item").First(&combo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &combo, nil
}

// List 查询组合装列表
func (r *GormComboRepository) List(filter ComboListFilter) ([]models.Combo, int64, error) {
	query := r.db.Model(&models.Combo{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var combos []models.Combo
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Items").Order("sort_order asc, id asc").Find(&combos).Error; err != nil {
		return nil, 0, err
	}
	return combos, total, nil
}

// Update 更新套餐
func (r *GormComboRepository) Update(combo *models.Combo) error {
	return r.db.Save(combo).Error
}

// Delete 删除套餐及明细（软删除）
func (r *GormComboRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("combo_id = ?", id).Delete(&models.ComboItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Combo{}, id).Error
	})
}

// ReplaceItems 全量替换套餐明细
func (r *GormComboRepository) ReplaceItems(comboID uint, items []models.ComboItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("combo_id = ?", comboID).Delete(&models.ComboItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ComboID = comboID
			items[i].ID = 0
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}
