package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// TaxRepository 税率数据访问接口
type TaxRepository interface {
	Create(tax *models.Tax) error
	GetByID(id uint) (*models.Tax, error)
	List(page, pageSize int) ([]models.Tax, int64, error)
	Update(tax *models.Tax) error
	Delete(id uint) error
	CountItems(taxID uint) (int64, error)
}

// GormTaxRepository GORM 实现
type GormTaxRepository struct {
	db *gorm.DB
}

// NewTaxRepository 创建税率仓库
func NewTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// Create 创建税率
func (r *GormTaxRepository) Create(tax *models.Tax) error {
	return r.db.Create(tax).Error
}

// GetByID 根据 ID 获取税率
func (r *GormTaxRepository) GetByID(id uint) (*models.Tax, error) {
	var tax models.Tax
	if err := r.db.First(&tax, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tax, nil
}

// List 分页查询税率
func (r *GormTaxRepository) List(page, pageSize int) ([]models.Tax, int64, error) {
	var taxes []models.Tax
	var total int64

	query := r.db.Model(&models.Tax{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)
	if err := query.Order("id desc").Find(&taxes).Error; err != nil {
		return nil, 0, err
	}
	return taxes, total, nil
}

// Update 更新税率
func (r *GormTaxRepository) Update(tax *models.Tax) error {
	return r.db.Save(tax).Error
}

// Delete 删除税率（软删除）
func (r *GormTaxRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tax{}, id).Error
}

// CountItems 统计引用该税率的商品数量
func (r *GormTaxRepository) CountItems(taxID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Item{}).Where("tax_id = ?", taxID).Count(&count).Error
	return count, err
}
