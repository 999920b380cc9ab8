package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// StoreCategoryRepository 门店分类数据访问接口
type StoreCategoryRepository interface {
	Create(category *models.StoreCategory) error
	GetByID(id uint) (*models.StoreCategory, error)
	List() ([]models.StoreCategory, error)
	Update(category *models.StoreCategory) error
	Delete(id uint) error
	CountStores(id uint) (int64, error)
}

// GormStoreCategoryRepository GORM 实现
type GormStoreCategoryRepository struct {
	db *gorm.DB
}

// NewStoreCategoryRepository 创建门店分类仓库
func NewStoreCategoryRepository(db *gorm.DB) *GormStoreCategoryRepository {
	return &GormStoreCategoryRepository{db: db}
}

// Create 创建门店分类
func (r *GormStoreCategoryRepository) Create(category *models.StoreCategory) error {
	return r.db.Create(category).Error
}

// GetByID 根据 ID 获取门店分类
func (r *GormStoreCategoryRepository) GetByID(id uint) (*models.StoreCategory, error) {
	var category models.StoreCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// List 查询全部门店分类
func (r *GormStoreCategoryRepository) List() ([]models.StoreCategory, error) {
	var categories []models.StoreCategory
	if err := r.db.Order("sort_order asc, id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update 更新门店分类
func (r *GormStoreCategoryRepository) Update(category *models.StoreCategory) error {
	return r.db.Save(category).Error
}

// Delete 删除门店分类（软删除）
func (r *GormStoreCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.StoreCategory{}, id).Error
}

// CountStores 统计分类下门店数
func (r *GormStoreCategoryRepository) CountStores(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Store{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
