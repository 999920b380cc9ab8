package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// ItemCategoryRepository 商品分类数据访问接口
type ItemCategoryRepository interface {
	Create(category *models.ItemCategory) error
	GetByID(id uint) (*models.ItemCategory, error)
	List() ([]models.ItemCategory, error)
	Update(category *models.ItemCategory) error
	Delete(id uint) error
	CountItems(id uint) (int64, error)
}

// GormItemCategoryRepository GORM 实现
type GormItemCategoryRepository struct {
	db *gorm.DB
}

// NewItemCategoryRepository 创建商品分类仓库
func NewItemCategoryRepository(db *gorm.DB) *GormItemCategoryRepository {
	return &GormItemCategoryRepository{db: db}
}

// Create 创建商品分类
func (r *GormItemCategoryRepository) Create(category *models.ItemCategory) error {
	return r.db.Create(category).Error
}

// GetByID 根据 ID 获取商品分类
func (r *GormItemCategoryRepository) GetByID(id uint) (*models.ItemCategory, error) {
	var category models.ItemCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// List 查询全部商品分类
func (r *GormItemCategoryRepository) List() ([]models.ItemCategory, error) {
	var categories []models.ItemCategory
	if err := r.db.Order("sort_order asc, id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update 更新商品分类
func (r *GormItemCategoryRepository) Update(category *models.ItemCategory) error {
	return r.db.Save(category).Error
}

// Delete 删除商品分类（软删除）
func (r *GormItemCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.ItemCategory{}, id).Error
}

// CountItems 统计分类下商品数
func (r *GormItemCategoryRepository) CountItems(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Item{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
