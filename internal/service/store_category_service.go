package service

import (
	"strings"

	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// StoreCategoryService 门店分类业务服务
type StoreCategoryService struct {
	repo repository.StoreCategoryRepository
}

// NewStoreCategoryService 创建门店分类服务
func NewStoreCategoryService(repo repository.StoreCategoryRepository) *StoreCategoryService {
	return &StoreCategoryService{repo: repo}
}

// CreateStoreCategoryInput 创建/更新门店分类输入
type CreateStoreCategoryInput struct {
	Name      string
	SortOrder int
}

// List 获取门店分类列表
func (s *StoreCategoryService) List() ([]models.StoreCategory, error) {
	return s.repo.List()
}

// Create 创建门店分类
func (s *StoreCategoryService) Create(input CreateStoreCategoryInput) (*models.StoreCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryInvalid
	}
	category := models.StoreCategory{
		Name:      name,
		SortOrder: input.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新门店分类
func (s *StoreCategoryService) Update(id uint, input CreateStoreCategoryInput) (*models.StoreCategory, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	category.Name = strings.TrimSpace(input.Name)
	category.SortOrder = input.SortOrder
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除门店分类（仍有门店引用时拒绝）
func (s *StoreCategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.repo.CountStores(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}
