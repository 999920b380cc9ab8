package service

import (
	"strings"

	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// ItemCategoryService 商品分类业务服务
type ItemCategoryService struct {
	repo repository.ItemCategoryRepository
}

// NewItemCategoryService 创建商品分类服务
func NewItemCategoryService(repo repository.ItemCategoryRepository) *ItemCategoryService {
	return &ItemCategoryService{repo: repo}
}

// CreateItemCategoryInput 创建/更新商品分类输入
type CreateItemCategoryInput struct {
	Name      string
	SortOrder int
}

// List 获取商品分类列表
func (s *ItemCategoryService) List() ([]models.ItemCategory, error) {
	return s.repo.List()
}

// Create 创建商品分类
func (s *ItemCategoryService) Create(input CreateItemCategoryInput) (*models.ItemCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryInvalid
	}
	category := models.ItemCategory{
		Name:      name,
		SortOrder: input.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新商品分类
func (s *ItemCategoryService) Update(id uint, input CreateItemCategoryInput) (*models.ItemCategory, error) {
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

// Delete 删除商品分类（仍有商品引用时拒绝）
func (s *ItemCategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.repo.CountItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}
