package service

import (
	"strings"

	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// ProductService 批发商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建批发商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CreateProductInput 创建/更新批发商品输入
type CreateProductInput struct {
	SKU           string
	Name          string
	PriceAmount   models.Money
	UnitsPerBlock int
	IsActive      bool
	SortOrder     int
}

// List 查询批发商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// Get 获取批发商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建批发商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" || name == "" {
		return nil, ErrProductInvalid
	}

	count, err := s.repo.CountBySKU(sku, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductSKUExists
	}

	unitsPerBlock := input.UnitsPerBlock
	if unitsPerBlock <= 0 {
		unitsPerBlock = 10
	}

	product := models.Product{
		SKU:           sku,
		Name:          name,
		PriceAmount:   input.PriceAmount,
		UnitsPerBlock: unitsPerBlock,
		IsActive:      input.IsActive,
		SortOrder:     input.SortOrder,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update 更新批发商品
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	sku := strings.TrimSpace(input.SKU)
	count, err := s.repo.CountBySKU(sku, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductSKUExists
	}

	product.SKU = sku
	product.Name = strings.TrimSpace(input.Name)
	product.PriceAmount = input.PriceAmount
	if input.UnitsPerBlock > 0 {
		product.UnitsPerBlock = input.UnitsPerBlock
	}
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除批发商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}
