package service

import (
	"strings"

	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// TaxService 税率业务服务
type TaxService struct {
	repo repository.TaxRepository
}

// NewTaxService 创建税率服务
func NewTaxService(repo repository.TaxRepository) *TaxService {
	return &TaxService{repo: repo}
}

// CreateTaxInput 创建/更新税率输入
type CreateTaxInput struct {
	Name        string
	RatePercent models.Money
	IsInclusive bool
}

// List 分页查询税率
func (s *TaxService) List(page, pageSize int) ([]models.Tax, int64, error) {
	return s.repo.List(page, pageSize)
}

// Get 获取税率详情
func (s *TaxService) Get(id uint) (*models.Tax, error) {
	tax, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, ErrTaxNotFound
	}
	return tax, nil
}

// Create 创建税率
func (s *TaxService) Create(input CreateTaxInput) (*models.Tax, error) {
	tax := models.Tax{
		Name:        strings.TrimSpace(input.Name),
		RatePercent: input.RatePercent,
		IsInclusive: input.IsInclusive,
	}
	if err := s.repo.Create(&tax); err != nil {
		return nil, err
	}
	return &tax, nil
}

// Update 更新税率
func (s *TaxService) Update(id uint, input CreateTaxInput) (*models.Tax, error) {
	tax, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, ErrTaxNotFound
	}

	tax.Name = strings.TrimSpace(input.Name)
	tax.RatePercent = input.RatePercent
	tax.IsInclusive = input.IsInclusive
	if err := s.repo.Update(tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// Delete 删除税率（仍有商品引用时拒绝）
func (s *TaxService) Delete(id uint) error {
	tax, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tax == nil {
		return ErrTaxNotFound
	}

	count, err := s.repo.CountItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTaxInUse
	}
	return s.repo.Delete(id)
}
