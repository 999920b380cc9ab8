package service

import (
	"strings"

	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// ComboService 组合装业务服务
type ComboService struct {
	repo     repository.ComboRepository
	itemRepo repository.ItemRepository
}

// NewComboService 创建组合装服务
func NewComboService(repo repository.ComboRepository, itemRepo repository.ItemRepository) *ComboService {
	return &ComboService{repo: repo, itemRepo: itemRepo}
}

// ComboItemInput 组合明细输入
type ComboItemInput struct {
	ItemID   uint
	Quantity int
}

// CreateComboInput 创建/更新组合装输入
type CreateComboInput struct {
	Name        string
	PriceAmount models.Money
	IsActive    bool
	SortOrder   int
	Items       []ComboItemInput
}

func (s *ComboService) buildComboItems(inputs []ComboItemInput) ([]models.ComboItem, error) {
	if len(inputs) == 0 {
		return nil, ErrComboItemsRequired
	}
	items := make([]models.ComboItem, 0, len(inputs))
	for _, input := range inputs {
		if input.ItemID == 0 || input.Quantity <= 0 {
			return nil, ErrComboItemsRequired
		}
		item, err := s.itemRepo.GetByID(input.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrItemNotFound
		}
		items = append(items, models.ComboItem{
			ItemID:   input.ItemID,
			Quantity: input.Quantity,
		})
	}
	return items, nil
}

// List 查询组合装列表
func (s *ComboService) List(filter repository.ComboListFilter) ([]models.Combo, int64, error) {
	return s.repo.List(filter)
}

// Get 获取组合装详情
func (s *ComboService) Get(id uint) (*models.Combo, error) {
	combo, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, ErrComboNotFound
	}
	return combo, nil
}

// Create 创建组合装
func (s *ComboService) Create(input CreateComboInput) (*models.Combo, error) {
	items, err := s.buildComboItems(input.Items)
	if err != nil {
		return nil, err
	}

	combo := models.Combo{
		Name:        strings.TrimSpace(input.Name),
		PriceAmount: input.PriceAmount,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
		Items:       items,
	}
	if err := s.repo.Create(&combo); err != nil {
		return nil, err
	}
	return &combo, nil
}

// Update 更新组合装（全量替换明细）
func (s *ComboService) Update(id uint, input CreateComboInput) (*models.Combo, error) {
	combo, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, ErrComboNotFound
	}

	items, err := s.buildComboItems(input.Items)
	if err != nil {
		return nil, err
	}

	combo.Name = strings.TrimSpace(input.Name)
	combo.PriceAmount = input.PriceAmount
	combo.IsActive = input.IsActive
	combo.SortOrder = input.SortOrder
	combo.Items = nil
	if err := s.repo.Update(combo); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceItems(id, items); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Delete 删除组合装
func (s *ComboService) Delete(id uint) error {
	combo, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if combo == nil {
		return ErrComboNotFound
	}
	return s.repo.Delete(id)
}
