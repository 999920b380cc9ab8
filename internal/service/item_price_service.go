package service

import (
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// ItemPriceService 门店价格业务服务
type ItemPriceService struct {
	repo      repository.ItemPriceRepository
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
}

// NewItemPriceService 创建门店价格服务
func NewItemPriceService(repo repository.ItemPriceRepository, itemRepo repository.ItemRepository, storeRepo repository.StoreRepository) *ItemPriceService {
	return &ItemPriceService{repo: repo, itemRepo: itemRepo, storeRepo: storeRepo}
}

// SetItemPriceInput 设置门店价格输入
type SetItemPriceInput struct {
	ItemID      uint
	StoreID     uint
	PriceAmount models.Money
}

// Set 设置商品的门店价格（存在则覆盖）
func (s *ItemPriceService) Set(input SetItemPriceInput) (*models.ItemPrice, error) {
	item, err := s.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	store, err := s.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	price := models.ItemPrice{
		ItemID:      input.ItemID,
		StoreID:     input.StoreID,
		PriceAmount: input.PriceAmount,
	}
	if err := s.repo.Upsert(&price); err != nil {
		return nil, err
	}
	return &price, nil
}

// ListByItem 查询商品的全部门店价格
func (s *ItemPriceService) ListByItem(itemID uint) ([]models.ItemPrice, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return s.repo.ListByItem(itemID)
}

// ListByStore 查询门店的全部商品价格
func (s *ItemPriceService) ListByStore(storeID uint) ([]models.ItemPrice, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return s.repo.ListByStore(storeID)
}

// EffectivePrice 计算商品在门店的生效价格。
// 门店覆盖价优先，否则回落到商品基础售价。
func (s *ItemPriceService) EffectivePrice(itemID, storeID uint) (models.Money, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return models.Money{}, err
	}
	if item == nil {
		return models.Money{}, ErrItemNotFound
	}
	if storeID != 0 {
		price, err := s.repo.GetByItemAndStore(itemID, storeID)
		if err != nil {
			return models.Money{}, err
		}
		if price != nil {
			return price.PriceAmount, nil
		}
	}
	return item.PriceAmount, nil
}

// Delete 删除门店价格
func (s *ItemPriceService) Delete(id uint) error {
	price, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if price == nil {
		return ErrItemPriceNotFound
	}
	return s.repo.Delete(id)
}
