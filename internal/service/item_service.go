package service

import (
	"context"
	"strings"
	"time"

	"github.com/sweethub-erp/internal/cache"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// 扫码查询走短 TTL 缓存，商品变更时主动失效
const barcodeCacheTTL = 5 * time.Minute

func barcodeCacheKey(barcode string) string {
	return "item:barcode:" + barcode
}

// ItemService 零售商品业务服务
type ItemService struct {
	repo repository.ItemRepository
}

// NewItemService 创建零售商品服务
func NewItemService(repo repository.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// CreateItemInput 创建/更新商品输入
type CreateItemInput struct {
	CategoryID  *uint
	Name        string
	Barcode     string
	QRCode      string
	Unit        string
	PriceAmount models.Money
	TaxID       *uint
	IsActive    bool
	SortOrder   int
}

// validateItemCode 校验商品编码规则：条码与二维码不可同时填写。
// 两者都不填是合法的（散称、无码商品）。
func validateItemCode(barcode, qrCode string) error {
	if barcode != "" && qrCode != "" {
		return ErrItemCodeExclusive
	}
	return nil
}

// List 查询商品列表
func (s *ItemService) List(filter repository.ItemListFilter) ([]models.Item, int64, error) {
	return s.repo.List(filter)
}

// Get 获取商品详情
func (s *ItemService) Get(id uint) (*models.Item, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// GetByBarcode 按条码获取商品（POS 扫码）
func (s *ItemService) GetByBarcode(ctx context.Context, barcode string) (*models.Item, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrItemNotFound
	}

	var cached models.Item
	if hit, err := cache.GetJSON(ctx, barcodeCacheKey(barcode), &cached); err == nil && hit {
		return &cached, nil
	}

	item, err := s.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	_ = cache.SetJSON(ctx, barcodeCacheKey(barcode), item, barcodeCacheTTL)
	return item, nil
}

// invalidateBarcode 商品变更后清除扫码缓存
func invalidateBarcode(ctx context.Context, barcodes ...string) {
	for _, barcode := range barcodes {
		if barcode == "" {
			continue
		}
		_ = cache.Del(ctx, barcodeCacheKey(barcode))
	}
}

// Create 创建商品
func (s *ItemService) Create(input CreateItemInput) (*models.Item, error) {
	name := strings.TrimSpace(input.Name)
	barcode := strings.TrimSpace(input.Barcode)
	qrCode := strings.TrimSpace(input.QRCode)
	if name == "" {
		return nil, ErrItemInvalid
	}
	if err := validateItemCode(barcode, qrCode); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByCode(barcode, qrCode, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrItemCodeConflict
	}

	item := models.Item{
		CategoryID:  input.CategoryID,
		Name:        name,
		Barcode:     barcode,
		QRCode:      qrCode,
		Unit:        strings.TrimSpace(input.Unit),
		PriceAmount: input.PriceAmount,
		TaxID:       input.TaxID,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update 更新商品
func (s *ItemService) Update(id uint, input CreateItemInput) (*models.Item, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrItemInvalid
	}
	barcode := strings.TrimSpace(input.Barcode)
	qrCode := strings.TrimSpace(input.QRCode)
	if err := validateItemCode(barcode, qrCode); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByCode(barcode, qrCode, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrItemCodeConflict
	}

	oldBarcode := item.Barcode
	item.CategoryID = input.CategoryID
	item.Name = name
	item.Barcode = barcode
	item.QRCode = qrCode
	item.Unit = strings.TrimSpace(input.Unit)
	item.PriceAmount = input.PriceAmount
	item.TaxID = input.TaxID
	item.IsActive = input.IsActive
	item.SortOrder = input.SortOrder

	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	invalidateBarcode(context.Background(), oldBarcode, barcode)
	return item, nil
}

// Delete 删除商品
func (s *ItemService) Delete(id uint) error {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	invalidateBarcode(context.Background(), item.Barcode)
	return nil
}
