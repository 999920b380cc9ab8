package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// DispatchItemRepository 派送明细数据访问接口
type DispatchItemRepository interface {
	CreateBatch(items []models.DispatchItem) error
	GetByID(id uint) (*models.DispatchItem, error)
	ListByDispatch(dispatchID uint) ([]models.DispatchItem, error)
	UpdateQuantityChecked(item *models.DispatchItem, quantity int, checked bool) error
	SumDispatched(dispatchID uint) (int, error)
	WithTx(tx *gorm.DB) *GormDispatchItemRepository
}

// GormDispatchItemRepository GORM 实现
type GormDispatchItemRepository struct {
	db *gorm.DB
}

// NewDispatchItemRepository 创建派送明细仓库
func NewDispatchItemRepository(db *gorm.DB) *GormDispatchItemRepository {
	return &GormDispatchItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDispatchItemRepository) WithTx(tx *gorm.DB) *GormDispatchItemRepository {
	if tx == nil {
		return r
	}
	return &GormDispatchItemRepository{db: tx}
}

// CreateBatch 批量创建明细
func (r *GormDispatchItemRepository) CreateBatch(items []models.DispatchItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// GetByID 根据 ID 获取明细
func (r *GormDispatchItemRepository) GetByID(id uint) (*models.DispatchItem, error) {
	var item models.DispatchItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByDispatch 列出派送单全部明细
func (r *GormDispatchItemRepository) ListByDispatch(dispatchID uint) ([]models.DispatchItem, error) {
	var items []models.DispatchItem
	if err := r.db.Where("dispatch_id = ?", dispatchID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantityChecked 以版本号条件更新明细数量与勾选状态。
// 版本不匹配时不更新任何行并返回 gorm.ErrRecordNotFound，由服务层
// 转换为并发冲突错误。
func (r *GormDispatchItemRepository) UpdateQuantityChecked(item *models.DispatchItem, quantity int, checked bool) error {
	result := r.db.Model(&models.DispatchItem{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]interface{}{
			"dispatched_quantity": quantity,
			"is_checked":          checked,
			"version":             item.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	item.DispatchedQuantity = quantity
	item.IsChecked = checked
	item.Version++
	return nil
}

// SumDispatched 汇总派送单的已派送数量
func (r *GormDispatchItemRepository) SumDispatched(dispatchID uint) (int, error) {
	var sum struct {
		Total int
	}
	err := r.db.Model(&models.DispatchItem{}).
		Select("COALESCE(SUM(dispatched_quantity), 0) AS total").
		Where("dispatch_id = ?", dispatchID).
		Take(&sum).Error
	if err != nil {
		return 0, err
	}
	return sum.Total, nil
}
