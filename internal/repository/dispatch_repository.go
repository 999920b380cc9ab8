package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// DispatchRepository 派送单数据访问接口
type DispatchRepository interface {
	Create(dispatch *models.Dispatch) error
	GetByID(id uint) (*models.Dispatch, error)
	GetByDispatchNo(dispatchNo string) (*models.Dispatch, error)
	GetByOrderID(orderID uint) (*models.Dispatch, error)
	List(filter DispatchListFilter) ([]models.Dispatch, int64, error)
	Update(dispatch *models.Dispatch) error
	Updates(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormDispatchRepository
}

// GormDispatchRepository GORM 实现
type GormDispatchRepository struct {
	db *gorm.DB
}

// NewDispatchRepository 创建派送单仓库
func NewDispatchRepository(db *gorm.DB) *GormDispatchRepository {
	return &GormDispatchRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDispatchRepository) WithTx(tx *gorm.DB) *GormDispatchRepository {
	if tx == nil {
		return r
	}
	return &GormDispatchRepository{db: tx}
}

func (r *GormDispatchRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order asc")
		}).
		Preload("Items")
}

// Create 创建派送单（含步骤与明细）
func (r *GormDispatchRepository) Create(dispatch *models.Dispatch) error {
	return r.db.Create(dispatch).Error
}

// GetByID 根据 ID 获取派送单（预加载步骤与明细）
func (r *GormDispatchRepository) GetByID(id uint) (*models.Dispatch, error) {
	var dispatch models.Dispatch
	if err := r.withDetail(r.db).First(&dispatch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispatch, nil
}

// GetByDispatchNo 根据派送单号获取派送单
func (r *GormDispatchRepository) GetByDispatchNo(dispatchNo string) (*models.Dispatch, error) {
	var dispatch models.Dispatch
	if err := r.withDetail(r.db).Where("dispatch_no = ?", dispatchNo).First(&dispatch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispatch, nil
}

// GetByOrderID 根据订单 ID 获取最新的派送单。
// 同一订单可能留有已取消的历史派送单，取最新一条判断占用。
func (r *GormDispatchRepository) GetByOrderID(orderID uint) (*models.Dispatch, error) {
	var dispatch models.Dispatch
	if err := r.withDetail(r.db).Where("order_id = ?", orderID).Order("id desc").First(&dispatch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispatch, nil
}

// List 分页查询派送单
func (r *GormDispatchRepository) List(filter DispatchListFilter) ([]models.Dispatch, int64, error) {
	var dispatches []models.Dispatch
	query := r.db.Model(&models.Dispatch{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withDetail(query).Order("id desc").Find(&dispatches).Error; err != nil {
		return nil, 0, err
	}
	return dispatches, total, nil
}

// Update 保存派送单
func (r *GormDispatchRepository) Update(dispatch *models.Dispatch) error {
	return r.db.Save(dispatch).Error
}

// Updates 按字段更新派送单
func (r *GormDispatchRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Dispatch{}).Where("id = ?", id).Updates(updates).Error
}
