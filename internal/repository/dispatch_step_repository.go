package repository

import (
	"errors"

	"github.com/sweethub-erp/internal/models"

	"gorm.io/gorm"
)

// DispatchStepRepository 派送步骤数据访问接口
type DispatchStepRepository interface {
	CreateBatch(steps []models.DispatchStep) error
	GetByDispatchAndName(dispatchID uint, stepName string) (*models.DispatchStep, error)
	ListByDispatch(dispatchID uint) ([]models.DispatchStep, error)
	CountByDispatch(dispatchID uint) (int64, error)
	Update(step *models.DispatchStep) error
	WithTx(tx *gorm.DB) *GormDispatchStepRepository
}

// GormDispatchStepRepository GORM 实现
type GormDispatchStepRepository struct {
	db *gorm.DB
}

// NewDispatchStepRepository 创建派送步骤仓库
func NewDispatchStepRepository(db *gorm.DB) *GormDispatchStepRepository {
	return &GormDispatchStepRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDispatchStepRepository) WithTx(tx *gorm.DB) *GormDispatchStepRepository {
	if tx == nil {
		return r
	}
	return &GormDispatchStepRepository{db: tx}
}

// CreateBatch 批量创建步骤
func (r *GormDispatchStepRepository) CreateBatch(steps []models.DispatchStep) error {
	if len(steps) == 0 {
		return nil
	}
	return r.db.Create(&steps).Error
}

// GetByDispatchAndName 按派送单与步骤名获取步骤
func (r *GormDispatchStepRepository) GetByDispatchAndName(dispatchID uint, stepName string) (*models.DispatchStep, error) {
	var step models.DispatchStep
	if err := r.db.Where("dispatch_id = ? AND step_name = ?", dispatchID, stepName).First(&step).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &step, nil
}

// ListByDispatch 按步骤顺序列出派送单全部步骤
func (r *GormDispatchStepRepository) ListByDispatch(dispatchID uint) ([]models.DispatchStep, error) {
	var steps []models.DispatchStep
	if err := r.db.Where("dispatch_id = ?", dispatchID).Order("step_order asc").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

// CountByDispatch 统计派送单已有的步骤数
func (r *GormDispatchStepRepository) CountByDispatch(dispatchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DispatchStep{}).Where("dispatch_id = ?", dispatchID).Count(&count).Error
	return count, err
}

// Update 保存步骤
func (r *GormDispatchStepRepository) Update(step *models.DispatchStep) error {
	return r.db.Save(step).Error
}
