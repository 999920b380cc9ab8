package models

import (
	"time"

	"gorm.io/gorm"
)

// Tax 税率表
type Tax struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string         `gorm:"not null" json:"name"`                                      // 税率名称
	RatePercent Money          `gorm:"type:decimal(20,2);not null;default:0" json:"rate_percent"` // 税率百分比
	IsInclusive bool           `gorm:"default:false" json:"is_inclusive"`                         // 是否价内税
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Tax) TableName() string {
	return "taxes"
}
