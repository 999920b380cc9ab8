package models

import (
	"time"

	"gorm.io/gorm"
)

// StoreCategory 门店分类表
type StoreCategory struct {
	ID        uint           `gorm:"primarykey" json:"id"`              // 主键
	Name      string         `gorm:"not null" json:"name"`              // 分类名称
	SortOrder int            `gorm:"default:0;index" json:"sort_order"` // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (StoreCategory) TableName() string {
	return "store_categories"
}

// Store 门店表
type Store struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                   // 主键
	CategoryID *uint          `gorm:"index" json:"category_id,omitempty"`                     // 门店分类ID
	Code       string         `gorm:"uniqueIndex;not null" json:"code"`                       // 门店编号
	Name       string         `gorm:"not null" json:"name"`                                   // 门店名称
	Address    string         `gorm:"type:varchar(500)" json:"address,omitempty"`             // 门店地址
	Phone      string         `gorm:"type:varchar(32)" json:"phone,omitempty"`                // 联系电话
	Status     string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // 门店状态（active/disabled）
	SortOrder  int            `gorm:"default:0;index" json:"sort_order"`                      // 排序权重
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                             // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	// 关联
	Category *StoreCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
