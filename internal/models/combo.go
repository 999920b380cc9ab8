package models

import (
	"time"

	"gorm.io/gorm"
)

// Combo 组合装表（礼盒/套装）
type Combo struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string         `gorm:"not null" json:"name"`                                      // 组合名称
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 组合售价
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Items []ComboItem `gorm:"foreignKey:ComboID" json:"items,omitempty"` // 组合明细
}

// TableName 指定表名
func (Combo) TableName() string {
	return "combos"
}

// ComboItem 组合装明细表
type ComboItem struct {
	ID       uint `gorm:"primarykey" json:"id"`                                  // 主键
	ComboID  uint `gorm:"index:idx_combo_item,unique;not null" json:"combo_id"`  // 组合ID
	ItemID   uint `gorm:"index:idx_combo_item,unique;not null" json:"item_id"`   // 商品ID
	Quantity int  `gorm:"not null;default:1" json:"quantity"`                    // 数量
}

// TableName 指定表名
func (ComboItem) TableName() string {
	return "combo_items"
}
