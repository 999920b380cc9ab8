package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 批发商品表（批发渠道目录，区别于零售 Item）
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	SKU           string         `gorm:"uniqueIndex;not null" json:"sku"`                           // 批发SKU编号
	Name          string         `gorm:"not null;index" json:"name"`                                // 商品名称
	PriceAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 批发单价
	UnitsPerBlock int            `gorm:"not null;default:10" json:"units_per_block"`                // 批发起订单位（UI 层按该块进退）
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                       // 是否可订
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
