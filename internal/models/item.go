package models

import (
	"time"

	"gorm.io/gorm"
)

// ItemCategory 商品分类表
type ItemCategory struct {
	ID        uint           `gorm:"primarykey" json:"id"`              // 主键
	Name      string         `gorm:"not null" json:"name"`              // 分类名称
	SortOrder int            `gorm:"default:0;index" json:"sort_order"` // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (ItemCategory) TableName() string {
	return "item_categories"
}

// Item 零售商品表
// 商品条码与二维码互斥：二者至多填写其一。
type Item struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                 // 主键
	CategoryID *uint          `gorm:"index" json:"category_id,omitempty"`                   // 商品分类ID
	Name       string         `gorm:"not null;index" json:"name"`                           // 商品名称
	Barcode    string         `gorm:"type:varchar(64);index" json:"barcode,omitempty"`      // 条形码
	QRCode     string         `gorm:"type:varchar(128);index" json:"qr_code,omitempty"`     // 二维码
	Unit       string         `gorm:"type:varchar(20)" json:"unit,omitempty"`               // 计量单位（kg/盒/袋）
	PriceAmount Money         `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 基础售价
	TaxID      *uint          `gorm:"index" json:"tax_id,omitempty"`                        // 税率ID
	IsActive   bool           `gorm:"default:true;index" json:"is_active"`                  // 是否上架
	SortOrder  int            `gorm:"default:0;index" json:"sort_order"`                    // 排序权重
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间

	// 关联
	Category *ItemCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Tax      *Tax          `gorm:"foreignKey:TaxID" json:"tax,omitempty"`           // 税率信息
	Prices   []ItemPrice   `gorm:"foreignKey:ItemID" json:"prices,omitempty"`       // 门店价格
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}

// ItemPrice 门店商品价格表（按门店覆盖基础售价）
type ItemPrice struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	ItemID      uint           `gorm:"index:idx_item_store,unique;not null" json:"item_id"`       // 商品ID
	StoreID     uint           `gorm:"index:idx_item_store,unique;not null" json:"store_id"`      // 门店ID
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 门店售价
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (ItemPrice) TableName() string {
	return "item_prices"
}
