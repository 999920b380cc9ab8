package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	Channel       string         `gorm:"index;not null" json:"channel"`                             // 渠道（pos/wholesale）
	Status        string         `gorm:"index;not null" json:"status"`                              // 订单状态
	CustomerName  string         `gorm:"type:varchar(100)" json:"customer_name"`                    // 客户姓名
	CustomerPhone string         `gorm:"type:varchar(32)" json:"customer_phone,omitempty"`          // 客户电话
	StoreID       *uint          `gorm:"index" json:"store_id,omitempty"`                           // 门店ID
	TotalAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 客户端提交的订单总额
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`                          // 备注
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项表
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID    uint           `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ItemID     *uint          `gorm:"index" json:"item_id,omitempty"`                           // 零售商品ID
	ProductID  *uint          `gorm:"index" json:"product_id,omitempty"`                        // 批发商品ID
	ItemName   string         `gorm:"not null" json:"item_name"`                                // 商品名称快照
	Quantity   int            `gorm:"not null" json:"quantity"`                                 // 数量
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价快照
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
