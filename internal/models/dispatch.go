package models

import (
	"time"

	"gorm.io/gorm"
)

// Dispatch 派送单表
// 派送单记录永久保留（软删除），作为发货审计历史。
type Dispatch struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                             // 主键
	DispatchNo           string         `gorm:"uniqueIndex;not null" json:"dispatch_no"`          // 派送单编号
	OrderID              *uint          `gorm:"index" json:"order_id,omitempty"`                  // 来源订单ID（独立派送单为空）
	Type                 string         `gorm:"index;not null" json:"type"`                       // 类型（pos/wholesale/independent），创建后不变
	Status               string         `gorm:"index;not null" json:"status"`                     // 派送状态
	CurrentStep          string         `gorm:"type:varchar(40);not null" json:"current_step"`    // 当前流程步骤名称
	TotalItems           int            `gorm:"not null;default:0" json:"total_items"`            // 订购总件数（明细求和）
	DispatchedItems      int            `gorm:"not null;default:0" json:"dispatched_items"`       // 已派送总件数（明细求和）
	CustomerName         string         `gorm:"type:varchar(100)" json:"customer_name"`           // 客户姓名
	CustomerPhone        string         `gorm:"type:varchar(32)" json:"customer_phone,omitempty"` // 客户电话
	StoreID              *uint          `gorm:"index" json:"store_id,omitempty"`                  // 门店ID
	AcknowledgementPhoto string         `gorm:"type:varchar(500)" json:"acknowledgement_photo,omitempty"` // 签收凭证照片路径
	Notes                string         `gorm:"type:text" json:"notes,omitempty"`                 // 备注
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                          // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间

	// 关联
	Steps []DispatchStep `gorm:"foreignKey:DispatchID" json:"steps,omitempty"` // 流程步骤
	Items []DispatchItem `gorm:"foreignKey:DispatchID" json:"items,omitempty"` // 派送明细
}

// TableName 指定表名
func (Dispatch) TableName() string {
	return "dispatches"
}

// DispatchStep 派送流程步骤表
// 已完成步骤必须构成 step_order 序列的前缀。
type DispatchStep struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                        // 主键
	DispatchID  uint           `gorm:"index:idx_dispatch_step_order,unique;not null" json:"dispatch_id"` // 派送单ID
	StepName    string         `gorm:"type:varchar(40);not null" json:"step_name"`                  // 步骤名称
	StepOrder   int            `gorm:"index:idx_dispatch_step_order,unique;not null" json:"step_order"` // 步骤序号（0 起）
	IsCompleted bool           `gorm:"not null;default:false" json:"is_completed"`                  // 是否完成（单向）
	CompletedAt *time.Time     `gorm:"index" json:"completed_at,omitempty"`                         // 完成时间
	CompletedBy string         `gorm:"type:varchar(100)" json:"completed_by,omitempty"`             // 完成操作员
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (DispatchStep) TableName() string {
	return "dispatch_steps"
}

// DispatchItem 派送明细表
// dispatched_quantity 始终在 [0, ordered_quantity] 区间内。
type DispatchItem struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                     // 主键
	DispatchID         uint           `gorm:"index;not null" json:"dispatch_id"`                        // 派送单ID
	ItemID             *uint          `gorm:"index" json:"item_id,omitempty"`                           // 零售商品ID
	ProductID          *uint          `gorm:"index" json:"product_id,omitempty"`                        // 批发商品ID
	OrderItemID        *uint          `gorm:"index" json:"order_item_id,omitempty"`                     // 来源订单项ID
	ItemName           string         `gorm:"not null" json:"item_name"`                                // 商品名称快照
	OrderedQuantity    int            `gorm:"not null" json:"ordered_quantity"`                         // 订购数量（创建后不变）
	DispatchedQuantity int            `gorm:"not null;default:0" json:"dispatched_quantity"`            // 已派送数量
	UnitPrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价快照
	IsChecked          bool           `gorm:"not null;default:false" json:"is_checked"`                 // 核对清单勾选标记
	Version            int            `gorm:"not null;default:0" json:"version"`                        // 乐观并发版本号
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (DispatchItem) TableName() string {
	return "dispatch_items"
}
