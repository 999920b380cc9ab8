package models

import (
	"time"

	"gorm.io/gorm"
)

// User 操作员表（占位身份，不做鉴权）
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Name      string         `gorm:"not null" json:"name"`                    // 姓名
	Phone     string         `gorm:"type:varchar(32)" json:"phone,omitempty"` // 电话
	Role      string         `gorm:"type:varchar(20)" json:"role,omitempty"`  // 角色（operator/manager）
	StoreID   *uint          `gorm:"index" json:"store_id,omitempty"`         // 所属门店ID
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
