package models

import (
	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/logger"
)

// InitDefaultStore 初始化默认门店
// 首次启动时建一家主门店，POS 终端默认挂靠在这里。
func InitDefaultStore(name string) error {
	var count int64
	DB.Model(&Store{}).Count(&count)
	if count > 0 {
		return nil
	}

	if name == "" {
		name = "Main Store"
	}
	store := Store{
		Code:   "MAIN",
		Name:   name,
		Status: constants.StoreStatusActive,
	}
	if err := DB.Create(&store).Error; err != nil {
		return err
	}
	logger.Infow("default_store_created", "store_id", store.ID, "name", store.Name)
	return nil
}
