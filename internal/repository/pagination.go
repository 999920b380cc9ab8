package repository

import "gorm.io/gorm"

// applyPagination 应用分页；pageSize 不合法时返回原查询不分页。
// page 从 1 起算，小于 1 时按第一页处理。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
