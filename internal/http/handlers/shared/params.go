package shared

import (
	"strconv"
	"strings"

	"github.com/sweethub-erp/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ParseUintParam 解析路径参数为 uint，非法时直接返回 400 响应。
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, "invalid "+name, err)
		return 0, false
	}
	return uint(value), true
}

// ParseUintQuery 解析查询参数为 uint，缺省时返回 0。
func ParseUintQuery(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// Operator 读取操作员标识。
// 请求头 X-Operator 作为完成步骤等操作的署名，缺省为空。
func Operator(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("X-Operator"))
}
