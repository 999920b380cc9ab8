package pos

import (
	handlershared "github.com/sweethub-erp/internal/http/handlers/shared"
	"github.com/sweethub-erp/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 门店收银接口
type Handler struct {
	*provider.Container
}

func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}
