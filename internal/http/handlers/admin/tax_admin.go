package admin

import (
	"errors"
	"strconv"

	"github.com/sweethub-erp/internal/http/response"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
)

// TaxUpsertRequest 税率创建/更新请求
type TaxUpsertRequest struct {
	Name        string       `json:"name" binding:"required"`
	RatePercent models.Money `json:"rate_percent"`
	IsInclusive bool         `json:"is_inclusive"`
}

// GetTaxes 获取税率列表
func (h *Handler) GetTaxes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	taxes, total, err := h.TaxService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "tax list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, taxes, pagination)
}

// CreateTax 创建税率
func (h *Handler) CreateTax(c *gin.Context) {
	var req TaxUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	tax, err := h.TaxService.Create(service.CreateTaxInput{
		Name:        req.Name,
		RatePercent: req.RatePercent,
		IsInclusive: req.IsInclusive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "tax create failed", err)
		return
	}
	response.Success(c, tax)
}

// UpdateTax 更新税率
func (h *Handler) UpdateTax(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req TaxUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	tax, err := h.TaxService.Update(id, service.CreateTaxInput{
		Name:        req.Name,
		RatePercent: req.RatePercent,
		IsInclusive: req.IsInclusive,
	})
	if err != nil {
		if errors.Is(err, service.ErrTaxNotFound) {
			respondError(c, response.CodeNotFound, "tax not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "tax update failed", err)
		return
	}
	response.Success(c, tax)
}

// DeleteTax 删除税率
func (h *Handler) DeleteTax(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.TaxService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrTaxNotFound):
			respondError(c, response.CodeNotFound, "tax not found", nil)
		case errors.Is(err, service.ErrTaxInUse):
			respondError(c, response.CodeConflict, "tax still referenced by items", nil)
		default:
			respondError(c, response.CodeInternal, "tax delete failed", err)
		}
		return
	}
	response.Success(c, nil)
}
