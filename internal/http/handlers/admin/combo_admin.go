package admin

import (
	"errors"
	"strconv"

	"github.com/sweethub-erp/internal/http/response"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
)

// ComboItemRequest 组合明细请求
type ComboItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// ComboUpsertRequest 组合装创建/更新请求
type ComboUpsertRequest struct {
	Name        string             `json:"name" binding:"required"`
	PriceAmount models.Money       `json:"price_amount"`
	IsActive    *bool              `json:"is_active"`
	SortOrder   int                `json:"sort_order"`
	Items       []ComboItemRequest `json:"items" binding:"required"`
}

func (r *ComboUpsertRequest) toInput() service.CreateComboInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	items := make([]service.ComboItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.ComboItemInput{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}
	return service.CreateComboInput{
		Name:        r.Name,
		PriceAmount: r.PriceAmount,
		IsActive:    isActive,
		SortOrder:   r.SortOrder,
		Items:       items,
	}
}

// GetCombos 获取组合装列表
func (h *Handler) GetCombos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	combos, total, err := h.ComboService.List(repository.ComboListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "combo list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, combos, pagination)
}

// GetCombo 获取组合装详情
func (h *Handler) GetCombo(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	combo, err := h.ComboService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrComboNotFound) {
			respondError(c, response.CodeNotFound, "combo not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "combo fetch failed", err)
		return
	}
	response.Success(c, combo)
}

// CreateCombo 创建组合装
func (h *Handler) CreateCombo(c *gin.Context) {
	var req ComboUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	combo, err := h.ComboService.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComboItemsRequired):
			respondError(c, response.CodeBadRequest, "combo requires at least one item", nil)
		case errors.Is(err, service.ErrItemNotFound):
			respondError(c, response.CodeBadRequest, "combo references unknown item", nil)
		default:
			respondError(c, response.CodeInternal, "combo create failed", err)
		}
		return
	}
	response.Success(c, combo)
}

// UpdateCombo 更新组合装
func (h *Handler) UpdateCombo(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ComboUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	combo, err := h.ComboService.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComboNotFound):
			respondError(c, response.CodeNotFound, "combo not found", nil)
		case errors.Is(err, service.ErrComboItemsRequired):
			respondError(c, response.CodeBadRequest, "combo requires at least one item", nil)
		case errors.Is(err, service.ErrItemNotFound):
			respondError(c, response.CodeBadRequest, "combo references unknown item", nil)
		default:
			respondError(c, response.CodeInternal, "combo update failed", err)
		}
		return
	}
	response.Success(c, combo)
}

// DeleteCombo 删除组合装
func (h *Handler) DeleteCombo(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ComboService.Delete(id); err != nil {
		if errors.Is(err, service.ErrComboNotFound) {
			respondError(c, response.CodeNotFound, "combo not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "combo delete failed", err)
		return
	}
	response.Success(c, nil)
}
