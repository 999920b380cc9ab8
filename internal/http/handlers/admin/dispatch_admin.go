package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/sweethub-erp/internal/http/handlers/shared"
	"github.com/sweethub-erp/internal/http/response"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
)

// DispatchItemRequest 派送明细请求
type DispatchItemRequest struct {
	ItemID          *uint        `json:"item_id"`
	ProductID       *uint        `json:"product_id"`
	ItemName        string       `json:"item_name" binding:"required"`
	OrderedQuantity int          `json:"ordered_quantity" binding:"required"`
	UnitPrice       models.Money `json:"unit_price"`
}

// DispatchCreateRequest 创建派送单请求
type DispatchCreateRequest struct {
	Type          string                `json:"type"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
	StoreID       *uint                 `json:"store_id"`
	Notes         string                `json:"notes"`
	Items         []DispatchItemRequest `json:"items"`
}

// CompleteStepRequest 完成步骤请求
type CompleteStepRequest struct {
	StepName string `json:"step_name" binding:"required"`
}

// SetQuantityRequest 设置已派送数量请求
type SetQuantityRequest struct {
	DispatchItemID     uint `json:"dispatch_item_id" binding:"required"`
	DispatchedQuantity int  `json:"dispatched_quantity"`
	Version            int  `json:"version"`
	IsChecked          bool `json:"is_checked"`
}

// AcknowledgementRequest 签收凭证请求
type AcknowledgementRequest struct {
	PhotoPath string `json:"photo_path"`
	Notes     string `json:"notes"`
}

// GetDispatches 获取派送单列表
func (h *Handler) GetDispatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid created_from", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid created_to", err)
		return
	}

	dispatches, total, err := h.DispatchService.ListDispatches(repository.DispatchListFilter{
		Page:        page,
		PageSize:    pageSize,
		Type:        c.Query("type"),
		Status:      c.Query("status"),
		StoreID:     handlershared.ParseUintQuery(c, "store_id"),
		OrderID:     handlershared.ParseUintQuery(c, "order_id"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "dispatch list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, dispatches, pagination)
}

// GetDispatch 获取派送单详情
func (h *Handler) GetDispatch(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	dispatch, err := h.DispatchService.GetDispatch(id)
	if err != nil {
		if errors.Is(err, service.ErrDispatchNotFound) {
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "dispatch fetch failed", err)
		return
	}
	response.Success(c, dispatch)
}

// CreateDispatch 创建独立派送单
func (h *Handler) CreateDispatch(c *gin.Context) {
	var req DispatchCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	items := make([]service.CreateDispatchItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateDispatchItemInput{
			ItemID:          item.ItemID,
			ProductID:       item.ProductID,
			ItemName:        item.ItemName,
			OrderedQuantity: item.OrderedQuantity,
			UnitPrice:       item.UnitPrice,
		})
	}

	dispatch, err := h.DispatchService.Create(service.CreateDispatchInput{
		Type:          req.Type,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StoreID:       req.StoreID,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDispatchTypeInvalid):
			respondError(c, response.CodeBadRequest, "dispatch type invalid", nil)
		case errors.Is(err, service.ErrDispatchInvalid):
			respondError(c, response.CodeBadRequest, "dispatch payload invalid", nil)
		default:
			respondError(c, response.CodeInternal, "dispatch create failed", err)
		}
		return
	}
	response.Success(c, dispatch)
}

// CreateDispatchFromOrder 从订单创建派送单
func (h *Handler) CreateDispatchFromOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	dispatch, err := h.DispatchService.CreateFromOrder(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeConflict, "order not eligible for dispatch", nil)
		case errors.Is(err, service.ErrOrderAlreadyDispatched):
			respondError(c, response.CodeConflict, "order already has a dispatch", nil)
		default:
			respondError(c, response.CodeInternal, "dispatch create failed", err)
		}
		return
	}
	response.Success(c, dispatch)
}

// GetDispatchItems 按派送单查询明细列表
func (h *Handler) GetDispatchItems(c *gin.Context) {
	dispatchID := handlershared.ParseUintQuery(c, "dispatch_id")
	if dispatchID == 0 {
		respondError(c, response.CodeBadRequest, "dispatch_id required", nil)
		return
	}
	items, err := h.DispatchService.ListItems(dispatchID)
	if err != nil {
		if errors.Is(err, service.ErrDispatchNotFound) {
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "dispatch items fetch failed", err)
		return
	}
	response.Success(c, items)
}

// GetDispatchSteps 按派送单查询步骤列表
func (h *Handler) GetDispatchSteps(c *gin.Context) {
	dispatchID := handlershared.ParseUintQuery(c, "dispatch_id")
	if dispatchID == 0 {
		respondError(c, response.CodeBadRequest, "dispatch_id required", nil)
		return
	}
	steps, err := h.DispatchService.ListSteps(dispatchID)
	if err != nil {
		if errors.Is(err, service.ErrDispatchNotFound) {
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "dispatch steps fetch failed", err)
		return
	}
	response.Success(c, steps)
}

// InitializeDispatchSteps 初始化派送流程步骤
func (h *Handler) InitializeDispatchSteps(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	dispatch, err := h.DispatchService.InitializeSteps(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDispatchNotFound):
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
		case errors.Is(err, service.ErrDispatchTerminal):
			respondError(c, response.CodeConflict, "dispatch already finished", nil)
		case errors.Is(err, service.ErrStepsInitialized):
			respondError(c, response.CodeConflict, "dispatch steps already initialized", nil)
		default:
			respondError(c, response.CodeInternal, "dispatch steps init failed", err)
		}
		return
	}
	response.Success(c, dispatch)
}

// CompleteDispatchStep 完成派送流程步骤
func (h *Handler) CompleteDispatchStep(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req CompleteStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	dispatch, err := h.DispatchService.CompleteStep(id, req.StepName, handlershared.Operator(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDispatchNotFound):
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
		case errors.Is(err, service.ErrDispatchTerminal):
			respondError(c, response.CodeConflict, "dispatch already finished", nil)
		case errors.Is(err, service.ErrStepsNotInitialized):
			respondError(c, response.CodeConflict, "dispatch steps not initialized", nil)
		case errors.Is(err, service.ErrStepNotFound):
			respondError(c, response.CodeNotFound, "dispatch step not found", nil)
		case errors.Is(err, service.ErrStepAlreadyCompleted):
			respondError(c, response.CodeConflict, "dispatch step already completed", nil)
		case errors.Is(err, service.ErrStepOutOfOrder):
			respondError(c, response.CodeConflict, "dispatch step out of order", nil)
		default:
			respondError(c, response.CodeInternal, "dispatch step complete failed", err)
		}
		return
	}
	response.Success(c, dispatch)
}

// SetDispatchQuantity 设置明细已派送数量
func (h *Handler) SetDispatchQuantity(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	dispatch, err := h.DispatchService.SetDispatchedQuantity(id, service.SetQuantityInput{
		DispatchItemID:     req.DispatchItemID,
		DispatchedQuantity: req.DispatchedQuantity,
		Version:            req.Version,
		IsChecked:          req.IsChecked,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDispatchNotFound):
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
		case errors.Is(err, service.ErrDispatchTerminal):
			respondError(c, response.CodeConflict, "dispatch already finished", nil)
		case errors.Is(err, service.ErrDispatchItemNotFound):
			respondError(c, response.CodeNotFound, "dispatch item not found", nil)
		case errors.Is(err, service.ErrQuantityOutOfRange):
			respondError(c, response.CodeBadRequest, "dispatched quantity out of range", nil)
		case errors.Is(err, service.ErrItemVersionConflict):
			respondError(c, response.CodeConflict, "dispatch item modified concurrently", nil)
		default:
			respondError(c, response.CodeInternal, "dispatch quantity update failed", err)
		}
		return
	}
	response.Success(c, dispatch)
}

// GetDispatchProgress 获取派送进度
func (h *Handler) GetDispatchProgress(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	progress, err := h.DispatchService.Progress(id)
	if err != nil {
		if errors.Is(err, service.ErrDispatchNotFound) {
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "dispatch progress failed", err)
		return
	}
	response.Success(c, progress)
}

// CancelDispatch 取消派送单
func (h *Handler) CancelDispatch(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	dispatch, err := h.DispatchService.Cancel(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDispatchNotFound):
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
		case errors.Is(err, service.ErrDispatchTerminal):
			respondError(c, response.CodeConflict, "dispatch already finished", nil)
		default:
			respondError(c, response.CodeInternal, "dispatch cancel failed", err)
		}
		return
	}
	response.Success(c, dispatch)
}

// SetDispatchAcknowledgement 记录签收凭证
func (h *Handler) SetDispatchAcknowledgement(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req AcknowledgementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	dispatch, err := h.DispatchService.SetAcknowledgement(id, req.PhotoPath, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrDispatchNotFound) {
			respondError(c, response.CodeNotFound, "dispatch not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "dispatch acknowledgement failed", err)
		return
	}
	response.Success(c, dispatch)
}
