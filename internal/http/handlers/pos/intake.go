package pos

import (
	"errors"
	"strconv"

	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/http/response"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 收银订单行请求
type OrderItemRequest struct {
	ItemID     *uint        `json:"item_id"`
	ItemName   string       `json:"item_name" binding:"required"`
	Quantity   int          `json:"quantity" binding:"required"`
	UnitPrice  models.Money `json:"unit_price"`
	TotalPrice models.Money `json:"total_price"`
}

// OrderCreateRequest 收银下单请求。
// 金额由收银端按门店价计算后提交。
type OrderCreateRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	StoreID       *uint              `json:"store_id"`
	TotalAmount   models.Money       `json:"total_amount"`
	Notes         string             `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"required"`
}

// CreateOrder 门店收银下单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	items := make([]service.CreateOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItemInput{
			ItemID:     item.ItemID,
			ItemName:   item.ItemName,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	order, err := h.OrderService.Create(service.CreateOrderInput{
		Channel:       constants.OrderChannelPOS,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StoreID:       req.StoreID,
		TotalAmount:   req.TotalAmount,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderItemsRequired):
			respondError(c, response.CodeBadRequest, "order items required", nil)
		case errors.Is(err, service.ErrOrderInvalid):
			respondError(c, response.CodeBadRequest, "order payload invalid", nil)
		default:
			respondError(c, response.CodeInternal, "order create failed", err)
		}
		return
	}
	response.Success(c, order)
}

// GetItemByBarcode 条码找货
func (h *Handler) GetItemByBarcode(c *gin.Context) {
	item, err := h.ItemService.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			respondError(c, response.CodeNotFound, "item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "item fetch failed", err)
		return
	}
	response.Success(c, item)
}

// GetEligibleOrders 查询可派送的收银订单
func (h *Handler) GetEligibleOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListEligibleForDispatch(constants.OrderChannelPOS, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}
