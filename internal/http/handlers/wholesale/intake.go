package wholesale

import (
	"errors"
	"strconv"

	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/http/response"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 批发订单行请求
type OrderItemRequest struct {
	ProductID  *uint        `json:"product_id"`
	ItemName   string       `json:"item_name" binding:"required"`
	Quantity   int          `json:"quantity" binding:"required"`
	UnitPrice  models.Money `json:"unit_price"`
	TotalPrice models.Money `json:"total_price"`
}

// OrderCreateRequest 批发下单请求。
// 批发订单必须带客户姓名，进入待审状态等待后台审批。
type OrderCreateRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required"`
	CustomerPhone string             `json:"customer_phone"`
	TotalAmount   models.Money       `json:"total_amount"`
	Notes         string             `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"required"`
}

// CreateOrder 批发下单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	items := make([]service.CreateOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItemInput{
			ProductID:  item.ProductID,
			ItemName:   item.ItemName,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	order, err := h.OrderService.Create(service.CreateOrderInput{
		Channel:       constants.OrderChannelWholesale,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   req.TotalAmount,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNameRequired):
			respondError(c, response.CodeBadRequest, "customer name required", nil)
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

// GetEligibleOrders 查询可派送的批发订单
func (h *Handler) GetEligibleOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListEligibleForDispatch(constants.OrderChannelWholesale, page, pageSize)
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
