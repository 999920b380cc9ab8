package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// CreateOrderItemInput 下单项输入
type CreateOrderItemInput struct {
	ItemID     *uint
	ProductID  *uint
	ItemName   string
	Quantity   int
	UnitPrice  models.Money
	TotalPrice models.Money
}

// CreateOrderInput 下单输入。
// 金额由客户端计算并原样入库，服务端不做重算。
type CreateOrderInput struct {
	Channel       string
	CustomerName  string
	CustomerPhone string
	StoreID       *uint
	TotalAmount   models.Money
	Notes         string
	Items         []CreateOrderItemInput
}

// Create 创建订单。
// POS 渠道散客默认姓名，订单直接进入 placed；
// 批发渠道必须提供客户姓名，订单进入 pending_approval 待审。
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	channel := strings.TrimSpace(input.Channel)
	if channel != constants.OrderChannelPOS && channel != constants.OrderChannelWholesale {
		return nil, ErrOrderChannelInvalid
	}
	// 批发单必须逐项录入；POS 收银允许只报总额的整单
	if channel == constants.OrderChannelWholesale && len(input.Items) == 0 {
		return nil, ErrOrderItemsRequired
	}

	customerName := strings.TrimSpace(input.CustomerName)
	status := constants.OrderStatusPlaced
	switch channel {
	case constants.OrderChannelPOS:
		if customerName == "" {
			customerName = constants.DefaultPOSCustomerName
		}
	case constants.OrderChannelWholesale:
		if customerName == "" {
			return nil, ErrCustomerNameRequired
		}
		status = constants.OrderStatusPendingApproval
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 || strings.TrimSpace(item.ItemName) == "" {
			return nil, ErrOrderInvalid
		}
		items = append(items, models.OrderItem{
			ItemID:     item.ItemID,
			ProductID:  item.ProductID,
			ItemName:   strings.TrimSpace(item.ItemName),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	order := &models.Order{
		OrderNo:       generateOrderNo(),
		Channel:       channel,
		Status:        status,
		CustomerName:  customerName,
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		StoreID:       input.StoreID,
		TotalAmount:   input.TotalAmount,
		Notes:         strings.TrimSpace(input.Notes),
	}
	if err := s.orderRepo.Create(order, items); err != nil {
		return nil, ErrOrderCreateFailed
	}
	order.Items = items
	return order, nil
}

// Approve 审核通过批发订单
func (s *OrderService) Approve(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingApproval {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.orderRepo.UpdateStatus(orderID, constants.OrderStatusApproved, nil); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	order.Status = constants.OrderStatusApproved
	return order, nil
}

// Cancel 取消订单。
// 进入派送或已完结的订单不可取消。
func (s *OrderService) Cancel(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	switch order.Status {
	case constants.OrderStatusPlaced, constants.OrderStatusPendingApproval, constants.OrderStatusApproved:
	default:
		return nil, ErrOrderStatusInvalid
	}
	if err := s.orderRepo.UpdateStatus(orderID, constants.OrderStatusCanceled, nil); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	order.Status = constants.OrderStatusCanceled
	return order, nil
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 分页查询订单
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListEligibleForDispatch 查询可发起派送的订单
func (s *OrderService) ListEligibleForDispatch(channel string, page, pageSize int) ([]models.Order, int64, error) {
	if channel != constants.OrderChannelPOS && channel != constants.OrderChannelWholesale {
		return nil, 0, ErrOrderChannelInvalid
	}
	return s.orderRepo.ListEligibleForDispatch(channel, page, pageSize)
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SH%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
