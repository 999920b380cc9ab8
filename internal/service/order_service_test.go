package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Dispatch{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewOrderService(repository.NewOrderRepository(db)), db
}

func orderTestItems() []CreateOrderItemInput {
	return []CreateOrderItemInput{
		{ItemName: "toffee box", Quantity: 2, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(21.00)), TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(42.00))},
	}
}

func TestCreatePOSOrderDefaultsWalkInCustomer(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	order, err := svc.Create(CreateOrderInput{
		Channel:     constants.OrderChannelPOS,
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(42.00)),
		Items:       orderTestItems(),
	})
	if err != nil {
		t.Fatalf("create pos order failed: %v", err)
	}
	if order.CustomerName != constants.DefaultPOSCustomerName {
		t.Fatalf("expected default customer %q, got %q", constants.DefaultPOSCustomerName, order.CustomerName)
	}
	if order.Status != constants.OrderStatusPlaced {
		t.Fatalf("expected placed, got %s", order.Status)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected order number assigned")
	}
}

func TestCreateWholesaleOrderRequiresCustomerName(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	if _, err := svc.Create(CreateOrderInput{
		Channel: constants.OrderChannelWholesale,
		Items:   orderTestItems(),
	}); !errors.Is(err, ErrCustomerNameRequired) {
		t.Fatalf("expected ErrCustomerNameRequired, got %v", err)
	}
}

func TestCreateWholesaleOrderEntersPendingApproval(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	order, err := svc.Create(CreateOrderInput{
		Channel:      constants.OrderChannelWholesale,
		CustomerName: "Candy Lane Ltd",
		Items:        orderTestItems(),
	})
	if err != nil {
		t.Fatalf("create wholesale order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPendingApproval {
		t.Fatalf("expected pending_approval, got %s", order.Status)
	}

	approved, err := svc.Approve(order.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != constants.OrderStatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
}

func TestApproveRejectsNonPendingOrder(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	order, err := svc.Create(CreateOrderInput{
		Channel: constants.OrderChannelPOS,
		Items:   orderTestItems(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.Approve(order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestCreateOrderRejectsUnknownChannelAndEmptyItems(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	if _, err := svc.Create(CreateOrderInput{
		Channel: "mail_order",
		Items:   orderTestItems(),
	}); !errors.Is(err, ErrOrderChannelInvalid) {
		t.Fatalf("expected ErrOrderChannelInvalid, got %v", err)
	}
	if _, err := svc.Create(CreateOrderInput{
		Channel:      constants.OrderChannelWholesale,
		CustomerName: "南京糖业批发部",
	}); !errors.Is(err, ErrOrderItemsRequired) {
		t.Fatalf("expected ErrOrderItemsRequired, got %v", err)
	}
}

func TestCreatePOSOrderWithoutItems(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	order, err := svc.Create(CreateOrderInput{
		Channel:     constants.OrderChannelPOS,
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(42.50)),
	})
	if err != nil {
		t.Fatalf("create flat pos order failed: %v", err)
	}
	if len(order.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(order.Items))
	}
	if order.Status != constants.OrderStatusPlaced {
		t.Fatalf("expected placed status, got %s", order.Status)
	}
}

func TestCancelOrderOnlyBeforeDispatch(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	order, err := svc.Create(CreateOrderInput{
		Channel: constants.OrderChannelPOS,
		Items:   orderTestItems(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	cancelled, err := svc.Cancel(order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled, got %s", cancelled.Status)
	}

	// 已进入派送流程的订单不可直接取消
	dispatching, err := svc.Create(CreateOrderInput{
		Channel: constants.OrderChannelPOS,
		Items:   orderTestItems(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", dispatching.ID).Update("status", constants.OrderStatusDispatching).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if _, err := svc.Cancel(dispatching.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestListEligibleForDispatchSkipsDispatchedOrders(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	free, err := svc.Create(CreateOrderInput{
		Channel: constants.OrderChannelPOS,
		Items:   orderTestItems(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	taken, err := svc.Create(CreateOrderInput{
		Channel: constants.OrderChannelPOS,
		Items:   orderTestItems(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	released, err := svc.Create(CreateOrderInput{
		Channel: constants.OrderChannelPOS,
		Items:   orderTestItems(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	takenID := taken.ID
	releasedID := released.ID
	dispatches := []models.Dispatch{
		{DispatchNo: "DP-T-1", OrderID: &takenID, Type: constants.DispatchTypePOS, Status: constants.DispatchStatusInProgress, CustomerName: "walk-in"},
		{DispatchNo: "DP-T-2", OrderID: &releasedID, Type: constants.DispatchTypePOS, Status: constants.DispatchStatusCancelled, CustomerName: "walk-in"},
	}
	for i := range dispatches {
		if err := db.Create(&dispatches[i]).Error; err != nil {
			t.Fatalf("create dispatch failed: %v", err)
		}
	}

	orders, total, err := svc.ListEligibleForDispatch(constants.OrderChannelPOS, 1, 20)
	if err != nil {
		t.Fatalf("list eligible failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 eligible orders, got %d", total)
	}
	ids := map[uint]bool{}
	for _, order := range orders {
		ids[order.ID] = true
	}
	if !ids[free.ID] || !ids[released.ID] {
		t.Fatalf("expected free and released orders eligible, got %v", ids)
	}
	if ids[taken.ID] {
		t.Fatalf("order with live dispatch should not be eligible")
	}
}

func TestGenerateOrderNoPrefixAndLength(t *testing.T) {
	no := generateOrderNo()
	if len(no) != 2+14+6 {
		t.Fatalf("unexpected order no length: %s", no)
	}
	if no[:2] != "SH" {
		t.Fatalf("expected SH prefix, got %s", no)
	}
}
