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

func setupDispatchServiceTest(t *testing.T) (*DispatchService, *OrderService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:dispatch_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Order{}, &models.OrderItem{},
		&models.Dispatch{}, &models.DispatchStep{}, &models.DispatchItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	dispatchSvc := NewDispatchService(
		repository.NewDispatchRepository(db),
		repository.NewDispatchStepRepository(db),
		repository.NewDispatchItemRepository(db),
		orderRepo,
		nil,
	)
	return dispatchSvc, NewOrderService(orderRepo), db
}

func createDispatchTestOrder(t *testing.T, orderSvc *OrderService, channel string) *models.Order {
	t.Helper()

	input := CreateOrderInput{
		Channel:     channel,
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(50.00)),
		Items: []CreateOrderItemInput{
			{ItemName: "fruit candy", Quantity: 3, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)), TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(30.00))},
			{ItemName: "milk chocolate", Quantity: 2, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)), TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(20.00))},
		},
	}
	if channel == constants.OrderChannelWholesale {
		input.CustomerName = "Sweet Corner Wholesale"
	}
	order, err := orderSvc.Create(input)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestCreateFromOrderSeedsStepsAndSnapshotsItems(t *testing.T) {
	svc, orderSvc, db := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}

	if dispatch.Type != constants.DispatchTypePOS {
		t.Fatalf("expected pos dispatch, got %s", dispatch.Type)
	}
	if dispatch.TotalItems != 5 {
		t.Fatalf("expected total items 5, got %d", dispatch.TotalItems)
	}
	if dispatch.CurrentStep != constants.StepOrderReceived {
		t.Fatalf("expected current step %s, got %s", constants.StepOrderReceived, dispatch.CurrentStep)
	}

	loaded, err := svc.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}
	if len(loaded.Steps) != len(constants.POSStepSequence) {
		t.Fatalf("expected %d steps, got %d", len(constants.POSStepSequence), len(loaded.Steps))
	}
	for i, step := range loaded.Steps {
		if step.StepName != constants.POSStepSequence[i] {
			t.Fatalf("step %d: expected %s, got %s", i, constants.POSStepSequence[i], step.StepName)
		}
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 dispatch items, got %d", len(loaded.Items))
	}

	var updatedOrder models.Order
	if err := db.First(&updatedOrder, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if updatedOrder.Status != constants.OrderStatusDispatching {
		t.Fatalf("expected order dispatching, got %s", updatedOrder.Status)
	}
}

func TestCreateFromOrderWholesaleUsesWholesaleSequence(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelWholesale)
	if _, err := orderSvc.Approve(order.ID); err != nil {
		t.Fatalf("approve order failed: %v", err)
	}

	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}
	if dispatch.Type != constants.DispatchTypeWholesale {
		t.Fatalf("expected wholesale dispatch, got %s", dispatch.Type)
	}

	loaded, err := svc.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}
	if len(loaded.Steps) != len(constants.WholesaleStepSequence) {
		t.Fatalf("expected %d steps, got %d", len(constants.WholesaleStepSequence), len(loaded.Steps))
	}
}

func TestCreateFromOrderRejectsUnapprovedWholesale(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelWholesale)
	if _, err := svc.CreateFromOrder(order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestCreateFromOrderRejectsSecondDispatch(t *testing.T) {
	svc, orderSvc, db := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	if _, err := svc.CreateFromOrder(order.ID); err != nil {
		t.Fatalf("create from order failed: %v", err)
	}

	// 订单已进入派送中，不再满足可派送状态
	if _, err := svc.CreateFromOrder(order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}

	// 即便订单状态被外部改回，存活的派送单依然阻止重复派送
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", constants.OrderStatusPlaced).Error; err != nil {
		t.Fatalf("reset order status failed: %v", err)
	}
	if _, err := svc.CreateFromOrder(order.ID); !errors.Is(err, ErrOrderAlreadyDispatched) {
		t.Fatalf("expected ErrOrderAlreadyDispatched, got %v", err)
	}
}

func TestInitializeStepsOnlyOnce(t *testing.T) {
	svc, _, _ := setupDispatchServiceTest(t)

	dispatch, err := svc.Create(CreateDispatchInput{
		CustomerName: "walk-in",
		Items: []CreateDispatchItemInput{
			{ItemName: "gummy bears", OrderedQuantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("create dispatch failed: %v", err)
	}
	if dispatch.Type != constants.DispatchTypeIndependent {
		t.Fatalf("expected independent dispatch, got %s", dispatch.Type)
	}
	// 创建时即指向词表首步骤，不等步骤落库
	if dispatch.CurrentStep != constants.StepOrderReceived {
		t.Fatalf("expected current step %s at creation, got %s", constants.StepOrderReceived, dispatch.CurrentStep)
	}

	initialized, err := svc.InitializeSteps(dispatch.ID)
	if err != nil {
		t.Fatalf("initialize steps failed: %v", err)
	}
	if len(initialized.Steps) != len(constants.POSStepSequence) {
		t.Fatalf("expected %d steps, got %d", len(constants.POSStepSequence), len(initialized.Steps))
	}
	if initialized.CurrentStep != constants.StepOrderReceived {
		t.Fatalf("expected current step %s, got %s", constants.StepOrderReceived, initialized.CurrentStep)
	}

	if _, err := svc.InitializeSteps(dispatch.ID); !errors.Is(err, ErrStepsInitialized) {
		t.Fatalf("expected ErrStepsInitialized, got %v", err)
	}
}

func TestCompleteStepEnforcesSequence(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}

	// 跳过前序步骤不允许
	if _, err := svc.CompleteStep(dispatch.ID, constants.StepChecked, "op-li"); !errors.Is(err, ErrStepOutOfOrder) {
		t.Fatalf("expected ErrStepOutOfOrder, got %v", err)
	}

	updated, err := svc.CompleteStep(dispatch.ID, constants.StepOrderReceived, "op-li")
	if err != nil {
		t.Fatalf("complete first step failed: %v", err)
	}
	if updated.Status != constants.DispatchStatusInProgress {
		t.Fatalf("expected in_progress, got %s", updated.Status)
	}
	if updated.CurrentStep != constants.StepPrinted {
		t.Fatalf("expected current step %s, got %s", constants.StepPrinted, updated.CurrentStep)
	}

	if _, err := svc.CompleteStep(dispatch.ID, constants.StepOrderReceived, "op-li"); !errors.Is(err, ErrStepAlreadyCompleted) {
		t.Fatalf("expected ErrStepAlreadyCompleted, got %v", err)
	}
	if _, err := svc.CompleteStep(dispatch.ID, "no_such_step", "op-li"); !errors.Is(err, ErrStepNotFound) {
		t.Fatalf("expected ErrStepNotFound, got %v", err)
	}
}

func TestCompleteStepRecordsOperator(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}

	updated, err := svc.CompleteStep(dispatch.ID, constants.StepOrderReceived, "manager-zhang")
	if err != nil {
		t.Fatalf("complete step failed: %v", err)
	}
	step := updated.Steps[0]
	if !step.IsCompleted || step.CompletedAt == nil {
		t.Fatalf("expected step completed with timestamp, got %+v", step)
	}
	if step.CompletedBy != "manager-zhang" {
		t.Fatalf("expected completed_by manager-zhang, got %s", step.CompletedBy)
	}
}

func TestCompleteAllStepsDeliversAndLocksDispatch(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}

	var updated *models.Dispatch
	for _, step := range constants.POSStepSequence {
		updated, err = svc.CompleteStep(dispatch.ID, step, "op-li")
		if err != nil {
			t.Fatalf("complete step %s failed: %v", step, err)
		}
	}
	if updated.Status != constants.DispatchStatusDelivered {
		t.Fatalf("expected delivered, got %s", updated.Status)
	}

	// 终态后一切变更被拒绝
	if _, err := svc.CompleteStep(dispatch.ID, constants.StepReceived, "op-li"); !errors.Is(err, ErrDispatchTerminal) {
		t.Fatalf("expected ErrDispatchTerminal, got %v", err)
	}
	if _, err := svc.Cancel(dispatch.ID); !errors.Is(err, ErrDispatchTerminal) {
		t.Fatalf("expected ErrDispatchTerminal on cancel, got %v", err)
	}
}

func TestDispatchedStepStatusReflectsQuantities(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}
	loaded, err := svc.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}

	// 只派出第一项 3 件里的 2 件
	if _, err := svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
		DispatchItemID:     loaded.Items[0].ID,
		DispatchedQuantity: 2,
		Version:            loaded.Items[0].Version,
		IsChecked:          true,
	}); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	for _, step := range []string{constants.StepOrderReceived, constants.StepPrinted, constants.StepChecked} {
		if _, err := svc.CompleteStep(dispatch.ID, step, "op-li"); err != nil {
			t.Fatalf("complete step %s failed: %v", step, err)
		}
	}
	updated, err := svc.CompleteStep(dispatch.ID, constants.StepDispatched, "op-li")
	if err != nil {
		t.Fatalf("complete dispatched step failed: %v", err)
	}
	if updated.Status != constants.DispatchStatusPartiallyDispatched {
		t.Fatalf("expected partially_dispatched, got %s", updated.Status)
	}
}

func TestSetDispatchedQuantityValidatesRange(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}
	loaded, err := svc.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}
	item := loaded.Items[0]

	if _, err := svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
		DispatchItemID:     item.ID,
		DispatchedQuantity: item.OrderedQuantity + 1,
		Version:            item.Version,
	}); !errors.Is(err, ErrQuantityOutOfRange) {
		t.Fatalf("expected ErrQuantityOutOfRange, got %v", err)
	}
	if _, err := svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
		DispatchItemID:     item.ID,
		DispatchedQuantity: -1,
		Version:            item.Version,
	}); !errors.Is(err, ErrQuantityOutOfRange) {
		t.Fatalf("expected ErrQuantityOutOfRange for negative, got %v", err)
	}
}

func TestSetDispatchedQuantityDetectsVersionConflict(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}
	loaded, err := svc.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}
	item := loaded.Items[0]

	if _, err := svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
		DispatchItemID:     item.ID,
		DispatchedQuantity: 1,
		Version:            item.Version,
		IsChecked:          true,
	}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	// 旧版本号重放，模拟并发修改
	if _, err := svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
		DispatchItemID:     item.ID,
		DispatchedQuantity: 2,
		Version:            item.Version,
	}); !errors.Is(err, ErrItemVersionConflict) {
		t.Fatalf("expected ErrItemVersionConflict, got %v", err)
	}
}

func TestFullQuantitiesAloneMeanDispatched(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}
	loaded, err := svc.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}
	if _, err := svc.CompleteStep(dispatch.ID, constants.StepOrderReceived, "op-li"); err != nil {
		t.Fatalf("complete first step failed: %v", err)
	}

	// 件数派满即为 dispatched，不需要 dispatched 步骤先完成
	var updated *models.Dispatch
	for _, item := range loaded.Items {
		updated, err = svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
			DispatchItemID:     item.ID,
			DispatchedQuantity: item.OrderedQuantity,
			Version:            item.Version,
			IsChecked:          true,
		})
		if err != nil {
			t.Fatalf("set quantity failed: %v", err)
		}
	}
	if updated.Status != constants.DispatchStatusDispatched {
		t.Fatalf("expected dispatched, got %s", updated.Status)
	}
	if updated.DispatchedItems != updated.TotalItems {
		t.Fatalf("expected dispatched items %d, got %d", updated.TotalItems, updated.DispatchedItems)
	}

	// 步骤全部完成后才进入 delivered
	for _, step := range []string{constants.StepPrinted, constants.StepChecked, constants.StepDispatched, constants.StepReceived} {
		updated, err = svc.CompleteStep(dispatch.ID, step, "op-li")
		if err != nil {
			t.Fatalf("complete step %s failed: %v", step, err)
		}
	}
	if updated.Status != constants.DispatchStatusDelivered {
		t.Fatalf("expected delivered, got %s", updated.Status)
	}
}

func TestZeroingQuantityKeepsStatus(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}
	loaded, err := svc.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}
	item := loaded.Items[0]

	updated, err := svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
		DispatchItemID:     item.ID,
		DispatchedQuantity: 2,
		Version:            item.Version,
	})
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if updated.Status != constants.DispatchStatusPartiallyDispatched {
		t.Fatalf("expected partially_dispatched, got %s", updated.Status)
	}

	// 归零编辑不回退状态
	updated, err = svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
		DispatchItemID:     item.ID,
		DispatchedQuantity: 0,
		Version:            item.Version + 1,
	})
	if err != nil {
		t.Fatalf("zero quantity failed: %v", err)
	}
	if updated.DispatchedItems != 0 {
		t.Fatalf("expected dispatched items 0, got %d", updated.DispatchedItems)
	}
	if updated.Status != constants.DispatchStatusPartiallyDispatched {
		t.Fatalf("expected status unchanged after zeroing, got %s", updated.Status)
	}
}

func TestProgressPrefersItemQuantities(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}
	loaded, err := svc.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}

	if _, err := svc.SetDispatchedQuantity(dispatch.ID, SetQuantityInput{
		DispatchItemID:     loaded.Items[0].ID,
		DispatchedQuantity: 3,
		Version:            loaded.Items[0].Version,
	}); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	progress, err := svc.Progress(dispatch.ID)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Source != "items" {
		t.Fatalf("expected items source, got %s", progress.Source)
	}
	if progress.Percent != 60 {
		t.Fatalf("expected 60 percent, got %d", progress.Percent)
	}
}

func TestProgressFallsBackToStepMilestones(t *testing.T) {
	svc, _, db := setupDispatchServiceTest(t)

	// 无明细的派送单直接落库，进度退化为步骤里程碑
	dispatch := models.Dispatch{
		DispatchNo:   "DP00000000000000000001",
		Type:         constants.DispatchTypePOS,
		Status:       constants.DispatchStatusPending,
		CustomerName: "walk-in",
	}
	if err := db.Create(&dispatch).Error; err != nil {
		t.Fatalf("create dispatch failed: %v", err)
	}
	if _, err := svc.InitializeSteps(dispatch.ID); err != nil {
		t.Fatalf("initialize steps failed: %v", err)
	}

	for _, step := range []string{constants.StepOrderReceived, constants.StepPrinted} {
		if _, err := svc.CompleteStep(dispatch.ID, step, "op-li"); err != nil {
			t.Fatalf("complete step %s failed: %v", step, err)
		}
	}

	progress, err := svc.Progress(dispatch.ID)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Source != "steps" {
		t.Fatalf("expected steps source, got %s", progress.Source)
	}
	if progress.Percent != constants.POSStepMilestones[constants.StepPrinted] {
		t.Fatalf("expected milestone %d, got %d", constants.POSStepMilestones[constants.StepPrinted], progress.Percent)
	}
}

func TestCancelRevertsLinkedOrder(t *testing.T) {
	svc, orderSvc, db := setupDispatchServiceTest(t)

	posOrder := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	posDispatch, err := svc.CreateFromOrder(posOrder.ID)
	if err != nil {
		t.Fatalf("create pos dispatch failed: %v", err)
	}
	cancelled, err := svc.Cancel(posDispatch.ID)
	if err != nil {
		t.Fatalf("cancel pos dispatch failed: %v", err)
	}
	if cancelled.Status != constants.DispatchStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	var reverted models.Order
	if err := db.First(&reverted, posOrder.ID).Error; err != nil {
		t.Fatalf("load pos order failed: %v", err)
	}
	if reverted.Status != constants.OrderStatusPlaced {
		t.Fatalf("expected pos order reverted to placed, got %s", reverted.Status)
	}

	wsOrder := createDispatchTestOrder(t, orderSvc, constants.OrderChannelWholesale)
	if _, err := orderSvc.Approve(wsOrder.ID); err != nil {
		t.Fatalf("approve wholesale order failed: %v", err)
	}
	wsDispatch, err := svc.CreateFromOrder(wsOrder.ID)
	if err != nil {
		t.Fatalf("create wholesale dispatch failed: %v", err)
	}
	if _, err := svc.Cancel(wsDispatch.ID); err != nil {
		t.Fatalf("cancel wholesale dispatch failed: %v", err)
	}
	reverted = models.Order{}
	if err := db.First(&reverted, wsOrder.ID).Error; err != nil {
		t.Fatalf("load wholesale order failed: %v", err)
	}
	if reverted.Status != constants.OrderStatusApproved {
		t.Fatalf("expected wholesale order reverted to approved, got %s", reverted.Status)
	}
}

func TestCancelledOrderDispatchAllowsNewDispatch(t *testing.T) {
	svc, orderSvc, db := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	first, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create first dispatch failed: %v", err)
	}
	if _, err := svc.Cancel(first.ID); err != nil {
		t.Fatalf("cancel first dispatch failed: %v", err)
	}

	second, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("expected new dispatch after cancel, got %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("expected a fresh dispatch record")
	}

	// 占用判断看最新派送单：历史已取消单不得掩盖存活单
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", constants.OrderStatusPlaced).Error; err != nil {
		t.Fatalf("reset order status failed: %v", err)
	}
	if _, err := svc.CreateFromOrder(order.ID); !errors.Is(err, ErrOrderAlreadyDispatched) {
		t.Fatalf("expected ErrOrderAlreadyDispatched with live second dispatch, got %v", err)
	}
}

func TestSetAcknowledgement(t *testing.T) {
	svc, orderSvc, _ := setupDispatchServiceTest(t)

	order := createDispatchTestOrder(t, orderSvc, constants.OrderChannelPOS)
	dispatch, err := svc.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create from order failed: %v", err)
	}

	updated, err := svc.SetAcknowledgement(dispatch.ID, "/uploads/ack-001.jpg", "signed by receiver")
	if err != nil {
		t.Fatalf("set acknowledgement failed: %v", err)
	}
	if updated.AcknowledgementPhoto != "/uploads/ack-001.jpg" {
		t.Fatalf("expected acknowledgement photo saved, got %q", updated.AcknowledgementPhoto)
	}
	if updated.Notes != "signed by receiver" {
		t.Fatalf("expected notes saved, got %q", updated.Notes)
	}
}
