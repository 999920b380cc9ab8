package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/logger"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/queue"
	"github.com/sweethub-erp/internal/repository"

	"gorm.io/gorm"
)

// DispatchService 派送服务
// 同一派送单的状态变更串行化：按派送单 ID 加互斥锁，再在数据库
// 事务内完成读取、校验与写入。
type DispatchService struct {
	dispatchRepo repository.DispatchRepository
	stepRepo     repository.DispatchStepRepository
	itemRepo     repository.DispatchItemRepository
	orderRepo    repository.OrderRepository
	queueClient  *queue.Client

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewDispatchService 创建派送服务
func NewDispatchService(dispatchRepo repository.DispatchRepository, stepRepo repository.DispatchStepRepository, itemRepo repository.DispatchItemRepository, orderRepo repository.OrderRepository, queueClient *queue.Client) *DispatchService {
	return &DispatchService{
		dispatchRepo: dispatchRepo,
		stepRepo:     stepRepo,
		itemRepo:     itemRepo,
		orderRepo:    orderRepo,
		queueClient:  queueClient,
		locks:        map[uint]*sync.Mutex{},
	}
}

func (s *DispatchService) lockDispatch(id uint) func() {
	s.mu.Lock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// CreateDispatchItemInput 派送明细输入
type CreateDispatchItemInput struct {
	ItemID          *uint
	ProductID       *uint
	ItemName        string
	OrderedQuantity int
	UnitPrice       models.Money
}

// CreateDispatchInput 创建派送单输入
type CreateDispatchInput struct {
	Type          string
	CustomerName  string
	CustomerPhone string
	StoreID       *uint
	Notes         string
	Items         []CreateDispatchItemInput
}

// Create 创建独立派送单。
// 步骤不在此处生成，由 InitializeSteps 单独落库；
// 来源订单的派送单走 CreateFromOrder。
func (s *DispatchService) Create(input CreateDispatchInput) (*models.Dispatch, error) {
	dispatchType := strings.TrimSpace(input.Type)
	if dispatchType == "" {
		dispatchType = constants.DispatchTypeIndependent
	}
	if !constants.IsValidDispatchType(dispatchType) {
		return nil, ErrDispatchTypeInvalid
	}

	totalItems := 0
	items := make([]models.DispatchItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.OrderedQuantity <= 0 || strings.TrimSpace(item.ItemName) == "" {
			return nil, ErrDispatchInvalid
		}
		totalItems += item.OrderedQuantity
		items = append(items, models.DispatchItem{
			ItemID:          item.ItemID,
			ProductID:       item.ProductID,
			ItemName:        strings.TrimSpace(item.ItemName),
			OrderedQuantity: item.OrderedQuantity,
			UnitPrice:       item.UnitPrice,
		})
	}

	customerName := strings.TrimSpace(input.CustomerName)
	if customerName == "" {
		customerName = constants.DefaultPOSCustomerName
	}

	dispatch := &models.Dispatch{
		DispatchNo:    generateDispatchNo(),
		Type:          dispatchType,
		Status:        constants.DispatchStatusPending,
		CurrentStep:   constants.StepSequenceForType(dispatchType)[0],
		TotalItems:    totalItems,
		CustomerName:  customerName,
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		StoreID:       input.StoreID,
		Notes:         strings.TrimSpace(input.Notes),
		Items:         items,
	}
	if err := s.dispatchRepo.Create(dispatch); err != nil {
		return nil, ErrDispatchCreateFailed
	}
	return dispatch, nil
}

// CreateFromOrder 从订单创建派送单并一次性生成流程步骤。
// 派送单类型由订单渠道决定，明细从订单项快照。
func (s *DispatchService) CreateFromOrder(orderID uint) (*models.Dispatch, error) {
	if orderID == 0 {
		return nil, ErrDispatchInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPlaced && order.Status != constants.OrderStatusApproved {
		return nil, ErrOrderStatusInvalid
	}
	existing, err := s.dispatchRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, ErrDispatchFetchFailed
	}
	if existing != nil && existing.Status != constants.DispatchStatusCancelled {
		return nil, ErrOrderAlreadyDispatched
	}

	dispatchType := constants.DispatchTypePOS
	if order.Channel == constants.OrderChannelWholesale {
		dispatchType = constants.DispatchTypeWholesale
	}
	sequence := constants.StepSequenceForType(dispatchType)

	totalItems := 0
	items := make([]models.DispatchItem, 0, len(order.Items))
	for _, orderItem := range order.Items {
		orderItemID := orderItem.ID
		totalItems += orderItem.Quantity
		items = append(items, models.DispatchItem{
			ItemID:          orderItem.ItemID,
			ProductID:       orderItem.ProductID,
			OrderItemID:     &orderItemID,
			ItemName:        orderItem.ItemName,
			OrderedQuantity: orderItem.Quantity,
			UnitPrice:       orderItem.UnitPrice,
		})
	}

	steps := make([]models.DispatchStep, 0, len(sequence))
	for idx, name := range sequence {
		steps = append(steps, models.DispatchStep{
			StepName:  name,
			StepOrder: idx,
		})
	}

	oid := order.ID
	dispatch := &models.Dispatch{
		DispatchNo:    generateDispatchNo(),
		OrderID:       &oid,
		Type:          dispatchType,
		Status:        constants.DispatchStatusPending,
		CurrentStep:   sequence[0],
		TotalItems:    totalItems,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		StoreID:       order.StoreID,
		Items:         items,
		Steps:         steps,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.dispatchRepo.WithTx(tx).Create(dispatch); err != nil {
			return ErrDispatchCreateFailed
		}
		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusDispatching, nil); err != nil {
			return ErrOrderUpdateFailed
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOrderUpdateFailed) {
			return nil, ErrOrderUpdateFailed
		}
		return nil, ErrDispatchCreateFailed
	}
	return dispatch, nil
}

// InitializeSteps 为已创建的派送单生成流程步骤。
// 步骤已存在时返回 ErrStepsInitialized，不追加也不重置。
func (s *DispatchService) InitializeSteps(dispatchID uint) (*models.Dispatch, error) {
	if dispatchID == 0 {
		return nil, ErrDispatchInvalid
	}
	unlock := s.lockDispatch(dispatchID)
	defer unlock()

	var updated *models.Dispatch
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		dispatchRepo := s.dispatchRepo.WithTx(tx)
		stepRepo := s.stepRepo.WithTx(tx)

		dispatch, err := dispatchRepo.GetByID(dispatchID)
		if err != nil {
			return err
		}
		if dispatch == nil {
			return ErrDispatchNotFound
		}
		if isTerminalStatus(dispatch.Status) {
			return ErrDispatchTerminal
		}

		count, err := stepRepo.CountByDispatch(dispatchID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrStepsInitialized
		}

		sequence := constants.StepSequenceForType(dispatch.Type)
		steps := make([]models.DispatchStep, 0, len(sequence))
		for idx, name := range sequence {
			steps = append(steps, models.DispatchStep{
				DispatchID: dispatchID,
				StepName:   name,
				StepOrder:  idx,
			})
		}
		if err := stepRepo.CreateBatch(steps); err != nil {
			return err
		}
		if err := dispatchRepo.Updates(dispatchID, map[string]interface{}{
			"current_step": sequence[0],
		}); err != nil {
			return err
		}

		updated, err = dispatchRepo.GetByID(dispatchID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDispatchNotFound),
			errors.Is(err, ErrDispatchTerminal),
			errors.Is(err, ErrStepsInitialized):
			return nil, err
		default:
			return nil, ErrDispatchUpdateFailed
		}
	}
	return updated, nil
}

// CompleteStep 完成一个流程步骤。
// 步骤只能按序完成：目标步骤之前的所有步骤必须已完成，
// 已完成的步骤不可重复完成，也不可回退。
func (s *DispatchService) CompleteStep(dispatchID uint, stepName, completedBy string) (*models.Dispatch, error) {
	stepName = strings.TrimSpace(stepName)
	if dispatchID == 0 || stepName == "" {
		return nil, ErrDispatchInvalid
	}
	unlock := s.lockDispatch(dispatchID)
	defer unlock()

	var updated *models.Dispatch
	var previousStatus string
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		dispatchRepo := s.dispatchRepo.WithTx(tx)
		stepRepo := s.stepRepo.WithTx(tx)

		dispatch, err := dispatchRepo.GetByID(dispatchID)
		if err != nil {
			return err
		}
		if dispatch == nil {
			return ErrDispatchNotFound
		}
		if isTerminalStatus(dispatch.Status) {
			return ErrDispatchTerminal
		}
		previousStatus = dispatch.Status

		steps, err := stepRepo.ListByDispatch(dispatchID)
		if err != nil {
			return err
		}
		if len(steps) == 0 {
			return ErrStepsNotInitialized
		}

		targetIdx := -1
		for i := range steps {
			if steps[i].StepName == stepName {
				targetIdx = i
				break
			}
		}
		if targetIdx < 0 {
			return ErrStepNotFound
		}
		if steps[targetIdx].IsCompleted {
			return ErrStepAlreadyCompleted
		}
		for i := 0; i < targetIdx; i++ {
			if !steps[i].IsCompleted {
				return ErrStepOutOfOrder
			}
		}

		now := time.Now()
		steps[targetIdx].IsCompleted = true
		steps[targetIdx].CompletedAt = &now
		steps[targetIdx].CompletedBy = strings.TrimSpace(completedBy)
		if err := stepRepo.Update(&steps[targetIdx]); err != nil {
			return err
		}

		currentStep := steps[targetIdx].StepName
		if targetIdx+1 < len(steps) {
			currentStep = steps[targetIdx+1].StepName
		}
		status := deriveStatus(steps, dispatch.TotalItems, dispatch.DispatchedItems)
		if err := dispatchRepo.Updates(dispatchID, map[string]interface{}{
			"current_step": currentStep,
			"status":       status,
		}); err != nil {
			return err
		}

		updated, err = dispatchRepo.GetByID(dispatchID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDispatchNotFound),
			errors.Is(err, ErrDispatchTerminal),
			errors.Is(err, ErrStepsNotInitialized),
			errors.Is(err, ErrStepNotFound),
			errors.Is(err, ErrStepAlreadyCompleted),
			errors.Is(err, ErrStepOutOfOrder):
			return nil, err
		default:
			return nil, ErrDispatchUpdateFailed
		}
	}

	s.notifyStatusChange(updated, previousStatus)
	return updated, nil
}

// SetQuantityInput 设置已派送数量输入
type SetQuantityInput struct {
	DispatchItemID     uint
	DispatchedQuantity int
	Version            int
	IsChecked          bool
}

// SetDispatchedQuantity 设置明细已派送数量并重算汇总。
// 数量必须落在 [0, ordered_quantity] 内；版本号不匹配说明
// 明细已被并发修改，调用方需重新读取后重试。
func (s *DispatchService) SetDispatchedQuantity(dispatchID uint, input SetQuantityInput) (*models.Dispatch, error) {
	if dispatchID == 0 || input.DispatchItemID == 0 {
		return nil, ErrDispatchInvalid
	}
	unlock := s.lockDispatch(dispatchID)
	defer unlock()

	var updated *models.Dispatch
	var previousStatus string
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		dispatchRepo := s.dispatchRepo.WithTx(tx)
		stepRepo := s.stepRepo.WithTx(tx)
		itemRepo := s.itemRepo.WithTx(tx)

		dispatch, err := dispatchRepo.GetByID(dispatchID)
		if err != nil {
			return err
		}
		if dispatch == nil {
			return ErrDispatchNotFound
		}
		if isTerminalStatus(dispatch.Status) {
			return ErrDispatchTerminal
		}
		previousStatus = dispatch.Status

		item, err := itemRepo.GetByID(input.DispatchItemID)
		if err != nil {
			return err
		}
		if item == nil || item.DispatchID != dispatchID {
			return ErrDispatchItemNotFound
		}
		if input.DispatchedQuantity < 0 || input.DispatchedQuantity > item.OrderedQuantity {
			return ErrQuantityOutOfRange
		}

		item.Version = input.Version
		if err := itemRepo.UpdateQuantityChecked(item, input.DispatchedQuantity, input.IsChecked); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemVersionConflict
			}
			return err
		}

		dispatched, err := itemRepo.SumDispatched(dispatchID)
		if err != nil {
			return err
		}
		// 归零编辑不回退状态，汇总为 0 时保持当前状态不变
		status := dispatch.Status
		if dispatched > 0 {
			steps, err := stepRepo.ListByDispatch(dispatchID)
			if err != nil {
				return err
			}
			status = deriveStatus(steps, dispatch.TotalItems, dispatched)
		}
		if err := dispatchRepo.Updates(dispatchID, map[string]interface{}{
			"dispatched_items": dispatched,
			"status":           status,
		}); err != nil {
			return err
		}

		updated, err = dispatchRepo.GetByID(dispatchID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDispatchNotFound),
			errors.Is(err, ErrDispatchTerminal),
			errors.Is(err, ErrDispatchItemNotFound),
			errors.Is(err, ErrQuantityOutOfRange),
			errors.Is(err, ErrItemVersionConflict):
			return nil, err
		default:
			return nil, ErrDispatchUpdateFailed
		}
	}

	s.notifyStatusChange(updated, previousStatus)
	return updated, nil
}

// Cancel 取消派送单。
// 终态派送单不可取消；来源订单回退为可再次发起派送的状态。
func (s *DispatchService) Cancel(dispatchID uint) (*models.Dispatch, error) {
	if dispatchID == 0 {
		return nil, ErrDispatchInvalid
	}
	unlock := s.lockDispatch(dispatchID)
	defer unlock()

	var updated *models.Dispatch
	var previousStatus string
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		dispatchRepo := s.dispatchRepo.WithTx(tx)

		dispatch, err := dispatchRepo.GetByID(dispatchID)
		if err != nil {
			return err
		}
		if dispatch == nil {
			return ErrDispatchNotFound
		}
		if isTerminalStatus(dispatch.Status) {
			return ErrDispatchTerminal
		}
		previousStatus = dispatch.Status

		if err := dispatchRepo.Updates(dispatchID, map[string]interface{}{
			"status": constants.DispatchStatusCancelled,
		}); err != nil {
			return err
		}
		if dispatch.OrderID != nil {
			revert := constants.OrderStatusPlaced
			if dispatch.Type == constants.DispatchTypeWholesale {
				revert = constants.OrderStatusApproved
			}
			if err := s.orderRepo.WithTx(tx).UpdateStatus(*dispatch.OrderID, revert, nil); err != nil {
				return ErrOrderUpdateFailed
			}
		}

		updated, err = dispatchRepo.GetByID(dispatchID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDispatchNotFound), errors.Is(err, ErrDispatchTerminal):
			return nil, err
		default:
			return nil, ErrDispatchUpdateFailed
		}
	}

	s.notifyStatusChange(updated, previousStatus)
	return updated, nil
}

// SetAcknowledgement 记录签收凭证照片与备注
func (s *DispatchService) SetAcknowledgement(dispatchID uint, photoPath, notes string) (*models.Dispatch, error) {
	if dispatchID == 0 {
		return nil, ErrDispatchInvalid
	}
	dispatch, err := s.dispatchRepo.GetByID(dispatchID)
	if err != nil {
		return nil, ErrDispatchFetchFailed
	}
	if dispatch == nil {
		return nil, ErrDispatchNotFound
	}

	updates := map[string]interface{}{}
	if photo := strings.TrimSpace(photoPath); photo != "" {
		updates["acknowledgement_photo"] = photo
	}
	if note := strings.TrimSpace(notes); note != "" {
		updates["notes"] = note
	}
	if len(updates) == 0 {
		return dispatch, nil
	}
	if err := s.dispatchRepo.Updates(dispatchID, updates); err != nil {
		return nil, ErrDispatchUpdateFailed
	}
	return s.dispatchRepo.GetByID(dispatchID)
}

// DispatchProgress 派送进度
type DispatchProgress struct {
	DispatchID      uint   `json:"dispatch_id"`
	Status          string `json:"status"`
	CurrentStep     string `json:"current_step"`
	TotalItems      int    `json:"total_items"`
	DispatchedItems int    `json:"dispatched_items"`
	Percent         int    `json:"percent"`
	Source          string `json:"source"`
}

// Progress 计算派送进度。
// 有明细时按已派送件数占比计算；无明细时退化为
// 按最后一个已完成步骤的里程碑取值。
func (s *DispatchService) Progress(dispatchID uint) (*DispatchProgress, error) {
	dispatch, err := s.dispatchRepo.GetByID(dispatchID)
	if err != nil {
		return nil, ErrDispatchFetchFailed
	}
	if dispatch == nil {
		return nil, ErrDispatchNotFound
	}

	progress := &DispatchProgress{
		DispatchID:      dispatch.ID,
		Status:          dispatch.Status,
		CurrentStep:     dispatch.CurrentStep,
		TotalItems:      dispatch.TotalItems,
		DispatchedItems: dispatch.DispatchedItems,
	}
	if dispatch.TotalItems > 0 {
		progress.Source = "items"
		progress.Percent = dispatch.DispatchedItems * 100 / dispatch.TotalItems
		return progress, nil
	}

	progress.Source = "steps"
	milestones := constants.StepMilestonesForType(dispatch.Type)
	for i := range dispatch.Steps {
		if !dispatch.Steps[i].IsCompleted {
			continue
		}
		if value, ok := milestones[dispatch.Steps[i].StepName]; ok && value > progress.Percent {
			progress.Percent = value
		}
	}
	return progress, nil
}

// GetDispatch 获取派送单详情
func (s *DispatchService) GetDispatch(dispatchID uint) (*models.Dispatch, error) {
	dispatch, err := s.dispatchRepo.GetByID(dispatchID)
	if err != nil {
		return nil, ErrDispatchFetchFailed
	}
	if dispatch == nil {
		return nil, ErrDispatchNotFound
	}
	return dispatch, nil
}

// ListDispatches 分页查询派送单
func (s *DispatchService) ListDispatches(filter repository.DispatchListFilter) ([]models.Dispatch, int64, error) {
	return s.dispatchRepo.List(filter)
}

// ListItems 列出派送单全部明细
func (s *DispatchService) ListItems(dispatchID uint) ([]models.DispatchItem, error) {
	if _, err := s.GetDispatch(dispatchID); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByDispatch(dispatchID)
	if err != nil {
		return nil, ErrDispatchFetchFailed
	}
	return items, nil
}

// ListSteps 按顺序列出派送单全部步骤
func (s *DispatchService) ListSteps(dispatchID uint) ([]models.DispatchStep, error) {
	if _, err := s.GetDispatch(dispatchID); err != nil {
		return nil, err
	}
	steps, err := s.stepRepo.ListByDispatch(dispatchID)
	if err != nil {
		return nil, ErrDispatchFetchFailed
	}
	return steps, nil
}

func (s *DispatchService) notifyStatusChange(dispatch *models.Dispatch, previousStatus string) {
	if s.queueClient == nil || dispatch == nil || dispatch.Status == previousStatus {
		return
	}
	if err := s.queueClient.EnqueueDispatchStatusNotify(queue.DispatchStatusNotifyPayload{
		DispatchID: dispatch.ID,
		DispatchNo: dispatch.DispatchNo,
		Status:     dispatch.Status,
	}); err != nil {
		logger.Warnw("dispatch_enqueue_status_notify_failed",
			"dispatch_id", dispatch.ID,
			"dispatch_no", dispatch.DispatchNo,
			"status", dispatch.Status,
			"error", err,
		)
	}
}

// deriveStatus 由步骤完成情况与派送件数推导派送单状态。
// 件数全部派出即为 dispatched，不依赖 dispatched 步骤是否已完成；
// delivered 只能由步骤全部完成产生。
func deriveStatus(steps []models.DispatchStep, totalItems, dispatchedItems int) string {
	completed := 0
	dispatchedStepDone := false
	for i := range steps {
		if !steps[i].IsCompleted {
			continue
		}
		completed++
		if steps[i].StepName == constants.StepDispatched {
			dispatchedStepDone = true
		}
	}

	if len(steps) > 0 && completed == len(steps) {
		return constants.DispatchStatusDelivered
	}
	if totalItems > 0 && dispatchedItems == totalItems {
		return constants.DispatchStatusDispatched
	}
	if dispatchedItems > 0 {
		return constants.DispatchStatusPartiallyDispatched
	}
	if dispatchedStepDone {
		return constants.DispatchStatusDispatched
	}
	if completed > 0 {
		return constants.DispatchStatusInProgress
	}
	return constants.DispatchStatusPending
}

func isTerminalStatus(status string) bool {
	return status == constants.DispatchStatusDelivered || status == constants.DispatchStatusCancelled
}

func generateDispatchNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("DP%s%s", now, randNumeric(6))
}
