package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sweethub-erp/internal/logger"
	"github.com/sweethub-erp/internal/provider"
	"github.com/sweethub-erp/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskDispatchStatusNotify, c.handleDispatchStatusNotify)
}

// handleDispatchStatusNotify 处理派送状态变更通知。
// 通知渠道（短信/打印小票）由门店侧系统轮询日志接入，
// 此处校验派送单仍存在并落一条结构化通知日志。
func (c *Consumer) handleDispatchStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_dispatch_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DispatchStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_dispatch_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.DispatchID == 0 {
		logger.Debugw("worker_dispatch_status_notify_skip_invalid_payload", "dispatch_id", payload.DispatchID)
		return nil
	}

	dispatch, err := c.DispatchRepo.GetByID(payload.DispatchID)
	if err != nil {
		logger.Warnw("worker_dispatch_status_notify_fetch_failed", "dispatch_id", payload.DispatchID, "error", err)
		return err
	}
	if dispatch == nil {
		logger.Debugw("worker_dispatch_status_notify_skip_not_found", "dispatch_id", payload.DispatchID)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = dispatch.Status
	}
	logger.Infow("dispatch_status_notify",
		"dispatch_id", dispatch.ID,
		"dispatch_no", dispatch.DispatchNo,
		"type", dispatch.Type,
		"status", status,
		"customer_name", dispatch.CustomerName,
		"total_items", dispatch.TotalItems,
		"dispatched_items", dispatch.DispatchedItems,
	)
	return nil
}
