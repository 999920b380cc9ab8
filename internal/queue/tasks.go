package queue

import (
	"encoding/json"

	"github.com/sweethub-erp/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskDispatchStatusNotify 派送状态变更通知任务
	TaskDispatchStatusNotify = constants.TaskDispatchStatusNotify
)

// DispatchStatusNotifyPayload 派送状态通知任务载荷
type DispatchStatusNotifyPayload struct {
	DispatchID uint   `json:"dispatch_id"`
	DispatchNo string `json:"dispatch_no"`
	Status     string `json:"status"`
}

// NewDispatchStatusNotifyTask 创建派送状态通知任务
func NewDispatchStatusNotifyTask(payload DispatchStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDispatchStatusNotify, body), nil
}
