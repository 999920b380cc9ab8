package constants

// 订单渠道常量
const (
	OrderChannelPOS       = "pos"
	OrderChannelWholesale = "wholesale"
)

// 订单状态常量
const (
	OrderStatusPlaced          = "placed"
	OrderStatusPendingApproval = "pending_approval"
	OrderStatusApproved        = "approved"
	OrderStatusDispatching     = "dispatching"
	OrderStatusCompleted       = "completed"
	OrderStatusCanceled        = "canceled"
)

// 派送单类型常量
const (
	DispatchTypePOS         = "pos"
	DispatchTypeWholesale   = "wholesale"
	DispatchTypeIndependent = "independent"
)

// 派送单状态常量
const (
	DispatchStatusPending             = "pending"
	DispatchStatusInProgress          = "in_progress"
	DispatchStatusPartiallyDispatched = "partially_dispatched"
	DispatchStatusDispatched          = "dispatched"
	DispatchStatusDelivered           = "delivered"
	DispatchStatusCancelled           = "cancelled"
)

// 门店状态常量
const (
	StoreStatusActive   = "active"
	StoreStatusDisabled = "disabled"
)

// 默认 POS 散客姓名
const DefaultPOSCustomerName = "Walk-in Customer"

// 异步任务名称常量
const (
	TaskDispatchStatusNotify = "dispatch:status_notify"
	QueueDefault             = "default"
)

// POS 流程步骤名称常量
const (
	StepOrderReceived       = "order_received"
	StepPrinted             = "printed"
	StepChecked             = "checked"
	StepDispatched          = "dispatched"
	StepReceived            = "received"
	StepOrderConfirmed      = "order_confirmed"
	StepPaymentReceived     = "payment_received"
	StepAcknowledgementSent = "acknowledgement_sent"
)

// POSStepSequence POS 派送流程步骤序列（顺序固定）
var POSStepSequence = []string{
	StepOrderReceived,
	StepPrinted,
	StepChecked,
	StepDispatched,
	StepReceived,
}

// WholesaleStepSequence 批发派送流程步骤序列（顺序固定）
var WholesaleStepSequence = []string{
	StepOrderReceived,
	StepOrderConfirmed,
	StepPaymentReceived,
	StepChecked,
	StepDispatched,
	StepAcknowledgementSent,
}

// POSStepMilestones POS 步骤进度里程碑（无商品明细时的进度推导）
var POSStepMilestones = map[string]int{
	StepOrderReceived: 20,
	StepPrinted:       40,
	StepChecked:       60,
	StepDispatched:    80,
	StepReceived:      100,
}

// WholesaleStepMilestones 批发步骤进度里程碑
var WholesaleStepMilestones = map[string]int{
	StepOrderReceived:       15,
	StepOrderConfirmed:      30,
	StepPaymentReceived:     45,
	StepChecked:             65,
	StepDispatched:          85,
	StepAcknowledgementSent: 100,
}

// StepSequenceForType 返回派送单类型对应的步骤序列。
// independent 类型未指定自定义序列时按 POS 流程处理。
func StepSequenceForType(dispatchType string) []string {
	switch dispatchType {
	case DispatchTypeWholesale:
		return WholesaleStepSequence
	default:
		return POSStepSequence
	}
}

// StepMilestonesForType 返回派送单类型对应的进度里程碑。
func StepMilestonesForType(dispatchType string) map[string]int {
	switch dispatchType {
	case DispatchTypeWholesale:
		return WholesaleStepMilestones
	default:
		return POSStepMilestones
	}
}

// TerminalStatusForType 返回派送流程走完后的终态。
func TerminalStatusForType(dispatchType string) string {
	_ = dispatchType
	return DispatchStatusDelivered
}

// IsValidDispatchType 校验派送单类型
func IsValidDispatchType(dispatchType string) bool {
	switch dispatchType {
	case DispatchTypePOS, DispatchTypeWholesale, DispatchTypeIndependent:
		return true
	default:
		return false
	}
}
