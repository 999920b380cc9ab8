package service

import "errors"

// 门店与目录相关错误
var (
	ErrStoreInvalid         = errors.New("store payload invalid")
	ErrStoreNotFound        = errors.New("store not found")
	ErrStoreCodeExists      = errors.New("store code already exists")
	ErrCategoryInvalid      = errors.New("category payload invalid")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryInUse        = errors.New("category is referenced by existing records")
	ErrItemNotFound         = errors.New("item not found")
	ErrItemInvalid          = errors.New("item payload invalid")
	ErrItemCodeExclusive    = errors.New("item may declare a barcode or a qr code, not both")
	ErrItemCodeConflict     = errors.New("item code already exists")
	ErrTaxNotFound          = errors.New("tax not found")
	ErrTaxInUse             = errors.New("tax is referenced by existing items")
	ErrComboNotFound        = errors.New("combo not found")
	ErrComboItemsRequired   = errors.New("combo requires at least one item")
	ErrProductInvalid       = errors.New("product payload invalid")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductSKUExists     = errors.New("product sku already exists")
	ErrItemPriceNotFound    = errors.New("item price not found")
	ErrUserInvalid          = errors.New("user payload invalid")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameExists       = errors.New("username already exists")
)

// 订单相关错误
var (
	ErrOrderInvalid          = errors.New("order payload invalid")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderFetchFailed      = errors.New("order fetch failed")
	ErrOrderCreateFailed     = errors.New("order create failed")
	ErrOrderUpdateFailed     = errors.New("order update failed")
	ErrOrderStatusInvalid    = errors.New("order status invalid for this operation")
	ErrOrderChannelInvalid   = errors.New("order channel invalid")
	ErrCustomerNameRequired  = errors.New("customer name required for wholesale orders")
	ErrOrderItemsRequired    = errors.New("order requires at least one item")
	ErrOrderAlreadyDispatched = errors.New("order already has a dispatch")
)

// 派送相关错误
var (
	ErrDispatchInvalid        = errors.New("dispatch payload invalid")
	ErrDispatchNotFound       = errors.New("dispatch not found")
	ErrDispatchFetchFailed    = errors.New("dispatch fetch failed")
	ErrDispatchCreateFailed   = errors.New("dispatch create failed")
	ErrDispatchUpdateFailed   = errors.New("dispatch update failed")
	ErrDispatchTypeInvalid    = errors.New("dispatch type invalid")
	ErrDispatchTerminal       = errors.New("dispatch is in a terminal status")
	ErrStepsInitialized       = errors.New("dispatch steps already initialized")
	ErrStepsNotInitialized    = errors.New("dispatch steps not initialized")
	ErrStepNotFound           = errors.New("dispatch step not found")
	ErrStepOutOfOrder         = errors.New("dispatch step out of order")
	ErrStepAlreadyCompleted   = errors.New("dispatch step already completed")
	ErrDispatchItemNotFound   = errors.New("dispatch item not found")
	ErrQuantityOutOfRange     = errors.New("dispatched quantity out of range")
	ErrItemVersionConflict    = errors.New("dispatch item modified concurrently")
)
