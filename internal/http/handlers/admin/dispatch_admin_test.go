package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/provider"
	"github.com/sweethub-erp/internal/repository"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDispatchHandlerTest(t *testing.T) (*gin.Engine, *Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:dispatch_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	dispatchService := service.NewDispatchService(
		repository.NewDispatchRepository(db),
		repository.NewDispatchStepRepository(db),
		repository.NewDispatchItemRepository(db),
		orderRepo,
		nil,
	)

	h := &Handler{Container: &provider.Container{
		OrderService:    service.NewOrderService(orderRepo),
		DispatchService: dispatchService,
	}}

	r := gin.New()
	r.POST("/admin/dispatches/from-order/:order_id", h.CreateDispatchFromOrder)
	r.GET("/admin/dispatch-steps", h.GetDispatchSteps)
	r.POST("/admin/dispatches/:id/steps/complete", h.CompleteDispatchStep)
	r.PUT("/admin/dispatches/:id/quantity", h.SetDispatchQuantity)
	r.GET("/admin/dispatches/:id/progress", h.GetDispatchProgress)
	return r, h, db
}

func createHandlerTestOrder(t *testing.T, h *Handler) *models.Order {
	t.Helper()
	order, err := h.OrderService.Create(service.CreateOrderInput{
		Channel:     constants.OrderChannelPOS,
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(30.00)),
		Items: []service.CreateOrderItemInput{
			{ItemName: "licorice mix", Quantity: 3, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)), TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(30.00))},
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestCreateDispatchFromOrderEndpoint(t *testing.T) {
	r, h, _ := setupDispatchHandlerTest(t)
	order := createHandlerTestOrder(t, h)

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/admin/dispatches/from-order/%d", order.ID)
	req := httptest.NewRequest(http.MethodPost, url, nil)
	r.ServeHTTP(w, req)

	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var dispatch models.Dispatch
	if err := json.Unmarshal(resp.Data, &dispatch); err != nil {
		t.Fatalf("unmarshal dispatch failed: %v", err)
	}
	if dispatch.CurrentStep != constants.StepOrderReceived {
		t.Fatalf("expected first step current, got %s", dispatch.CurrentStep)
	}

	// 同一订单重复发起返回冲突
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, url, nil)
	r.ServeHTTP(w2, req2)
	resp2 := decodeEnvelope(t, w2)
	if resp2.StatusCode != 409 {
		t.Fatalf("expected 409 for repeat dispatch, got %d", resp2.StatusCode)
	}

	// 步骤列表端点按顺序返回全部步骤
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/dispatch-steps?dispatch_id=%d", dispatch.ID), nil)
	r.ServeHTTP(w3, req3)
	resp3 := decodeEnvelope(t, w3)
	if resp3.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp3.StatusCode, resp3.Msg)
	}
	var steps []models.DispatchStep
	if err := json.Unmarshal(resp3.Data, &steps); err != nil {
		t.Fatalf("unmarshal steps failed: %v", err)
	}
	if len(steps) != len(constants.POSStepSequence) {
		t.Fatalf("expected %d steps, got %d", len(constants.POSStepSequence), len(steps))
	}
}

func TestCompleteStepEndpointUsesOperatorHeader(t *testing.T) {
	r, h, _ := setupDispatchHandlerTest(t)
	order := createHandlerTestOrder(t, h)
	dispatch, err := h.DispatchService.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create dispatch failed: %v", err)
	}

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/admin/dispatches/%d/steps/complete", dispatch.ID)
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"step_name":"order_received"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Operator", "cashier-li")
	r.ServeHTTP(w, req)

	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var updated models.Dispatch
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatalf("unmarshal dispatch failed: %v", err)
	}
	if updated.Steps[0].CompletedBy != "cashier-li" {
		t.Fatalf("expected operator header recorded, got %q", updated.Steps[0].CompletedBy)
	}

	// 乱序完成返回冲突
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"step_name":"dispatched"}`))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req2)
	resp2 := decodeEnvelope(t, w2)
	if resp2.StatusCode != 409 {
		t.Fatalf("expected 409 for out-of-order step, got %d", resp2.StatusCode)
	}
}

func TestSetQuantityEndpointVersionConflict(t *testing.T) {
	r, h, _ := setupDispatchHandlerTest(t)
	order := createHandlerTestOrder(t, h)
	dispatch, err := h.DispatchService.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create dispatch failed: %v", err)
	}
	loaded, err := h.DispatchService.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}
	item := loaded.Items[0]

	url := fmt.Sprintf("/admin/dispatches/%d/quantity", dispatch.ID)
	body := fmt.Sprintf(`{"dispatch_item_id":%d,"dispatched_quantity":2,"version":%d,"is_checked":true}`, item.ID, item.Version)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if resp := decodeEnvelope(t, w); resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}

	// 旧版本重放
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPut, url, strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req2)
	if resp := decodeEnvelope(t, w2); resp.StatusCode != 409 {
		t.Fatalf("expected 409 for stale version, got %d", resp.StatusCode)
	}

	// 超量返回参数错误
	over := fmt.Sprintf(`{"dispatch_item_id":%d,"dispatched_quantity":99,"version":%d}`, item.ID, item.Version+1)
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodPut, url, strings.NewReader(over))
	req3.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w3, req3)
	if resp := decodeEnvelope(t, w3); resp.StatusCode != 400 {
		t.Fatalf("expected 400 for out-of-range quantity, got %d", resp.StatusCode)
	}
}

func TestProgressEndpoint(t *testing.T) {
	r, h, _ := setupDispatchHandlerTest(t)
	order := createHandlerTestOrder(t, h)
	dispatch, err := h.DispatchService.CreateFromOrder(order.ID)
	if err != nil {
		t.Fatalf("create dispatch failed: %v", err)
	}
	loaded, err := h.DispatchService.GetDispatch(dispatch.ID)
	if err != nil {
		t.Fatalf("get dispatch failed: %v", err)
	}
	if _, err := h.DispatchService.SetDispatchedQuantity(dispatch.ID, service.SetQuantityInput{
		DispatchItemID:     loaded.Items[0].ID,
		DispatchedQuantity: 1,
		Version:            loaded.Items[0].Version,
	}); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/dispatches/%d/progress", dispatch.ID), nil)
	r.ServeHTTP(w, req)

	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var progress service.DispatchProgress
	if err := json.Unmarshal(resp.Data, &progress); err != nil {
		t.Fatalf("unmarshal progress failed: %v", err)
	}
	if progress.Percent != 33 {
		t.Fatalf("expected 33 percent, got %d", progress.Percent)
	}
	if progress.Source != "items" {
		t.Fatalf("expected items source, got %s", progress.Source)
	}
}
