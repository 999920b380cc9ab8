package admin

import (
	"errors"
	"strconv"

	"github.com/sweethub-erp/internal/http/response"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
)

// ItemUpsertRequest 商品创建/更新请求
type ItemUpsertRequest struct {
	CategoryID  *uint        `json:"category_id"`
	Name        string       `json:"name" binding:"required"`
	Barcode     string       `json:"barcode"`
	QRCode      string       `json:"qr_code"`
	Unit        string       `json:"unit"`
	PriceAmount models.Money `json:"price_amount"`
	TaxID       *uint        `json:"tax_id"`
	IsActive    *bool        `json:"is_active"`
	SortOrder   int          `json:"sort_order"`
}

func (r *ItemUpsertRequest) toInput() service.CreateItemInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.CreateItemInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Barcode:     r.Barcode,
		QRCode:      r.QRCode,
		Unit:        r.Unit,
		PriceAmount: r.PriceAmount,
		TaxID:       r.TaxID,
		IsActive:    isActive,
		SortOrder:   r.SortOrder,
	}
}

// GetItems 获取商品列表
func (h *Handler) GetItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid category_id", err)
			return
		}
		categoryID = uint(parsed)
	}

	items, total, err := h.ItemService.List(repository.ItemListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     c.Query("search"),
		Barcode:    c.Query("barcode"),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "item list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, items, pagination)
}

// GetItem 获取商品详情
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	item, err := h.ItemService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			respondError(c, response.CodeNotFound, "item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "item fetch failed", err)
		return
	}
	response.Success(c, item)
}

// CreateItem 创建商品
func (h *Handler) CreateItem(c *gin.Context) {
	var req ItemUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.ItemService.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemInvalid):
			respondError(c, response.CodeBadRequest, "item payload invalid", nil)
		case errors.Is(err, service.ErrItemCodeExclusive):
			respondError(c, response.CodeBadRequest, "item may declare a barcode or a qr code, not both", nil)
		case errors.Is(err, service.ErrItemCodeConflict):
			respondError(c, response.CodeConflict, "item code already exists", nil)
		default:
			respondError(c, response.CodeInternal, "item create failed", err)
		}
		return
	}
	response.Success(c, item)
}

// UpdateItem 更新商品
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ItemUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.ItemService.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			respondError(c, response.CodeNotFound, "item not found", nil)
		case errors.Is(err, service.ErrItemInvalid):
			respondError(c, response.CodeBadRequest, "item payload invalid", nil)
		case errors.Is(err, service.ErrItemCodeExclusive):
			respondError(c, response.CodeBadRequest, "item may declare a barcode or a qr code, not both", nil)
		case errors.Is(err, service.ErrItemCodeConflict):
			respondError(c, response.CodeConflict, "item code already exists", nil)
		default:
			respondError(c, response.CodeInternal, "item update failed", err)
		}
		return
	}
	response.Success(c, item)
}

// DeleteItem 删除商品
func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ItemService.Delete(id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			respondError(c, response.CodeNotFound, "item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "item delete failed", err)
		return
	}
	response.Success(c, nil)
}

// ItemCategoryUpsertRequest 商品分类创建/更新请求
type ItemCategoryUpsertRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// GetItemCategories 获取商品分类列表
func (h *Handler) GetItemCategories(c *gin.Context) {
	categories, err := h.ItemCategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "item category list failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateItemCategory 创建商品分类
func (h *Handler) CreateItemCategory(c *gin.Context) {
	var req ItemCategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category, err := h.ItemCategoryService.Create(service.CreateItemCategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryInvalid) {
			respondError(c, response.CodeBadRequest, "category payload invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "item category create failed", err)
		return
	}
	response.Success(c, category)
}

// UpdateItemCategory 更新商品分类
func (h *Handler) UpdateItemCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ItemCategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category, err := h.ItemCategoryService.Update(id, service.CreateItemCategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "item category update failed", err)
		return
	}
	response.Success(c, category)
}

// DeleteItemCategory 删除商品分类
func (h *Handler) DeleteItemCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ItemCategoryService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeConflict, "category still referenced by items", nil)
		default:
			respondError(c, response.CodeInternal, "item category delete failed", err)
		}
		return
	}
	response.Success(c, nil)
}

// ItemPriceUpsertRequest 门店价格设置请求
type ItemPriceUpsertRequest struct {
	StoreID     uint         `json:"store_id" binding:"required"`
	PriceAmount models.Money `json:"price_amount"`
}

// SetItemPrice 设置商品的门店价格
func (h *Handler) SetItemPrice(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ItemPriceUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	price, err := h.ItemPriceService.Set(service.SetItemPriceInput{
		ItemID:      id,
		StoreID:     req.StoreID,
		PriceAmount: req.PriceAmount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			respondError(c, response.CodeNotFound, "item not found", nil)
		case errors.Is(err, service.ErrStoreNotFound):
			respondError(c, response.CodeNotFound, "store not found", nil)
		default:
			respondError(c, response.CodeInternal, "item price set failed", err)
		}
		return
	}
	response.Success(c, price)
}

// GetItemPrices 获取商品的门店价格列表
func (h *Handler) GetItemPrices(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	prices, err := h.ItemPriceService.ListByItem(id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			respondError(c, response.CodeNotFound, "item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "item price list failed", err)
		return
	}
	response.Success(c, prices)
}
