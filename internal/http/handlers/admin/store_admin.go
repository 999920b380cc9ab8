package admin

import (
	"errors"
	"strconv"

	"github.com/sweethub-erp/internal/http/response"
	"github.com/sweethub-erp/internal/repository"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
)

// StoreUpsertRequest 门店创建/更新请求
type StoreUpsertRequest struct {
	Code       string `json:"code" binding:"required"`
	Name       string `json:"name" binding:"required"`
	CategoryID *uint  `json:"category_id"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	SortOrder  int    `json:"sort_order"`
}

// GetStores 获取门店列表
func (h *Handler) GetStores(c *gin.Context) {
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

	stores, total, err := h.StoreService.List(repository.StoreListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Status:     c.Query("status"),
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "store list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, stores, pagination)
}

// GetStore 获取门店详情
func (h *Handler) GetStore(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	store, err := h.StoreService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, response.CodeNotFound, "store not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "store fetch failed", err)
		return
	}
	response.Success(c, store)
}

// CreateStore 创建门店
func (h *Handler) CreateStore(c *gin.Context) {
	var req StoreUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	store, err := h.StoreService.Create(service.CreateStoreInput{
		Code:       req.Code,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Address:    req.Address,
		Phone:      req.Phone,
		Status:     req.Status,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreInvalid):
			respondError(c, response.CodeBadRequest, "store payload invalid", nil)
		case errors.Is(err, service.ErrStoreCodeExists):
			respondError(c, response.CodeConflict, "store code already exists", nil)
		default:
			respondError(c, response.CodeInternal, "store create failed", err)
		}
		return
	}
	response.Success(c, store)
}

// UpdateStore 更新门店
func (h *Handler) UpdateStore(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req StoreUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	store, err := h.StoreService.Update(id, service.CreateStoreInput{
		Code:       req.Code,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Address:    req.Address,
		Phone:      req.Phone,
		Status:     req.Status,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			respondError(c, response.CodeNotFound, "store not found", nil)
		case errors.Is(err, service.ErrStoreCodeExists):
			respondError(c, response.CodeConflict, "store code already exists", nil)
		default:
			respondError(c, response.CodeInternal, "store update failed", err)
		}
		return
	}
	response.Success(c, store)
}

// DeleteStore 删除门店
func (h *Handler) DeleteStore(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.StoreService.Delete(id); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, response.CodeNotFound, "store not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "store delete failed", err)
		return
	}
	response.Success(c, nil)
}

// StoreCategoryUpsertRequest 门店分类创建/更新请求
type StoreCategoryUpsertRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// GetStoreCategories 获取门店分类列表
func (h *Handler) GetStoreCategories(c *gin.Context) {
	categories, err := h.StoreCategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "store category list failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateStoreCategory 创建门店分类
func (h *Handler) CreateStoreCategory(c *gin.Context) {
	var req StoreCategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category, err := h.StoreCategoryService.Create(service.CreateStoreCategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryInvalid) {
			respondError(c, response.CodeBadRequest, "category payload invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "store category create failed", err)
		return
	}
	response.Success(c, category)
}

// UpdateStoreCategory 更新门店分类
func (h *Handler) UpdateStoreCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req StoreCategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category, err := h.StoreCategoryService.Update(id, service.CreateStoreCategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "store category update failed", err)
		return
	}
	response.Success(c, category)
}

// DeleteStoreCategory 删除门店分类
func (h *Handler) DeleteStoreCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.StoreCategoryService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeConflict, "category still referenced by stores", nil)
		default:
			respondError(c, response.CodeInternal, "store category delete failed", err)
		}
		return
	}
	response.Success(c, nil)
}
