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

// ProductUpsertRequest 批发商品创建/更新请求
type ProductUpsertRequest struct {
	SKU           string       `json:"sku" binding:"required"`
	Name          string       `json:"name" binding:"required"`
	PriceAmount   models.Money `json:"price_amount"`
	UnitsPerBlock int          `json:"units_per_block"`
	IsActive      *bool        `json:"is_active"`
	SortOrder     int          `json:"sort_order"`
}

func (r *ProductUpsertRequest) toInput() service.CreateProductInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.CreateProductInput{
		SKU:           r.SKU,
		Name:          r.Name,
		PriceAmount:   r.PriceAmount,
		UnitsPerBlock: r.UnitsPerBlock,
		IsActive:      isActive,
		SortOrder:     r.SortOrder,
	}
}

// GetProducts 获取批发商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 获取批发商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建批发商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductInvalid):
			respondError(c, response.CodeBadRequest, "product payload invalid", nil)
		case errors.Is(err, service.ErrProductSKUExists):
			respondError(c, response.CodeConflict, "product sku already exists", nil)
		default:
			respondError(c, response.CodeInternal, "product create failed", err)
		}
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新批发商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrProductSKUExists):
			respondError(c, response.CodeConflict, "product sku already exists", nil)
		default:
			respondError(c, response.CodeInternal, "product update failed", err)
		}
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除批发商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product delete failed", err)
		return
	}
	response.Success(c, nil)
}
