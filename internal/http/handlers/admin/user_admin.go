package admin

import (
	"errors"
	"strconv"

	"github.com/sweethub-erp/internal/http/response"
	"github.com/sweethub-erp/internal/repository"
	"github.com/sweethub-erp/internal/service"

	"github.com/gin-gonic/gin"
)

// UserUpsertRequest 操作员创建/更新请求
type UserUpsertRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	StoreID *uint  `json:"store_id"`
}

// GetUsers 获取操作员列表
func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var storeID uint
	if raw := c.Query("store_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid store_id", err)
			return
		}
		storeID = uint(parsed)
	}

	users, total, err := h.UserService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  storeID,
		Role:     c.Query("role"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "user list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, users, pagination)
}

// CreateUser 创建操作员
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	user, err := h.UserService.Create(service.CreateUserInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Role:    req.Role,
		StoreID: req.StoreID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserInvalid) {
			respondError(c, response.CodeBadRequest, "user payload invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "user create failed", err)
		return
	}
	response.Success(c, user)
}

// UpdateUser 更新操作员
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UserUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	user, err := h.UserService.Update(id, service.CreateUserInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Role:    req.Role,
		StoreID: req.StoreID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "user update failed", err)
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除操作员
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.UserService.Delete(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "user delete failed", err)
		return
	}
	response.Success(c, nil)
}
