package service

import (
	"strings"

	"github.com/sweethub-erp/internal/constants"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// StoreService 门店业务服务
type StoreService struct {
	repo repository.StoreRepository
}

// NewStoreService 创建门店服务
func NewStoreService(repo repository.StoreRepository) *StoreService {
	return &StoreService{repo: repo}
}

// CreateStoreInput 创建/更新门店输入
type CreateStoreInput struct {
	Code       string
	Name       string
	CategoryID *uint
	Address    string
	Phone      string
	Status     string
	SortOrder  int
}

// List 查询门店列表
func (s *StoreService) List(filter repository.StoreListFilter) ([]models.Store, int64, error) {
	return s.repo.List(filter)
}

// Get 获取门店详情
func (s *StoreService) Get(id uint) (*models.Store, error) {
	store, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// Create 创建门店
func (s *StoreService) Create(input CreateStoreInput) (*models.Store, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, ErrStoreInvalid
	}
	count, err := s.repo.CountByCode(code, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStoreCodeExists
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.StoreStatusActive
	}

	store := models.Store{
		Code:       code,
		Name:       name,
		CategoryID: input.CategoryID,
		Address:    strings.TrimSpace(input.Address),
		Phone:      strings.TrimSpace(input.Phone),
		Status:     status,
		SortOrder:  input.SortOrder,
	}
	if err := s.repo.Create(&store); err != nil {
		return nil, err
	}
	return &store, nil
}

// Update 更新门店
func (s *StoreService) Update(id uint, input CreateStoreInput) (*models.Store, error) {
	store, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	code := strings.TrimSpace(input.Code)
	count, err := s.repo.CountByCode(code, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStoreCodeExists
	}

	store.Code = code
	store.Name = strings.TrimSpace(input.Name)
	store.CategoryID = input.CategoryID
	store.Address = strings.TrimSpace(input.Address)
	store.Phone = strings.TrimSpace(input.Phone)
	if status := strings.TrimSpace(input.Status); status != "" {
		store.Status = status
	}
	store.SortOrder = input.SortOrder

	if err := s.repo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Delete 删除门店
func (s *StoreService) Delete(id uint) error {
	store, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return ErrStoreNotFound
	}
	return s.repo.Delete(id)
}
