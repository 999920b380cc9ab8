package service

import (
	"strings"

	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/repository"
)

// UserService 操作员业务服务
type UserService struct {
	repo repository.UserRepository
}

// NewUserService 创建操作员服务
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUserInput 创建/更新操作员输入
type CreateUserInput struct {
	Name    string
	Phone   string
	Role    string
	StoreID *uint
}

// List 查询操作员列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.repo.List(filter)
}

// Get 获取操作员详情
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create 创建操作员
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrUserInvalid
	}
	user := models.User{
		Name:    name,
		Phone:   strings.TrimSpace(input.Phone),
		Role:    strings.TrimSpace(input.Role),
		StoreID: input.StoreID,
	}
	if err := s.repo.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 更新操作员
func (s *UserService) Update(id uint, input CreateUserInput) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Role = strings.TrimSpace(input.Role)
	user.StoreID = input.StoreID
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete 删除操作员
func (s *UserService) Delete(id uint) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.repo.Delete(id)
}
