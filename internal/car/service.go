package car

import (
	"context"
	"errors"
	"fmt"

	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
	"gorm.io/gorm"
)

// Store 服务层依赖的存储接口（Repo 实现），测试用内存替身。
type Store interface {
	List(ctx context.Context, f ListFilter) ([]Car, error)
	FindByID(ctx context.Context, id uint) (*Car, error)
	Create(ctx context.Context, c *Car) error
	Save(ctx context.Context, c *Car) error
	DeleteCascade(ctx context.Context, id uint) error
}

// Service 封装车队领域的核心用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Car, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	cars, err := s.store.List(ctx, f)
	if err != nil {
		return nil, apperror.NewDatabase("failed to list cars", err)
	}
	return cars, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Car, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	c, err := s.store.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFound(fmt.Sprintf("car not found with id=%d", id), err)
	}
	if err != nil {
		return nil, apperror.NewDatabase("failed to find car", err)
	}
	return c, nil
}

// Create 分配新 id（库级自增）并落库，返回带 id 的记录。
func (s *Service) Create(ctx context.Context, in CarInput) (*Car, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c := FromInput(in)
	if err := s.store.Create(ctx, &c); err != nil {
		return nil, apperror.NewDatabase("failed to create car", err)
	}
	return &c, nil
}

// Update 整体替换可变字段；id 不变。车辆不存在返回 NotFound。
func (s *Service) Update(ctx context.Context, id uint, in CarInput) (*Car, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(c)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, apperror.NewDatabase("failed to update car", err)
	}
	return c, nil
}

// Delete 级联删除车辆及其行程。重复删除返回 NotFound，不会变成别的错误。
func (s *Service) Delete(ctx context.Context, id uint) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("service not initialized")
	}
	err := s.store.DeleteCascade(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFound(fmt.Sprintf("car not found with id=%d", id), err)
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	if err != nil {
		return apperror.NewDatabase("failed to delete car", err)
	}
	return nil
}
