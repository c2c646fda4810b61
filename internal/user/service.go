package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
	"gorm.io/gorm"
)

// Store 服务层依赖的存储接口（Repo 实现），测试用内存替身。
type Store interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

type Service struct {
	store  Store
	hasher PasswordHasher
}

func NewService(store Store, hasher PasswordHasher) *Service {
	return &Service{store: store, hasher: hasher}
}

// Register 创建用户并散列密码；用户名重复返回 Conflict。
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if s == nil || s.store == nil || s.hasher == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if username == "" {
		return nil, apperror.NewValidation("username required", nil)
	}
	if password == "" {
		return nil, apperror.NewValidation("password required", nil)
	}

	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return nil, apperror.NewConflict("username already exists", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewDatabase("failed to check username", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := User{Username: username, PasswordHash: hash}
	if err := s.store.Create(ctx, &u); err != nil {
		return nil, apperror.NewDatabase("failed to create user", err)
	}
	return &u, nil
}

// SetPassword 重置指定用户的密码。
func (s *Service) SetPassword(ctx context.Context, id uint, password string) error {
	if s == nil || s.store == nil || s.hasher == nil {
		return fmt.Errorf("service not initialized")
	}
	if password == "" {
		return apperror.NewValidation("password required", nil)
	}

	u, err := s.store.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFound(fmt.Sprintf("user not found with id=%d", id), err)
	}
	if err != nil {
		return apperror.NewDatabase("failed to find user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperror.NewInternal("failed to hash password", err)
	}
	u.PasswordHash = hash
	if err := s.store.Save(ctx, u); err != nil {
		return apperror.NewDatabase("failed to update password", err)
	}
	return nil
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	u, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFound(fmt.Sprintf("user not found with username=%s", username), err)
	}
	if err != nil {
		return nil, apperror.NewDatabase("failed to find user", err)
	}
	return u, nil
}

// VerifyPassword 比对明文与存储散列（比较由散列库完成，抗时序）。
func (s *Service) VerifyPassword(u *User, plaintext string) bool {
	if s == nil || s.hasher == nil || u == nil {
		return false
	}
	return s.hasher.Verify(plaintext, u.PasswordHash)
}

// Authenticate 校验用户名密码。用户不存在与密码错误返回完全相同的错误，
// 调用方（及攻击者）无法据此区分两种失败。
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if s == nil || s.store == nil || s.hasher == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	u, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewAuth("invalid credentials")
	}
	if err != nil {
		return nil, apperror.NewDatabase("failed to find user", err)
	}
	if !s.VerifyPassword(u, password) {
		return nil, apperror.NewAuth("invalid credentials")
	}
	return u, nil
}
