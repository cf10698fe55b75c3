// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"errors"

	"otisium-api/internal/domain/entity"
)

// ErrEmailTaken 邮箱已被注册
var ErrEmailTaken = errors.New("email already registered")

// UserRepository 用户仓储接口
// 未找到记录时 Get* 返回 (nil, nil)
type UserRepository interface {
	// Create 创建用户，邮箱重复时返回 ErrEmailTaken
	Create(ctx context.Context, user *entity.User) error

	// GetByID 根据 ID 获取用户
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update 更新用户
	Update(ctx context.Context, user *entity.User) error

	// ExistsByEmail 检查邮箱是否存在
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
