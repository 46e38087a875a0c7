package user

import (
	"context"
)

// Repository 用户仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 邮箱唯一性由数据库UNIQUE索引保证，重复时返回ErrEmailDuplicate
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新用户
	Update(ctx context.Context, user *User) error
}
