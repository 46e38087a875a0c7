package payment

import (
	"context"
)

// Repository 支付事件仓储接口（依赖倒置原则）
// 设计说明：
// 1. FindByEventID用于去重前置检查；Create依赖UNIQUE索引兜底并发写入
// 2. Create撞唯一索引时返回ErrDuplicateEvent，调用方视为"已处理"而非失败
type Repository interface {
	// FindByEventID 根据平台事件ID查找记录（不存在时返回nil, nil）
	FindByEventID(ctx context.Context, eventID string) (*Event, error)

	// Create 写入事件记录（须在与状态变更相同的事务中调用）
	Create(ctx context.Context, event *Event) error
}
