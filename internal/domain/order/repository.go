package order

import (
	"context"
)

// ListParams 管理端订单列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Status   Status // 0表示不过滤
	Keyword  string // 匹配订单号/收货地址
}

// Repository 订单仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 支持事务操作（通过context传递事务）
// 3. 订单和明细必须在同一事务中创建
type Repository interface {
	// Create 创建订单（包含订单明细）
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单（包含订单明细）
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// Update 更新订单（状态流转、回填支付单号/物流单号）
	Update(ctx context.Context, order *Order) error

	// ListByUserID 查询用户的订单列表（分页）
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// List 管理端订单列表（分页+状态过滤+关键词搜索）
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)
}
