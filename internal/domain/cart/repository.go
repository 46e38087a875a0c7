package cart

import (
	"context"
)

// Repository 购物车仓储接口（依赖倒置原则）
// 设计说明：
// 1. 购物车整体存储在Redis（非事务型存储），infrastructure层实现
// 2. Get对不存在的购物车返回空购物车而非错误（加购前无购物车是正常状态）
// 3. Clear幂等：清空不存在的购物车不报错
type Repository interface {
	// Get 读取用户购物车（不存在时返回空购物车）
	Get(ctx context.Context, userID uint) (*Cart, error)

	// Save 整体保存购物车
	Save(ctx context.Context, cart *Cart) error

	// Clear 清空用户购物车（幂等）
	Clear(ctx context.Context, userID uint) error
}
