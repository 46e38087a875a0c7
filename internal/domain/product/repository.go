package product

import (
	"context"
)

// ListParams 商品列表查询参数
type ListParams struct {
	Page     int    // 页码（从1开始）
	PageSize int    // 每页数量
	Keyword  string // 关键词（匹配名称/品牌/SKU）
	Category string // 分类过滤
	SortBy   string // 排序字段（price/created_at）
	SortDesc bool   // 是否降序
}

// Repository 商品仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. Quantity的增减不走Update，统一由inventory.Ledger做原子条件更新
type Repository interface {
	// Create 创建商品
	Create(ctx context.Context, product *Product) error

	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindBySKU 根据SKU查找商品
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs 批量查找商品（结账前的可售校验用）
	FindByIDs(ctx context.Context, ids []uint) ([]*Product, error)

	// Update 更新商品基本信息（不含Quantity）
	Update(ctx context.Context, product *Product) error

	// List 分页查询商品列表
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)
}
