package inventory

import (
	"context"
)

// Ledger 库存台账接口（依赖倒置原则）
// 设计说明：
// 1. 商品Quantity的唯一变更入口，业务代码不允许直接UPDATE商品库存
// 2. Deduct/Restore以订单为幂等单位：同一orderID重复调用只生效一次
//    （崩溃后重放、webhook重投递都依赖这一点）
// 3. 扣减必须用存储层的原子条件更新实现（decrement only if结果>=0），
//    不允许读-改-写，否则并发结账会把最后一件库存卖给两个人
// 4. 未启用库存管控（TrackQuantity=false）的商品直接跳过，不落台账
type Ledger interface {
	// CheckAvailability 批量可售校验（只读，不加锁）
	// 全部满足时返回nil；否则返回含逐条目明细的库存校验失败错误。
	// 说明：校验通过不代表扣减一定成功，并发窗口由Deduct的原子更新兜底
	CheckAvailability(ctx context.Context, items []Item) error

	// Deduct 扣减库存（幂等，幂等键(orderID, DEDUCT_ON_ORDER)）
	// 任一条目库存不足时整体失败并回滚，不产生部分扣减
	Deduct(ctx context.Context, items []Item, orderID uint) error

	// Restore 回补库存（幂等，幂等键(orderID, RESTORE_ON_REFUND)）
	Restore(ctx context.Context, items []Item, orderID uint) error

	// ListAdjustments 查询订单关联的台账记录（审计/排查用）
	ListAdjustments(ctx context.Context, orderID uint) ([]*Adjustment, error)
}
