package inventory

import (
	"time"
)

// AdjustmentReason 库存变动原因
// 设计说明：
// 1. 使用string而非int，台账表直接可读（审计场景人工排查频繁）
// 2. (order_id, product_id, reason)三元组构成幂等键：
//    同一订单对同一商品的同一类变动只允许发生一次
type AdjustmentReason string

const (
	ReasonDeductOnOrder   AdjustmentReason = "DEDUCT_ON_ORDER"   // 下单扣减
	ReasonRestoreOnRefund AdjustmentReason = "RESTORE_ON_REFUND" // 退款回补
	ReasonManual          AdjustmentReason = "MANUAL"            // 人工调整
)

// Adjustment 库存变动台账（实体）
// 设计说明：
// 1. 只增不改：每次库存变动落一行，Before/After记录变动前后的数量快照
// 2. 数据库(order_id, product_id, reason)唯一索引保证幂等，
//    进程崩溃后重放扣减/回补不会二次生效
type Adjustment struct {
	ID        uint
	ProductID uint
	OrderID   uint
	Delta     int // 变动量（扣减为负，回补为正）
	Before    int // 变动前数量
	After     int // 变动后数量
	Reason    AdjustmentReason
	CreatedAt time.Time
}

// Item 库存操作条目（值对象）
// Ledger的三个操作均以它为输入
type Item struct {
	ProductID uint
	Quantity  int // 请求数量，必须>0
}
