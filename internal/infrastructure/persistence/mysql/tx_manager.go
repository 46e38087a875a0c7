package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 设计说明：
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB（避免全局变量）
// 3. 支持嵌套事务（GORM自动使用Savepoint）
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn函数内的所有Repository操作都会在同一事务中执行；
// fn返回error时自动ROLLBACK，返回nil时自动COMMIT。
// context中已有事务时直接复用（调用方嵌套组合多个事务性操作的场景），
// 避免在外层事务持有行锁时另开新事务造成自我死锁
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value("tx").(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中，Repository的getDB方法会提取它
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}
