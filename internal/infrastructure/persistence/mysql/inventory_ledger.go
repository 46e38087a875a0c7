package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xiebiao/gearstore/internal/domain/inventory"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/metrics"
)

// inventoryLedger 库存台账实现（MySQL）
// 设计说明：
// 1. 扣减/回补使用原子条件更新（UPDATE ... WHERE quantity + delta >= 0），
//    不做读-改-写，并发抢最后一件库存时由数据库保证只有一单成功
// 2. 幂等：台账表(order_id, product_id, reason)唯一索引，事务内先查后插，
//    并发重放撞索引时按"已生效"处理
// 3. 台账行与库存变更在同一事务中提交，不存在"扣了库存没记账"的窗口
type inventoryLedger struct {
	db        *gorm.DB
	txManager *TxManager
}

// NewInventoryLedger 创建库存台账
func NewInventoryLedger(db *gorm.DB, txManager *TxManager) inventory.Ledger {
	return &inventoryLedger{db: db, txManager: txManager}
}

// errAlreadyApplied 事务内部信号：本次变动已生效过，外层按成功处理
var errAlreadyApplied = errors.New("adjustment already applied")

// CheckAvailability 批量可售校验（只读，不加锁）
// 逐条目收集失败原因，一次性返回全部问题
func (l *inventoryLedger) CheckAvailability(ctx context.Context, items []inventory.Item) error {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return inventory.ErrInvalidQuantity
		}
		ids = append(ids, item.ProductID)
	}

	var models []ProductModel
	if err := l.getDB(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return apperrors.Wrap(err, "查询商品库存失败")
	}

	byID := make(map[uint]*ProductModel, len(models))
	for i := range models {
		byID[models[i].ID] = &models[i]
	}

	var details []string
	for _, item := range items {
		m, ok := byID[item.ProductID]
		if !ok {
			details = append(details, fmt.Sprintf("商品%d不存在", item.ProductID))
			continue
		}
		if m.TrackQuantity && m.Quantity < item.Quantity {
			details = append(details, fmt.Sprintf("商品%s库存不足(剩余%d,需要%d)", m.SKU, m.Quantity, item.Quantity))
		}
	}

	if len(details) > 0 {
		return inventory.NewUnavailableError(details)
	}
	return nil
}

// Deduct 扣减库存（幂等）
// 任一条目失败时整个事务回滚，不产生部分扣减
func (l *inventoryLedger) Deduct(ctx context.Context, items []inventory.Item, orderID uint) error {
	err := l.apply(ctx, items, orderID, inventory.ReasonDeductOnOrder, -1)
	if err == nil {
		metrics.IncCounterVec(metrics.InventoryAdjustmentsTotal, map[string]string{"reason": string(inventory.ReasonDeductOnOrder)})
	}
	return err
}

// Restore 回补库存（幂等）
func (l *inventoryLedger) Restore(ctx context.Context, items []inventory.Item, orderID uint) error {
	err := l.apply(ctx, items, orderID, inventory.ReasonRestoreOnRefund, 1)
	if err == nil {
		metrics.IncCounterVec(metrics.InventoryAdjustmentsTotal, map[string]string{"reason": string(inventory.ReasonRestoreOnRefund)})
	}
	return err
}

// apply 在单个事务中执行一批库存变动并记账
// sign为变动方向：扣减-1，回补+1
func (l *inventoryLedger) apply(ctx context.Context, items []inventory.Item, orderID uint, reason inventory.AdjustmentReason, sign int) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return inventory.ErrInvalidQuantity
		}
	}

	err := l.txManager.Transaction(ctx, func(txCtx context.Context) error {
		db := l.getDB(txCtx)

		// 1. 幂等检查：该订单该原因的台账已存在则直接生效
		var count int64
		if err := db.Model(&InventoryAdjustmentModel{}).
			Where("order_id = ? AND reason = ?", orderID, string(reason)).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询库存台账失败")
		}
		if count > 0 {
			return errAlreadyApplied
		}

		// 2. 逐条目变动库存并记账
		for _, item := range items {
			delta := sign * item.Quantity

			var m ProductModel
			if err := db.First(&m, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return inventory.ErrProductNotFound
				}
				return apperrors.Wrap(err, "查询商品失败")
			}

			// 未启用库存管控的商品不变动、不记账
			if !m.TrackQuantity {
				continue
			}

			// 原子条件更新：防止库存为负
			result := db.Model(&ProductModel{}).
				Where("id = ?", item.ProductID).
				Where("quantity + ? >= 0", delta).
				Update("quantity", gorm.Expr("quantity + ?", delta))
			if result.Error != nil {
				return apperrors.Wrap(result.Error, "更新库存失败")
			}
			if result.RowsAffected == 0 {
				// 商品存在（上面刚查过），未命中即库存不足
				return inventory.ErrInsufficientStock
			}

			// 读取变动后的数量（本事务持有行锁，读到的是自己写入的值）
			var after ProductModel
			if err := db.Select("quantity").First(&after, item.ProductID).Error; err != nil {
				return apperrors.Wrap(err, "查询变动后库存失败")
			}

			adjustment := &InventoryAdjustmentModel{
				ProductID: item.ProductID,
				OrderID:   orderID,
				Reason:    string(reason),
				Delta:     delta,
				Before:    after.Quantity - delta,
				After:     after.Quantity,
			}
			if err := db.Create(adjustment).Error; err != nil {
				if isDuplicateError(err) {
					// 并发重放撞唯一索引：对方事务已生效，本事务回滚
					return errAlreadyApplied
				}
				return apperrors.Wrap(err, "写入库存台账失败")
			}
		}

		return nil
	})

	if errors.Is(err, errAlreadyApplied) {
		return nil
	}
	return err
}

// ListAdjustments 查询订单关联的台账记录
func (l *inventoryLedger) ListAdjustments(ctx context.Context, orderID uint) ([]*inventory.Adjustment, error) {
	var models []InventoryAdjustmentModel
	err := l.getDB(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存台账失败")
	}

	adjustments := make([]*inventory.Adjustment, len(models))
	for i, m := range models {
		adjustments[i] = &inventory.Adjustment{
			ID:        m.ID,
			ProductID: m.ProductID,
			OrderID:   m.OrderID,
			Delta:     m.Delta,
			Before:    m.Before,
			After:     m.After,
			Reason:    inventory.AdjustmentReason(m.Reason),
			CreatedAt: m.CreatedAt,
		}
	}
	return adjustments, nil
}

// getDB 从context获取事务DB，如果没有则使用默认DB
func (l *inventoryLedger) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return l.db.WithContext(ctx)
}
