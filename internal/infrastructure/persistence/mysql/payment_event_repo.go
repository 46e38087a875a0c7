package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gearstore/internal/domain/payment"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// paymentEventRepository 支付事件仓储实现（MySQL）
// 设计说明：
// 1. FindByEventID用于去重前置检查，不存在时返回nil而非错误
// 2. Create依赖EventID唯一索引兜底并发写入，撞索引返回ErrDuplicateEvent
// 3. Create必须在与订单状态变更相同的事务中调用（通过context传递事务）
type paymentEventRepository struct {
	db *gorm.DB
}

// NewPaymentEventRepository 创建支付事件仓储
func NewPaymentEventRepository(db *gorm.DB) payment.Repository {
	return &paymentEventRepository{db: db}
}

// FindByEventID 根据平台事件ID查找记录
func (r *paymentEventRepository) FindByEventID(ctx context.Context, eventID string) (*payment.Event, error) {
	var model PaymentEventModel
	err := r.getDB(ctx).Where("event_id = ?", eventID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 不存在是正常状态（首次投递）
		}
		return nil, apperrors.Wrap(err, "查询支付事件失败")
	}

	return &payment.Event{
		ID:            model.ID,
		EventID:       model.EventID,
		Type:          model.Type,
		OrderNo:       model.OrderNo,
		PayloadDigest: model.PayloadDigest,
		ProcessedAt:   model.ProcessedAt,
	}, nil
}

// Create 写入事件记录
func (r *paymentEventRepository) Create(ctx context.Context, e *payment.Event) error {
	model := &PaymentEventModel{
		EventID:       e.EventID,
		Type:          e.Type,
		OrderNo:       e.OrderNo,
		PayloadDigest: e.PayloadDigest,
		ProcessedAt:   e.ProcessedAt,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return payment.ErrDuplicateEvent
		}
		return apperrors.Wrap(err, "写入支付事件失败")
	}

	e.ID = model.ID
	return nil
}

// getDB 从context获取事务DB，如果没有则使用默认DB
func (r *paymentEventRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
