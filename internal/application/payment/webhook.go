package payment

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/xiebiao/gearstore/internal/domain/inventory"
	"github.com/xiebiao/gearstore/internal/domain/order"
	"github.com/xiebiao/gearstore/internal/domain/payment"
	"github.com/xiebiao/gearstore/pkg/logger"
	"github.com/xiebiao/gearstore/pkg/metrics"
)

// TxManager 事务管理接口
// 只依赖这一个方法，mysql.TxManager天然满足；测试用直通实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// WebhookSecret 支付回调签名密钥
// 独立类型便于依赖注入时与其它string配置区分
type WebhookSecret string

// WebhookUseCase 支付回调处理用例
// 设计说明：
// 1. 签名校验失败一律拒绝（fail closed），不产生任何状态变更
// 2. 去重：事件记录先于状态变更写入同一事务，重复投递撞EventID唯一索引
//    时整个事务回滚，效果等价于"从未处理第二次"
// 3. 未知事件类型确认接收但不处理（返回成功），避免支付平台重试风暴
type WebhookUseCase struct {
	secret    string
	eventRepo payment.Repository
	orderRepo order.Repository
	ledger    inventory.Ledger
	txManager TxManager
}

// NewWebhookUseCase 创建支付回调用例
func NewWebhookUseCase(secret WebhookSecret, eventRepo payment.Repository, orderRepo order.Repository, ledger inventory.Ledger, txManager TxManager) *WebhookUseCase {
	return &WebhookUseCase{
		secret:    string(secret),
		eventRepo: eventRepo,
		orderRepo: orderRepo,
		ledger:    ledger,
		txManager: txManager,
	}
}

// webhookPayload 支付平台回调报文
// 平台无关的最小字段集：事件ID、类型、关联订单号、平台支付单号
type webhookPayload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		OrderNo   string `json:"order_no"`
		PaymentID string `json:"payment_id"`
	} `json:"data"`
}

// HandleEvent 处理一次webhook投递
// 返回nil表示"已处理或已确认忽略"，平台不应重试；
// 返回错误时平台会按自己的策略重新投递，幂等键保证重放安全
func (uc *WebhookUseCase) HandleEvent(ctx context.Context, rawBody []byte, signatureHeader string) error {
	// 1. 签名校验（对原始报文体，fail closed）
	if err := payment.VerifySignature(uc.secret, rawBody, signatureHeader); err != nil {
		metrics.IncCounterVec(metrics.PaymentEventsTotal, map[string]string{"type": "unknown", "result": "invalid_signature"})
		return err
	}

	// 2. 解析报文
	var p webhookPayload
	if err := json.Unmarshal(rawBody, &p); err != nil {
		return payment.ErrInvalidPayload
	}
	if p.ID == "" || p.Type == "" {
		return payment.ErrInvalidPayload
	}

	// 3. 去重前置检查：已处理过的事件直接确认
	existing, err := uc.eventRepo.FindByEventID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.L().Info("重复投递的支付事件，跳过",
			zap.String("event_id", p.ID),
			zap.String("type", p.Type))
		metrics.IncCounterVec(metrics.PaymentEventsTotal, map[string]string{"type": p.Type, "result": "duplicate"})
		return nil
	}

	// 4. 按类型应用效果
	var result string
	switch p.Type {
	case payment.EventPaymentSucceeded:
		err = uc.applyPaymentSucceeded(ctx, &p, rawBody)
		result = "applied"
	case payment.EventPaymentFailed:
		err = uc.applyPaymentFailed(ctx, &p, rawBody)
		result = "applied"
	case payment.EventRefundSucceeded:
		err = uc.applyRefundSucceeded(ctx, &p, rawBody)
		result = "applied"
	default:
		// 未知类型：确认接收，只记日志
		logger.L().Info("未知支付事件类型，已忽略",
			zap.String("event_id", p.ID),
			zap.String("type", p.Type))
		metrics.IncCounterVec(metrics.PaymentEventsTotal, map[string]string{"type": p.Type, "result": "ignored"})
		return nil
	}

	// 并发投递撞唯一索引：对方已处理，确认接收
	if err == payment.ErrDuplicateEvent {
		metrics.IncCounterVec(metrics.PaymentEventsTotal, map[string]string{"type": p.Type, "result": "duplicate"})
		return nil
	}
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.PaymentEventsTotal, map[string]string{"type": p.Type, "result": result})
	return err
}

// applyPaymentSucceeded 支付成功：订单CONFIRMED + 支付状态PAID
func (uc *WebhookUseCase) applyPaymentSucceeded(ctx context.Context, p *webhookPayload, rawBody []byte) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 事件记录先写：并发重复投递在这里撞唯一索引，整个事务回滚
		if err := uc.eventRepo.Create(txCtx, payment.NewEvent(p.ID, p.Type, p.Data.OrderNo, rawBody)); err != nil {
			return err
		}

		o, err := uc.orderRepo.FindByOrderNo(txCtx, p.Data.OrderNo)
		if err != nil {
			return err
		}

		if err := o.MarkPaid(p.Data.PaymentID); err != nil {
			return err
		}
		return uc.orderRepo.Update(txCtx, o)
	})
}

// applyPaymentFailed 支付失败：仅标记支付状态，订单留在PENDING
func (uc *WebhookUseCase) applyPaymentFailed(ctx context.Context, p *webhookPayload, rawBody []byte) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.eventRepo.Create(txCtx, payment.NewEvent(p.ID, p.Type, p.Data.OrderNo, rawBody)); err != nil {
			return err
		}

		o, err := uc.orderRepo.FindByOrderNo(txCtx, p.Data.OrderNo)
		if err != nil {
			return err
		}

		o.MarkPaymentFailed(p.Data.PaymentID)
		return uc.orderRepo.Update(txCtx, o)
	})
}

// applyRefundSucceeded 退款成功：回补库存 + 订单REFUNDED
// 回补与状态变更在同一事务中；即使事务中途失败，重放时
// 事件记录的唯一索引和台账幂等键共同保证不会二次生效
func (uc *WebhookUseCase) applyRefundSucceeded(ctx context.Context, p *webhookPayload, rawBody []byte) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.eventRepo.Create(txCtx, payment.NewEvent(p.ID, p.Type, p.Data.OrderNo, rawBody)); err != nil {
			return err
		}

		o, err := uc.orderRepo.FindByOrderNo(txCtx, p.Data.OrderNo)
		if err != nil {
			return err
		}

		items := make([]inventory.Item, len(o.Items))
		for i, item := range o.Items {
			items[i] = inventory.Item{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		if err := uc.ledger.Restore(txCtx, items, o.ID); err != nil {
			return err
		}

		if err := o.MarkRefunded(); err != nil {
			return err
		}
		return uc.orderRepo.Update(txCtx, o)
	})
}
