package notification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/gearstore/internal/domain/order"
	"github.com/xiebiao/gearstore/internal/infrastructure/config"
	"github.com/xiebiao/gearstore/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/logger"
	"github.com/xiebiao/gearstore/pkg/mq"
)

// RoutingKeyOrderCreated 订单创建事件路由键
const RoutingKeyOrderCreated = "order.created"

// OrderCreatedEvent 订单创建事件
// 下游消费方（邮件通知、数据分析）订阅order.created路由键
type OrderCreatedEvent struct {
	OrderNo   string    `json:"order_no"`
	UserID    uint      `json:"user_id"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderPublisher 订单事件发布器
// 设计说明：
// 1. 发布经过熔断器：MQ不可用时快速失败，不让每次结账都等到连接超时
// 2. 通知是尽力而为：发布失败只记日志，订单已落库，不回滚结账
// 3. MQ未启用时publisher为nil，Publish直接跳过（本地开发不起MQ）
type OrderPublisher struct {
	publisher *mq.Publisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewOrderPublisher 创建订单事件发布器
// cfg.MQ.Enabled=false时返回空壳发布器，所有发布变为no-op
func NewOrderPublisher(cfg *config.Config) (*OrderPublisher, error) {
	breaker := circuitbreaker.NewCircuitBreaker("order-notification", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	if !cfg.MQ.Enabled {
		logger.L().Info("MQ未启用，订单事件通知降级为日志")
		return &OrderPublisher{breaker: breaker}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}

	return &OrderPublisher{
		publisher: publisher,
		breaker:   breaker,
	}, nil
}

// OrderCreated 发布订单创建事件（尽力而为）
// 调用方不应因返回错误而中断结账流程
func (p *OrderPublisher) OrderCreated(ctx context.Context, o *order.Order) error {
	event := OrderCreatedEvent{
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Total:     o.Total,
		ItemCount: len(o.Items),
		CreatedAt: o.CreatedAt,
	}

	if p.publisher == nil {
		logger.L().Info("订单创建事件（MQ未启用，仅记录）",
			zap.String("order_no", event.OrderNo),
			zap.Int64("total", event.Total))
		return nil
	}

	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(RoutingKeyOrderCreated, event)
	})
	if err != nil {
		if err == circuitbreaker.ErrOpenState {
			return apperrors.New(apperrors.ErrCodeMQError, "通知服务熔断中")
		}
		return apperrors.Wrap(err, "发布订单创建事件失败")
	}

	return nil
}

// Close 关闭底层MQ连接
func (p *OrderPublisher) Close() error {
	if p.publisher == nil {
		return nil
	}
	return p.publisher.Close()
}
