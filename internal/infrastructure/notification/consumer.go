package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/xiebiao/gearstore/internal/infrastructure/config"
	"github.com/xiebiao/gearstore/pkg/logger"
	"github.com/xiebiao/gearstore/pkg/mq"
)

// OrderEventConsumer 订单事件消费者
// 设计说明：
// 1. 订阅order.created路由键，触发买家确认通知（当前实现为结构化日志，
//    邮件/短信通道对接时替换handle内部逻辑即可）
// 2. 消费失败nack重回队列，由MQ负责重试
type OrderEventConsumer struct {
	consumer *mq.Consumer
}

// NewOrderEventConsumer 创建订单事件消费者
func NewOrderEventConsumer(cfg *config.Config) (*OrderEventConsumer, error) {
	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		cfg.MQ.Exchange,
		"topic",
		"order-notifications",
		[]string{RoutingKeyOrderCreated},
	)
	if err != nil {
		return nil, err
	}

	return &OrderEventConsumer{consumer: consumer}, nil
}

// Run 启动消费循环（阻塞直到ctx取消）
func (c *OrderEventConsumer) Run(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handle)
}

func (c *OrderEventConsumer) handle(body []byte) error {
	var event OrderCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// 格式非法的消息直接丢弃，重试也不会成功
		logger.L().Warn("订单事件格式非法，丢弃", zap.ByteString("body", body))
		return nil
	}

	logger.L().Info("发送订单确认通知",
		zap.String("order_no", event.OrderNo),
		zap.Uint("user_id", event.UserID),
		zap.Int64("total", event.Total))
	return nil
}

// Close 关闭底层MQ连接
func (c *OrderEventConsumer) Close() error {
	return c.consumer.Close()
}
