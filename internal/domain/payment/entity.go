package payment

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// 支付平台回调事件类型
// 设计说明：事件类型为平台侧字符串，这里只列出本系统消费的三种；
// 其余类型一律确认接收但不处理（避免平台重试风暴）
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
	EventRefundSucceeded  = "refund.succeeded"
)

// Event 支付回调事件记录（实体）
// 设计说明：
// 1. EventID为支付平台的全局事件ID，数据库UNIQUE索引保证同一事件至多处理一次
//    （平台会重复投递，去重是消费方的责任）
// 2. PayloadDigest存原始报文的sha256摘要，排查时可比对重投递报文是否被篡改
// 3. 记录与订单状态变更在同一数据库事务中写入，不存在"已生效未记录"的窗口
type Event struct {
	ID            uint
	EventID       string // 支付平台事件ID（唯一）
	Type          string // 事件类型
	OrderNo       string // 关联订单号
	PayloadDigest string // 原始报文sha256摘要（hex）
	ProcessedAt   time.Time
}

// NewEvent 创建事件记录（工厂方法）
// payload为webhook原始报文体
func NewEvent(eventID, eventType, orderNo string, payload []byte) *Event {
	digest := sha256.Sum256(payload)
	return &Event{
		EventID:       eventID,
		Type:          eventType,
		OrderNo:       orderNo,
		PayloadDigest: hex.EncodeToString(digest[:]),
		ProcessedAt:   time.Now(),
	}
}
