package order

import (
	"time"
)

// Status 订单状态
// 设计说明：
// 1. 使用int类型而非string（节省存储空间，便于索引）
// 2. 状态值1-7递增，Delivered/Cancelled/Refunded为终态
// 3. 所有状态变更必须经过TransitionTo，禁止直接赋值Status字段
type Status int

const (
	StatusPending    Status = 1 // 待支付
	StatusConfirmed  Status = 2 // 已确认（支付成功）
	StatusProcessing Status = 3 // 处理中（拣货打包）
	StatusShipped    Status = 4 // 已发货
	StatusDelivered  Status = 5 // 已送达（终态）
	StatusCancelled  Status = 6 // 已取消（终态）
	StatusRefunded   Status = 7 // 已退款（终态）
)

// String 实现Stringer接口（方便日志输出）
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusConfirmed:
		return "CONFIRMED"
	case StatusProcessing:
		return "PROCESSING"
	case StatusShipped:
		return "SHIPPED"
	case StatusDelivered:
		return "DELIVERED"
	case StatusCancelled:
		return "CANCELLED"
	case StatusRefunded:
		return "REFUNDED"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus 从字符串解析订单状态（管理端PATCH接口用）
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "PENDING":
		return StatusPending, true
	case "CONFIRMED":
		return StatusConfirmed, true
	case "PROCESSING":
		return StatusProcessing, true
	case "SHIPPED":
		return StatusShipped, true
	case "DELIVERED":
		return StatusDelivered, true
	case "CANCELLED":
		return StatusCancelled, true
	case "REFUNDED":
		return StatusRefunded, true
	default:
		return 0, false
	}
}

// IsTerminal 是否为终态（终态订单不再流转）
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// PaymentStatus 支付状态
// 设计说明：支付状态独立于订单状态跟踪，但二者需交叉校验：
// - PAID 要求订单状态至少为CONFIRMED
// - REFUNDED 要求订单状态为REFUNDED
type PaymentStatus int

const (
	PaymentPending  PaymentStatus = 1 // 待支付
	PaymentPaid     PaymentStatus = 2 // 已支付
	PaymentFailed   PaymentStatus = 3 // 支付失败
	PaymentRefunded PaymentStatus = 4 // 已退款
)

// String 实现Stringer接口
func (p PaymentStatus) String() string {
	switch p {
	case PaymentPending:
		return "PENDING"
	case PaymentPaid:
		return "PAID"
	case PaymentFailed:
		return "FAILED"
	case PaymentRefunded:
		return "REFUNDED"
	default:
		return "UNKNOWN"
	}
}

// ParsePaymentStatus 从字符串解析支付状态
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case "PENDING":
		return PaymentPending, true
	case "PAID":
		return PaymentPaid, true
	case "FAILED":
		return PaymentFailed, true
	case "REFUNDED":
		return PaymentRefunded, true
	default:
		return 0, false
	}
}

// transitions 订单状态机合法流转表
// PENDING → CONFIRMED/CANCELLED
// CONFIRMED → PROCESSING/CANCELLED/REFUNDED
// PROCESSING → SHIPPED
// SHIPPED → DELIVERED
// DELIVERED → REFUNDED（签收后退款）
// CANCELLED/REFUNDED → 无后续状态
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled, StatusRefunded},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// Order 订单实体（聚合根）
// 设计说明：
// 1. Order是聚合根，OrderItem是子实体
// 2. 明细为下单时的价格快照（复制而非引用），商品改价不影响历史订单
// 3. 金额字段冗余存储：Total = Subtotal + Tax + Shipping - Discount
// 4. 订单只创建、只流转，永不删除（审计要求）
type Order struct {
	ID              uint
	OrderNo         string // 订单号（业务主键，全局唯一）
	UserID          uint   // 买家用户ID
	Items           []OrderItem
	Subtotal        int64 // 商品小计（分）
	Tax             int64 // 税费（分）
	Shipping        int64 // 运费（分）
	Discount        int64 // 优惠金额（分）
	Total           int64 // 应付总额（分）
	Status          Status
	PaymentStatus   PaymentStatus
	PaymentID       string // 支付平台单号（发起支付后回填）
	TrackingNumber  string // 物流单号
	ShippingAddress string // 收货地址快照
	BillingAddress  string // 账单地址快照
	PaymentMethod   string // 支付方式
	CancelReason    string // 取消原因（补偿时记录）
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细项
// 设计说明：
// 1. 不是独立聚合根，必须通过Order访问
// 2. Price/SKU/Name为下单时刻的快照
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	SKU       string
	Name      string
	Quantity  int
	Price     int64 // 下单时的单价（分）
}

// NewOrder 创建新订单（工厂方法）
// 业务规则：
// 1. 明细不能为空
// 2. Subtotal = Σ(单价 × 数量)，由工厂计算，不信任外部传入
// 3. Total = Subtotal + Tax + Shipping - Discount，为负数时拒绝创建
// 4. 初始状态为PENDING/PENDING
func NewOrder(orderNo string, userID uint, items []OrderItem, tax, shipping, discount int64, shippingAddr, billingAddr, paymentMethod string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	var subtotal int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		subtotal += item.Price * int64(item.Quantity)
	}

	if tax < 0 || shipping < 0 || discount < 0 {
		return nil, ErrInvalidTotal
	}

	total := subtotal + tax + shipping - discount
	if total < 0 {
		return nil, ErrInvalidTotal
	}

	now := time.Now()
	return &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		Discount:        discount,
		Total:           total,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		ShippingAddress: shippingAddr,
		BillingAddress:  billingAddr,
		PaymentMethod:   paymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// CanTransitionTo 检查是否可以转换到目标状态
func (o *Order) CanTransitionTo(target Status) bool {
	allowed, exists := transitions[o.Status]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
// 非法流转返回ErrInvalidTransition且不改变任何字段
func (o *Order) TransitionTo(target Status) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// MarkPaid 支付成功（领域行为）
// 订单流转到CONFIRMED，支付状态置为PAID；二者在同一方法中变更，保证交叉约束
func (o *Order) MarkPaid(paymentID string) error {
	if err := o.TransitionTo(StatusConfirmed); err != nil {
		return err
	}
	o.PaymentStatus = PaymentPaid
	if paymentID != "" {
		o.PaymentID = paymentID
	}
	return nil
}

// MarkPaymentFailed 支付失败（领域行为）
// 仅标记支付状态，订单保持PENDING等待重试或人工取消
func (o *Order) MarkPaymentFailed(paymentID string) {
	o.PaymentStatus = PaymentFailed
	if paymentID != "" {
		o.PaymentID = paymentID
	}
	o.UpdatedAt = time.Now()
}

// MarkRefunded 退款完成（领域行为）
// 订单流转到REFUNDED，支付状态置为REFUNDED
func (o *Order) MarkRefunded() error {
	if err := o.TransitionTo(StatusRefunded); err != nil {
		return err
	}
	o.PaymentStatus = PaymentRefunded
	return nil
}

// Cancel 取消订单（领域行为）
// 用于结账补偿（库存扣减失败后回滚订单）和买家/管理员取消
func (o *Order) Cancel(reason string) error {
	if err := o.TransitionTo(StatusCancelled); err != nil {
		return err
	}
	o.CancelReason = reason
	return nil
}

// SetTrackingNumber 回填物流单号
func (o *Order) SetTrackingNumber(trackingNumber string) {
	o.TrackingNumber = trackingNumber
	o.UpdatedAt = time.Now()
}

// ValidatePaymentConsistency 订单状态与支付状态的交叉校验
// 约束：
// 1. PaymentStatus=PAID 要求订单状态不早于CONFIRMED（且未被取消）
// 2. PaymentStatus=REFUNDED 要求订单状态为REFUNDED
func (o *Order) ValidatePaymentConsistency() error {
	switch o.PaymentStatus {
	case PaymentPaid:
		if o.Status == StatusPending || o.Status == StatusCancelled {
			return ErrPaymentStatusConflict
		}
	case PaymentRefunded:
		if o.Status != StatusRefunded {
			return ErrPaymentStatusConflict
		}
	}
	return nil
}

// ApplyAdminTransition 管理端手工流转（领域行为）
// status/paymentStatus/trackingNumber均可选（零值表示不变更）；
// 变更后执行交叉校验，非法组合整体拒绝、不落任何字段
func (o *Order) ApplyAdminTransition(status Status, paymentStatus PaymentStatus, trackingNumber string) error {
	// 先在副本上演算，校验通过才落到实体上
	next := *o
	if status != 0 {
		if !next.CanTransitionTo(status) {
			return ErrInvalidTransition
		}
		next.Status = status
	}
	if paymentStatus != 0 {
		next.PaymentStatus = paymentStatus
	}
	if err := next.ValidatePaymentConsistency(); err != nil {
		return err
	}

	o.Status = next.Status
	o.PaymentStatus = next.PaymentStatus
	if trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
	o.UpdatedAt = time.Now()
	return nil
}
