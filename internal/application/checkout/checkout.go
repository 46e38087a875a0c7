package checkout

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/gearstore/internal/domain/cart"
	"github.com/xiebiao/gearstore/internal/domain/inventory"
	"github.com/xiebiao/gearstore/internal/domain/order"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/logger"
	"github.com/xiebiao/gearstore/pkg/metrics"
	"github.com/xiebiao/gearstore/pkg/saga"
	"github.com/xiebiao/gearstore/pkg/tracing"
)

// Notifier 订单通知发布接口
// 结账只依赖这个最小接口，具体实现（MQ发布器）由infrastructure层提供
type Notifier interface {
	OrderCreated(ctx context.Context, o *order.Order) error
}

// UseCase 结账用例
// 设计说明：
// 1. 这是整个系统最核心的用例：购物车在Redis、订单和库存在MySQL，
//    没有任何单一事务能同时覆盖两个存储，一致性靠补偿流程保证
// 2. 步骤1-4是纯读/纯计算，失败或请求取消都不留任何痕迹
// 3. 步骤5之后的失败必须把系统带回可审计的状态（订单CANCELLED+原因），
//    不允许出现"订单挂着PENDING但没有对应库存扣减"的孤儿
// 4. 清购物车和发通知是尽力而为：订单已落库，它们失败不回滚结账
type UseCase struct {
	cartRepo  cart.Repository
	orderRepo order.Repository
	ledger    inventory.Ledger
	notifier  Notifier
}

// NewUseCase 创建结账用例
func NewUseCase(cartRepo cart.Repository, orderRepo order.Repository, ledger inventory.Ledger, notifier Notifier) *UseCase {
	return &UseCase{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		ledger:    ledger,
		notifier:  notifier,
	}
}

// Request 结账请求DTO
type Request struct {
	ShippingAddress string // 收货地址
	BillingAddress  string // 账单地址（空时用收货地址）
	PaymentMethod   string // 支付方式
	TaxAmount       int64  // 税费（分）
	ShippingAmount  int64  // 运费（分）
	DiscountAmount  int64  // 优惠金额（分）
	Notes           string // 买家备注
}

// sagaTimeout 结账补偿流程整体超时
const sagaTimeout = 30 * time.Second

// Execute 执行结账
// 步骤：
// 1. 读购物车（空购物车拒绝）
// 2. 校验请求载荷（地址、支付方式）
// 3. 库存可售校验（只读，无任何变更）
// 4. 计算金额（负总额拒绝）
// 5. 创建订单PENDING（补偿：取消订单）
// 6. 扣减库存（补偿：回补库存——幂等，重放安全）
// 7. 清空购物车（无补偿，失败仅记日志）
// 8. 发布订单创建事件（尽力而为）
func (uc *UseCase) Execute(ctx context.Context, userID uint, req Request) (*order.Order, error) {
	ctx, span := tracing.StartSpan(ctx, "checkout", "checkout.Execute")
	defer span.End()

	start := time.Now()
	o, err := uc.execute(ctx, userID, req)

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CheckoutsTotal, map[string]string{"result": result})
	metrics.ObserveHistogram(metrics.CheckoutDuration, time.Since(start).Seconds())

	return o, err
}

func (uc *UseCase) execute(ctx context.Context, userID uint, req Request) (*order.Order, error) {
	// 1. 读购物车
	c, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	// 2. 载荷校验（逐字段收集问题，一次性返回）
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 3. 库存可售校验（只读）
	// 说明：校验通过不代表扣减必然成功，并发窗口由步骤6的原子更新兜底；
	// 这里提前拦截可以避免为注定失败的请求创建订单
	items := toInventoryItems(c.Items)
	if err := uc.ledger.CheckAvailability(ctx, items); err != nil {
		return nil, err
	}

	// 4. 构建订单（金额计算与校验在工厂方法内完成）
	billingAddr := req.BillingAddress
	if billingAddr == "" {
		billingAddr = req.ShippingAddress
	}
	o, err := order.NewOrder(
		order.GenerateOrderNo(),
		userID,
		toOrderItems(c.Items),
		req.TaxAmount,
		req.ShippingAmount,
		req.DiscountAmount,
		req.ShippingAddress,
		billingAddr,
		req.PaymentMethod,
	)
	if err != nil {
		return nil, err
	}

	// 5-7. 订单创建+库存扣减+清购物车，失败反向补偿
	s := saga.NewSaga(sagaTimeout)

	s.AddStep("创建订单",
		func(ctx context.Context) error {
			return uc.orderRepo.Create(ctx, o)
		},
		func(ctx context.Context) error {
			// 库存扣减失败后的补偿：订单进入终态CANCELLED并记录原因，
			// 留下完整审计痕迹而不是删除订单
			if err := o.Cancel("库存扣减失败，自动取消"); err != nil {
				return err
			}
			return uc.orderRepo.Update(ctx, o)
		},
	)

	s.AddStep("扣减库存",
		func(ctx context.Context) error {
			return uc.ledger.Deduct(ctx, items, o.ID)
		},
		func(ctx context.Context) error {
			// 扣减整体失败时无需回补；这里的回补覆盖后续步骤失败的场景，
			// Restore按订单幂等，多余调用无副作用
			return uc.ledger.Restore(ctx, items, o.ID)
		},
	)

	s.AddStep("清空购物车",
		func(ctx context.Context) error {
			// 订单已落库，购物车清理失败不值得让结账失败；
			// 残留购物车由TTL过期兜底
			if err := uc.cartRepo.Clear(ctx, userID); err != nil {
				logger.L().Warn("清空购物车失败",
					zap.Uint("user_id", userID),
					zap.String("order_no", o.OrderNo),
					zap.Error(err))
			}
			return nil
		},
		nil,
	)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}

	// 8. 发布订单创建事件（尽力而为）
	if err := uc.notifier.OrderCreated(ctx, o); err != nil {
		logger.L().Warn("发布订单创建事件失败",
			zap.String("order_no", o.OrderNo),
			zap.Error(err))
	}

	return o, nil
}

// validateRequest 结账载荷校验
func validateRequest(req Request) error {
	var problems []string
	if strings.TrimSpace(req.ShippingAddress) == "" {
		problems = append(problems, "收货地址不能为空")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		problems = append(problems, "支付方式不能为空")
	}
	if req.TaxAmount < 0 || req.ShippingAmount < 0 || req.DiscountAmount < 0 {
		problems = append(problems, "金额参数不能为负数")
	}
	if len(problems) > 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, strings.Join(problems, "; "))
	}
	return nil
}

// toInventoryItems 购物车条目 → 库存操作条目
func toInventoryItems(items []cart.CartItem) []inventory.Item {
	result := make([]inventory.Item, len(items))
	for i, item := range items {
		result[i] = inventory.Item{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return result
}

// toOrderItems 购物车条目 → 订单明细快照
func toOrderItems(items []cart.CartItem) []order.OrderItem {
	result := make([]order.OrderItem, len(items))
	for i, item := range items {
		result[i] = order.OrderItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return result
}
