package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gearstore/internal/domain/cart"
	"github.com/xiebiao/gearstore/internal/domain/inventory"
	"github.com/xiebiao/gearstore/internal/domain/order"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// =========================================
// 内存Fake实现（不连真实存储）
// =========================================

type fakeCartRepo struct {
	carts     map[uint]*cart.Cart
	clearErr  error
	cleared   []uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*cart.Cart)}
}

func (f *fakeCartRepo) Get(_ context.Context, userID uint) (*cart.Cart, error) {
	if c, ok := f.carts[userID]; ok {
		return c, nil
	}
	return cart.NewCart(userID), nil
}

func (f *fakeCartRepo) Save(_ context.Context, c *cart.Cart) error {
	f.carts[c.UserID] = c
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, userID uint) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.carts, userID)
	f.cleared = append(f.cleared, userID)
	return nil
}

type fakeOrderRepo struct {
	orders    map[uint]*order.Order
	nextID    uint
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	o.ID = f.nextID
	f.nextID++
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) FindByOrderNo(_ context.Context, orderNo string) (*order.Order, error) {
	for _, o := range f.orders {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) ListByUserID(_ context.Context, _ uint, _, _ int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _ order.ListParams) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

// fakeLedger 内存库存台账
// 按(orderID, reason)记录幂等键，行为与MySQL实现一致
type fakeLedger struct {
	stock       map[uint]int
	applied     map[string]bool
	deductCalls int
	restoreCall int
	checkErr    error
	deductErr   error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		stock:   make(map[uint]int),
		applied: make(map[string]bool),
	}
}

func deductKey(orderID uint) string  { return fmt.Sprintf("%d:DEDUCT", orderID) }
func restoreKey(orderID uint) string { return fmt.Sprintf("%d:RESTORE", orderID) }

func (f *fakeLedger) CheckAvailability(_ context.Context, items []inventory.Item) error {
	if f.checkErr != nil {
		return f.checkErr
	}
	for _, item := range items {
		if f.stock[item.ProductID] < item.Quantity {
			return inventory.NewUnavailableError([]string{"库存不足"})
		}
	}
	return nil
}

func (f *fakeLedger) Deduct(_ context.Context, items []inventory.Item, orderID uint) error {
	f.deductCalls++
	if f.deductErr != nil {
		return f.deductErr
	}
	if f.applied[deductKey(orderID)] {
		return nil
	}
	for _, item := range items {
		if f.stock[item.ProductID] < item.Quantity {
			return inventory.ErrInsufficientStock
		}
	}
	for _, item := range items {
		f.stock[item.ProductID] -= item.Quantity
	}
	f.applied[deductKey(orderID)] = true
	return nil
}

func (f *fakeLedger) Restore(_ context.Context, items []inventory.Item, orderID uint) error {
	f.restoreCall++
	if f.applied[restoreKey(orderID)] {
		return nil
	}
	for _, item := range items {
		f.stock[item.ProductID] += item.Quantity
	}
	f.applied[restoreKey(orderID)] = true
	return nil
}

func (f *fakeLedger) ListAdjustments(_ context.Context, _ uint) ([]*inventory.Adjustment, error) {
	return nil, nil
}

type fakeNotifier struct {
	published []string
	err       error
}

func (f *fakeNotifier) OrderCreated(_ context.Context, o *order.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, o.OrderNo)
	return nil
}

// =========================================
// 测试
// =========================================

func setup() (*UseCase, *fakeCartRepo, *fakeOrderRepo, *fakeLedger, *fakeNotifier) {
	cartRepo := newFakeCartRepo()
	orderRepo := newFakeOrderRepo()
	ledger := newFakeLedger()
	notifier := &fakeNotifier{}
	uc := NewUseCase(cartRepo, orderRepo, ledger, notifier)
	return uc, cartRepo, orderRepo, ledger, notifier
}

func validRequest() Request {
	return Request{
		ShippingAddress: "上海市浦东新区张江路100号",
		PaymentMethod:   "card",
		TaxAmount:       100,
		ShippingAmount:  200,
	}
}

func seedCart(cartRepo *fakeCartRepo, ledger *fakeLedger, userID uint) {
	c := cart.NewCart(userID)
	_ = c.AddItem(cart.CartItem{ProductID: 1, SKU: "KB-001", Name: "机械键盘", Quantity: 2, Price: 1000})
	_ = c.AddItem(cart.CartItem{ProductID: 2, SKU: "MS-001", Name: "游戏鼠标", Quantity: 1, Price: 500})
	cartRepo.carts[userID] = c
	ledger.stock[1] = 10
	ledger.stock[2] = 10
}

// TestCheckoutSuccess 测试正常结账的金额计算与副作用
func TestCheckoutSuccess(t *testing.T) {
	uc, cartRepo, orderRepo, ledger, notifier := setup()
	seedCart(cartRepo, ledger, 1)

	o, err := uc.Execute(context.Background(), 1, validRequest())
	require.NoError(t, err)

	// 金额：1000*2+500*1=2500，+税100+运费200=2800
	assert.Equal(t, int64(2500), o.Subtotal)
	assert.Equal(t, int64(2800), o.Total)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.PaymentPending, o.PaymentStatus)

	// 订单已落库
	saved, err := orderRepo.FindByOrderNo(context.Background(), o.OrderNo)
	require.NoError(t, err)
	assert.Len(t, saved.Items, 2)

	// 库存已扣减
	assert.Equal(t, 8, ledger.stock[1])
	assert.Equal(t, 9, ledger.stock[2])

	// 购物车已清空
	assert.Contains(t, cartRepo.cleared, uint(1))

	// 通知已发布
	assert.Contains(t, notifier.published, o.OrderNo)
}

// TestCheckoutEmptyCart 测试空购物车拒绝结账
func TestCheckoutEmptyCart(t *testing.T) {
	uc, _, orderRepo, _, _ := setup()

	_, err := uc.Execute(context.Background(), 1, validRequest())
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.Empty(t, orderRepo.orders, "不应创建订单")
}

// TestCheckoutValidation 测试载荷校验
func TestCheckoutValidation(t *testing.T) {
	uc, cartRepo, orderRepo, ledger, _ := setup()
	seedCart(cartRepo, ledger, 1)

	req := validRequest()
	req.ShippingAddress = "  "
	req.PaymentMethod = ""

	_, err := uc.Execute(context.Background(), 1, req)
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	assert.Contains(t, appErr.Message, "收货地址")
	assert.Contains(t, appErr.Message, "支付方式")
	assert.Empty(t, orderRepo.orders)
}

// TestCheckoutInventoryUnavailable 测试库存不可售时无任何变更
func TestCheckoutInventoryUnavailable(t *testing.T) {
	uc, cartRepo, orderRepo, ledger, _ := setup()
	seedCart(cartRepo, ledger, 1)
	ledger.stock[1] = 0 // 键盘无货

	_, err := uc.Execute(context.Background(), 1, validRequest())
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInventoryUnavailable, appErr.Code)

	assert.Empty(t, orderRepo.orders, "校验失败不应创建订单")
	assert.Zero(t, ledger.deductCalls, "校验失败不应触发扣减")
	assert.NotContains(t, cartRepo.cleared, uint(1), "购物车应保留")
}

// TestCheckoutDeductFailureCancelsOrder 测试扣减失败后订单补偿为CANCELLED
// 这是结账流程最重要的不变量：订单和库存不在同一事务中，
// 扣减失败绝不能留下一个没有库存承诺的PENDING订单
func TestCheckoutDeductFailureCancelsOrder(t *testing.T) {
	uc, cartRepo, orderRepo, ledger, notifier := setup()
	seedCart(cartRepo, ledger, 1)
	// 可售校验通过但扣减失败（模拟并发抢库存：校验与扣减之间库存被抢走）
	ledger.deductErr = inventory.ErrInsufficientStock

	_, err := uc.Execute(context.Background(), 1, validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	// 订单存在但已被补偿为CANCELLED
	require.Len(t, orderRepo.orders, 1)
	for _, o := range orderRepo.orders {
		assert.Equal(t, order.StatusCancelled, o.Status)
		assert.NotEmpty(t, o.CancelReason)
	}

	assert.Empty(t, notifier.published, "失败的结账不应发通知")
	assert.NotContains(t, cartRepo.cleared, uint(1), "失败的结账不应清购物车")
}

// TestCheckoutNegativeTotal 测试负总额拒绝
func TestCheckoutNegativeTotal(t *testing.T) {
	uc, cartRepo, orderRepo, ledger, _ := setup()
	seedCart(cartRepo, ledger, 1)

	req := validRequest()
	req.TaxAmount = 0
	req.ShippingAmount = 0
	req.DiscountAmount = 99999 // 优惠超过小计

	_, err := uc.Execute(context.Background(), 1, req)
	assert.ErrorIs(t, err, order.ErrInvalidTotal)
	assert.Empty(t, orderRepo.orders)
	assert.Zero(t, ledger.deductCalls)
}

// TestCheckoutCartClearFailureIsNotFatal 测试清购物车失败不影响结账结果
func TestCheckoutCartClearFailureIsNotFatal(t *testing.T) {
	uc, cartRepo, _, ledger, notifier := setup()
	seedCart(cartRepo, ledger, 1)
	cartRepo.clearErr = errors.New("redis connection refused")

	o, err := uc.Execute(context.Background(), 1, validRequest())
	require.NoError(t, err, "订单已落库，清购物车失败不应让结账失败")
	assert.Equal(t, 8, ledger.stock[1], "库存扣减应保留")
	assert.Contains(t, notifier.published, o.OrderNo)
}

// TestCheckoutNotifyFailureIsNotFatal 测试通知失败不影响结账结果
func TestCheckoutNotifyFailureIsNotFatal(t *testing.T) {
	uc, cartRepo, orderRepo, ledger, notifier := setup()
	seedCart(cartRepo, ledger, 1)
	notifier.err = errors.New("mq unreachable")

	o, err := uc.Execute(context.Background(), 1, validRequest())
	require.NoError(t, err)

	saved, err := orderRepo.FindByOrderNo(context.Background(), o.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, saved.Status, "订单不受通知失败影响")
}

// TestCheckoutBillingAddressDefaults 测试账单地址缺省为收货地址
func TestCheckoutBillingAddressDefaults(t *testing.T) {
	uc, cartRepo, _, ledger, _ := setup()
	seedCart(cartRepo, ledger, 1)

	o, err := uc.Execute(context.Background(), 1, validRequest())
	require.NoError(t, err)
	assert.Equal(t, o.ShippingAddress, o.BillingAddress)
}
