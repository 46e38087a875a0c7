package payment

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gearstore/internal/domain/inventory"
	"github.com/xiebiao/gearstore/internal/domain/order"
	"github.com/xiebiao/gearstore/internal/domain/payment"
)

const testSecret = "whsec_test"

// =========================================
// 内存Fake实现
// =========================================

type fakeEventRepo struct {
	events map[string]*payment.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*payment.Event)}
}

func (f *fakeEventRepo) FindByEventID(_ context.Context, eventID string) (*payment.Event, error) {
	if e, ok := f.events[eventID]; ok {
		return e, nil
	}
	return nil, nil
}

func (f *fakeEventRepo) Create(_ context.Context, e *payment.Event) error {
	if _, ok := f.events[e.EventID]; ok {
		return payment.ErrDuplicateEvent
	}
	f.events[e.EventID] = e
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*order.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	f.orders[o.OrderNo] = o
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, _ uint) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) FindByOrderNo(_ context.Context, orderNo string) (*order.Order, error) {
	if o, ok := f.orders[orderNo]; ok {
		return o, nil
	}
	return nil, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	f.orders[o.OrderNo] = o
	return nil
}

func (f *fakeOrderRepo) ListByUserID(_ context.Context, _ uint, _, _ int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _ order.ListParams) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

type fakeLedger struct {
	stock        map[uint]int
	restoredFor  map[uint]bool
	restoreCount int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{stock: make(map[uint]int), restoredFor: make(map[uint]bool)}
}

func (f *fakeLedger) CheckAvailability(_ context.Context, _ []inventory.Item) error { return nil }

func (f *fakeLedger) Deduct(_ context.Context, _ []inventory.Item, _ uint) error { return nil }

func (f *fakeLedger) Restore(_ context.Context, items []inventory.Item, orderID uint) error {
	f.restoreCount++
	if f.restoredFor[orderID] {
		return nil // 幂等
	}
	for _, item := range items {
		f.stock[item.ProductID] += item.Quantity
	}
	f.restoredFor[orderID] = true
	return nil
}

func (f *fakeLedger) ListAdjustments(_ context.Context, _ uint) ([]*inventory.Adjustment, error) {
	return nil, nil
}

// passthroughTx 直通事务管理器（测试用，不提供真实原子性）
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =========================================
// 辅助
// =========================================

func setup(t *testing.T) (*WebhookUseCase, *fakeEventRepo, *fakeOrderRepo, *fakeLedger) {
	t.Helper()
	eventRepo := newFakeEventRepo()
	orderRepo := newFakeOrderRepo()
	ledger := newFakeLedger()
	uc := NewWebhookUseCase(testSecret, eventRepo, orderRepo, ledger, passthroughTx{})
	return uc, eventRepo, orderRepo, ledger
}

func seedOrder(t *testing.T, repo *fakeOrderRepo, orderNo string) *order.Order {
	t.Helper()
	items := []order.OrderItem{
		{ProductID: 1, SKU: "KB-001", Name: "机械键盘", Quantity: 2, Price: 1000},
	}
	o, err := order.NewOrder(orderNo, 1, items, 0, 0, 0, "addr", "addr", "card")
	require.NoError(t, err)
	o.ID = 100
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

func signedEvent(t *testing.T, id, eventType, orderNo string) ([]byte, string) {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"id":   id,
		"type": eventType,
		"data": map[string]string{"order_no": orderNo, "payment_id": "pay_" + id},
	})
	require.NoError(t, err)
	return body, payment.Sign(testSecret, body)
}

// =========================================
// 测试
// =========================================

// TestWebhookPaymentSucceeded 测试支付成功事件推进订单状态
func TestWebhookPaymentSucceeded(t *testing.T) {
	uc, _, orderRepo, _ := setup(t)
	seedOrder(t, orderRepo, "GG001")

	body, sig := signedEvent(t, "evt_1", payment.EventPaymentSucceeded, "GG001")
	require.NoError(t, uc.HandleEvent(context.Background(), body, sig))

	o := orderRepo.orders["GG001"]
	assert.Equal(t, order.StatusConfirmed, o.Status)
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, "pay_evt_1", o.PaymentID)
}

// TestWebhookInvalidSignature 测试签名失败时不产生任何状态变更
func TestWebhookInvalidSignature(t *testing.T) {
	uc, eventRepo, orderRepo, _ := setup(t)
	seedOrder(t, orderRepo, "GG001")

	body, _ := signedEvent(t, "evt_1", payment.EventPaymentSucceeded, "GG001")
	err := uc.HandleEvent(context.Background(), body, "sha256=deadbeef")
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)

	assert.Equal(t, order.StatusPending, orderRepo.orders["GG001"].Status, "签名失败不应变更订单")
	assert.Empty(t, eventRepo.events, "签名失败不应记录事件")
}

// TestWebhookReplayOnce 测试同一事件ID重复投递只生效一次
func TestWebhookReplayOnce(t *testing.T) {
	uc, eventRepo, orderRepo, _ := setup(t)
	seedOrder(t, orderRepo, "GG001")

	body, sig := signedEvent(t, "evt_1", payment.EventPaymentSucceeded, "GG001")
	require.NoError(t, uc.HandleEvent(context.Background(), body, sig))

	// 第一次投递已把订单推到CONFIRMED；如果重放未被去重，
	// MarkPaid会因CONFIRMED→CONFIRMED非法流转而报错
	require.NoError(t, uc.HandleEvent(context.Background(), body, sig), "重复投递应静默确认")
	require.NoError(t, uc.HandleEvent(context.Background(), body, sig))

	assert.Len(t, eventRepo.events, 1)
	assert.Equal(t, order.StatusConfirmed, orderRepo.orders["GG001"].Status)
}

// TestWebhookRefundRestoresOnce 测试退款事件回补库存且重放只回补一次
func TestWebhookRefundRestoresOnce(t *testing.T) {
	uc, _, orderRepo, ledger := setup(t)
	o := seedOrder(t, orderRepo, "GG001")
	require.NoError(t, o.MarkPaid("pay_x"))

	body, sig := signedEvent(t, "evt_refund", payment.EventRefundSucceeded, "GG001")
	require.NoError(t, uc.HandleEvent(context.Background(), body, sig))

	assert.Equal(t, order.StatusRefunded, orderRepo.orders["GG001"].Status)
	assert.Equal(t, order.PaymentRefunded, orderRepo.orders["GG001"].PaymentStatus)
	assert.Equal(t, 2, ledger.stock[1], "退款应回补2件")

	// 重放：库存不能二次回补
	require.NoError(t, uc.HandleEvent(context.Background(), body, sig))
	assert.Equal(t, 2, ledger.stock[1], "重放不应重复回补")
}

// TestWebhookPaymentFailed 测试支付失败只标记支付状态
func TestWebhookPaymentFailed(t *testing.T) {
	uc, _, orderRepo, _ := setup(t)
	seedOrder(t, orderRepo, "GG001")

	body, sig := signedEvent(t, "evt_fail", payment.EventPaymentFailed, "GG001")
	require.NoError(t, uc.HandleEvent(context.Background(), body, sig))

	o := orderRepo.orders["GG001"]
	assert.Equal(t, order.StatusPending, o.Status, "订单留在待支付")
	assert.Equal(t, order.PaymentFailed, o.PaymentStatus)
}

// TestWebhookUnknownEventIgnored 测试未知事件类型确认接收不报错
func TestWebhookUnknownEventIgnored(t *testing.T) {
	uc, eventRepo, orderRepo, _ := setup(t)
	seedOrder(t, orderRepo, "GG001")

	body, sig := signedEvent(t, "evt_x", "dispute.created", "GG001")
	assert.NoError(t, uc.HandleEvent(context.Background(), body, sig), "未知类型不应报错（避免平台重试风暴）")

	assert.Equal(t, order.StatusPending, orderRepo.orders["GG001"].Status)
	assert.Empty(t, eventRepo.events)
}

// TestWebhookInvalidPayload 测试报文缺字段拒绝
func TestWebhookInvalidPayload(t *testing.T) {
	uc, _, _, _ := setup(t)

	body := []byte(`{"type":"payment.succeeded"}`) // 缺id
	sig := payment.Sign(testSecret, body)
	assert.ErrorIs(t, uc.HandleEvent(context.Background(), body, sig), payment.ErrInvalidPayload)

	body2 := []byte(`not-json`)
	sig2 := payment.Sign(testSecret, body2)
	assert.ErrorIs(t, uc.HandleEvent(context.Background(), body2, sig2), payment.ErrInvalidPayload)
}

// TestWebhookOrderNotFound 测试订单不存在时报错（平台会重试）
func TestWebhookOrderNotFound(t *testing.T) {
	uc, eventRepo, _, _ := setup(t)

	body, sig := signedEvent(t, "evt_1", payment.EventPaymentSucceeded, "GG404")
	err := uc.HandleEvent(context.Background(), body, sig)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	// 说明：直通事务不回滚，真实MySQL事务中事件记录会随事务回滚
	_ = eventRepo
}
