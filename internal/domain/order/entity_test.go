package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: 1, SKU: "KB-001", Name: "机械键盘", Quantity: 2, Price: 1000},
		{ProductID: 2, SKU: "MS-001", Name: "游戏鼠标", Quantity: 1, Price: 500},
	}
}

// TestNewOrder 测试订单工厂方法的金额计算
func TestNewOrder(t *testing.T) {
	t.Run("小计与总额计算", func(t *testing.T) {
		// 1000*2 + 500*1 = 2500，加税100、运费200
		o, err := NewOrder("GG20260830000001", 1, testItems(), 100, 200, 0, "addr", "addr", "card")
		require.NoError(t, err)

		assert.Equal(t, int64(2500), o.Subtotal)
		assert.Equal(t, int64(2800), o.Total)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, PaymentPending, o.PaymentStatus)
	})

	t.Run("优惠导致总额为负时拒绝创建", func(t *testing.T) {
		_, err := NewOrder("GG20260830000002", 1, testItems(), 0, 0, 9999, "addr", "addr", "card")
		assert.ErrorIs(t, err, ErrInvalidTotal)
	})

	t.Run("负数税费拒绝创建", func(t *testing.T) {
		_, err := NewOrder("GG20260830000003", 1, testItems(), -1, 0, 0, "addr", "addr", "card")
		assert.ErrorIs(t, err, ErrInvalidTotal)
	})

	t.Run("空明细拒绝创建", func(t *testing.T) {
		_, err := NewOrder("GG20260830000004", 1, nil, 0, 0, 0, "addr", "addr", "card")
		assert.ErrorIs(t, err, ErrEmptyItems)
	})

	t.Run("明细数量为0拒绝创建", func(t *testing.T) {
		items := []OrderItem{{ProductID: 1, Quantity: 0, Price: 100}}
		_, err := NewOrder("GG20260830000005", 1, items, 0, 0, 0, "addr", "addr", "card")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

// TestStatusTransitions 测试订单状态机流转表
func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusConfirmed, StatusProcessing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusRefunded, true},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusRefunded, false},
		{StatusDelivered, StatusRefunded, true},
		{StatusDelivered, StatusProcessing, false}, // 已送达不能回退
		{StatusCancelled, StatusConfirmed, false},  // 终态不再流转
		{StatusRefunded, StatusPending, false},
	}

	for _, c := range cases {
		name := c.from.String() + "to" + c.to.String()
		t.Run(name, func(t *testing.T) {
			o := &Order{Status: c.from}
			err := o.TransitionTo(c.to)
			if c.allowed {
				assert.NoError(t, err)
				assert.Equal(t, c.to, o.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, c.from, o.Status, "非法流转不应改变状态")
			}
		})
	}
}

// TestPaymentBehaviors 测试支付相关领域行为
func TestPaymentBehaviors(t *testing.T) {
	t.Run("支付成功同时推进订单与支付状态", func(t *testing.T) {
		o, err := NewOrder("GG20260830100001", 1, testItems(), 0, 0, 0, "addr", "addr", "card")
		require.NoError(t, err)

		require.NoError(t, o.MarkPaid("pay_123"))
		assert.Equal(t, StatusConfirmed, o.Status)
		assert.Equal(t, PaymentPaid, o.PaymentStatus)
		assert.Equal(t, "pay_123", o.PaymentID)
		assert.NoError(t, o.ValidatePaymentConsistency())
	})

	t.Run("已取消订单不能标记支付成功", func(t *testing.T) {
		o, err := NewOrder("GG20260830100002", 1, testItems(), 0, 0, 0, "addr", "addr", "card")
		require.NoError(t, err)
		require.NoError(t, o.Cancel("库存不足"))

		assert.ErrorIs(t, o.MarkPaid("pay_456"), ErrInvalidTransition)
		assert.Equal(t, PaymentPending, o.PaymentStatus, "失败的流转不应污染支付状态")
	})

	t.Run("支付失败仅标记支付状态", func(t *testing.T) {
		o, err := NewOrder("GG20260830100003", 1, testItems(), 0, 0, 0, "addr", "addr", "card")
		require.NoError(t, err)

		o.MarkPaymentFailed("pay_789")
		assert.Equal(t, StatusPending, o.Status, "订单保持待支付")
		assert.Equal(t, PaymentFailed, o.PaymentStatus)
	})

	t.Run("退款推进到终态", func(t *testing.T) {
		o, err := NewOrder("GG20260830100004", 1, testItems(), 0, 0, 0, "addr", "addr", "card")
		require.NoError(t, err)
		require.NoError(t, o.MarkPaid(""))

		require.NoError(t, o.MarkRefunded())
		assert.Equal(t, StatusRefunded, o.Status)
		assert.Equal(t, PaymentRefunded, o.PaymentStatus)
		assert.NoError(t, o.ValidatePaymentConsistency())
	})
}

// TestApplyAdminTransition 测试管理端手工流转的交叉校验
func TestApplyAdminTransition(t *testing.T) {
	confirmedOrder := func(t *testing.T) *Order {
		o, err := NewOrder("GG20260830200001", 1, testItems(), 0, 0, 0, "addr", "addr", "card")
		require.NoError(t, err)
		require.NoError(t, o.MarkPaid("pay_admin"))
		return o
	}

	t.Run("正常流转并回填物流单号", func(t *testing.T) {
		o := confirmedOrder(t)
		require.NoError(t, o.ApplyAdminTransition(StatusProcessing, 0, ""))
		require.NoError(t, o.ApplyAdminTransition(StatusShipped, 0, "SF123456"))

		assert.Equal(t, StatusShipped, o.Status)
		assert.Equal(t, "SF123456", o.TrackingNumber)
		assert.Equal(t, PaymentPaid, o.PaymentStatus, "未指定支付状态时保持不变")
	})

	t.Run("非法流转整体拒绝", func(t *testing.T) {
		o := confirmedOrder(t)
		err := o.ApplyAdminTransition(StatusDelivered, 0, "SF999")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, StatusConfirmed, o.Status)
		assert.Empty(t, o.TrackingNumber, "拒绝时不应落任何字段")
	})

	t.Run("支付状态与订单状态冲突时拒绝", func(t *testing.T) {
		// 仅把支付状态改成REFUNDED而订单不是REFUNDED，违反交叉约束
		o := confirmedOrder(t)
		err := o.ApplyAdminTransition(0, PaymentRefunded, "")
		assert.ErrorIs(t, err, ErrPaymentStatusConflict)
		assert.Equal(t, PaymentPaid, o.PaymentStatus)
	})

	t.Run("取消已支付订单需同时校验支付状态", func(t *testing.T) {
		o := confirmedOrder(t)
		// CONFIRMED→CANCELLED是合法流转，但PAID+CANCELLED违反交叉约束
		err := o.ApplyAdminTransition(StatusCancelled, 0, "")
		assert.ErrorIs(t, err, ErrPaymentStatusConflict)
	})
}

// TestGenerateOrderNo 测试订单号格式
func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo()
	assert.True(t, strings.HasPrefix(no, "GG"))
	assert.Len(t, no, 22, "GG+14位时间戳+6位随机数")

	// 简单的唯一性冒烟检查
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := GenerateOrderNo()
		assert.False(t, seen[n], "订单号短期内不应重复")
		seen[n] = true
	}
}
