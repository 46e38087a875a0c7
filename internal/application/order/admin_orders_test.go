package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gearstore/internal/domain/inventory"
	"github.com/xiebiao/gearstore/internal/domain/order"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

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
		cp := *o
		return &cp, nil
	}
	return nil, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := f.orders[o.OrderNo]; !ok {
		return order.ErrOrderNotFound
	}
	cp := *o
	f.orders[o.OrderNo] = &cp
	return nil
}

func (f *fakeOrderRepo) ListByUserID(_ context.Context, userID uint, _, _ int) ([]*order.Order, int64, error) {
	var result []*order.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeOrderRepo) List(_ context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	var result []*order.Order
	for _, o := range f.orders {
		if params.Status != 0 && o.Status != params.Status {
			continue
		}
		result = append(result, o)
	}
	return result, int64(len(result)), nil
}

type fakeLedger struct {
	adjustments []*inventory.Adjustment
}

func (f *fakeLedger) CheckAvailability(_ context.Context, _ []inventory.Item) error { return nil }

func (f *fakeLedger) Deduct(_ context.Context, _ []inventory.Item, _ uint) error { return nil }

func (f *fakeLedger) Restore(_ context.Context, _ []inventory.Item, _ uint) error { return nil }

func (f *fakeLedger) ListAdjustments(_ context.Context, _ uint) ([]*inventory.Adjustment, error) {
	return f.adjustments, nil
}

func seedConfirmedOrder(t *testing.T, repo *fakeOrderRepo, orderNo string, userID uint) {
	t.Helper()
	items := []order.OrderItem{{ProductID: 1, SKU: "KB-001", Name: "机械键盘", Quantity: 1, Price: 29900}}
	o, err := order.NewOrder(orderNo, userID, items, 0, 0, 0, "addr", "addr", "card")
	require.NoError(t, err)
	require.NoError(t, o.MarkPaid("pay_1"))
	require.NoError(t, repo.Create(context.Background(), o))
}

// TestAdminTransition 测试管理端流转
func TestAdminTransition(t *testing.T) {
	t.Run("正常发货流程", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedConfirmedOrder(t, repo, "GG001", 1)
		uc := NewAdminOrdersUseCase(repo, &fakeLedger{})

		_, err := uc.Transition(context.Background(), "GG001", TransitionRequest{Status: "PROCESSING"})
		require.NoError(t, err)

		detail, err := uc.Transition(context.Background(), "GG001", TransitionRequest{
			Status:         "SHIPPED",
			TrackingNumber: "SF123456789",
		})
		require.NoError(t, err)
		assert.Equal(t, "SHIPPED", detail.Status)
		assert.Equal(t, "SF123456789", detail.TrackingNumber)
	})

	t.Run("非法流转被状态机拒绝", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedConfirmedOrder(t, repo, "GG001", 1)
		uc := NewAdminOrdersUseCase(repo, &fakeLedger{})

		// CONFIRMED → DELIVERED 跳级
		_, err := uc.Transition(context.Background(), "GG001", TransitionRequest{Status: "DELIVERED"})
		assert.ErrorIs(t, err, order.ErrInvalidTransition)

		// 订单未被改动
		o, _ := repo.FindByOrderNo(context.Background(), "GG001")
		assert.Equal(t, order.StatusConfirmed, o.Status)
	})

	t.Run("未知状态名报参数错误", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedConfirmedOrder(t, repo, "GG001", 1)
		uc := NewAdminOrdersUseCase(repo, &fakeLedger{})

		_, err := uc.Transition(context.Background(), "GG001", TransitionRequest{Status: "SHIPPING"})
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	})

	t.Run("空请求拒绝", func(t *testing.T) {
		repo := newFakeOrderRepo()
		uc := NewAdminOrdersUseCase(repo, &fakeLedger{})

		_, err := uc.Transition(context.Background(), "GG001", TransitionRequest{})
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	})

	t.Run("订单不存在", func(t *testing.T) {
		repo := newFakeOrderRepo()
		uc := NewAdminOrdersUseCase(repo, &fakeLedger{})

		_, err := uc.Transition(context.Background(), "GG404", TransitionRequest{Status: "PROCESSING"})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

// TestAdminAdjustments 测试管理端查询库存台账
func TestAdminAdjustments(t *testing.T) {
	t.Run("返回台账明细", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedConfirmedOrder(t, repo, "GG001", 1)
		ledger := &fakeLedger{adjustments: []*inventory.Adjustment{
			{ProductID: 1, Delta: -1, Before: 5, After: 4, Reason: inventory.ReasonDeductOnOrder},
			{ProductID: 1, Delta: 1, Before: 4, After: 5, Reason: inventory.ReasonRestoreOnRefund},
		}}
		uc := NewAdminOrdersUseCase(repo, ledger)

		infos, err := uc.Adjustments(context.Background(), "GG001")
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "DEDUCT_ON_ORDER", infos[0].Reason)
		assert.Equal(t, -1, infos[0].Delta)
		assert.Equal(t, "RESTORE_ON_REFUND", infos[1].Reason)
		assert.Equal(t, 5, infos[1].After)
	})

	t.Run("订单不存在", func(t *testing.T) {
		uc := NewAdminOrdersUseCase(newFakeOrderRepo(), &fakeLedger{})

		_, err := uc.Adjustments(context.Background(), "GG404")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

// TestGetOrderOwnership 测试买家查询订单的归属校验
func TestGetOrderOwnership(t *testing.T) {
	repo := newFakeOrderRepo()
	seedConfirmedOrder(t, repo, "GG001", 1)
	uc := NewListOrdersUseCase(repo)

	t.Run("本人可查", func(t *testing.T) {
		detail, err := uc.Get(context.Background(), 1, "GG001")
		require.NoError(t, err)
		assert.Equal(t, "GG001", detail.OrderNo)
		assert.Equal(t, "299.00", detail.TotalYuan)
	})

	t.Run("他人订单按不存在处理", func(t *testing.T) {
		_, err := uc.Get(context.Background(), 2, "GG001")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}
