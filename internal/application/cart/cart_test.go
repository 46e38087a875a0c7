package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gearstore/internal/domain/cart"
	"github.com/xiebiao/gearstore/internal/domain/product"
)

// fakeCartRepo 内存购物车仓储
type fakeCartRepo struct {
	carts map[uint]*cart.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*cart.Cart)}
}

func (f *fakeCartRepo) Get(ctx context.Context, userID uint) (*cart.Cart, error) {
	if c, ok := f.carts[userID]; ok {
		return c, nil
	}
	return cart.NewCart(userID), nil
}

func (f *fakeCartRepo) Save(ctx context.Context, c *cart.Cart) error {
	f.carts[c.UserID] = c
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID uint) error {
	delete(f.carts, userID)
	return nil
}

// fakeProductRepo 内存商品仓储（只实现用例用到的FindByID）
type fakeProductRepo struct {
	products map[uint]*product.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *product.Product) error { return nil }
func (f *fakeProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, product.ErrProductNotFound
}

func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	return nil, product.ErrProductNotFound
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []uint) ([]*product.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	return nil, 0, nil
}

func newTestUseCase() (*UseCase, *fakeCartRepo) {
	cartRepo := newFakeCartRepo()
	productRepo := &fakeProductRepo{products: map[uint]*product.Product{
		1: {ID: 1, SKU: "WRENCH-S10", Name: "十件套扳手", Price: 8900, TrackQuantity: true, Quantity: 5},
		2: {ID: 2, SKU: "DRILL-E200", Name: "电钻", Price: 29900, TrackQuantity: true, Quantity: 3},
	}}
	return NewUseCase(cartRepo, productRepo), cartRepo
}

func TestCartAddItem(t *testing.T) {
	t.Run("加购成功并记录价格快照", func(t *testing.T) {
		uc, _ := newTestUseCase()

		info, err := uc.AddItem(context.Background(), 100, 1, 2)
		require.NoError(t, err)

		require.Len(t, info.Items, 1)
		assert.Equal(t, "WRENCH-S10", info.Items[0].SKU)
		assert.Equal(t, int64(8900), info.Items[0].Price)
		assert.Equal(t, "89.00", info.Items[0].PriceYuan)
		assert.Equal(t, 2, info.ItemCount)
		assert.Equal(t, int64(17800), info.Subtotal)
	})

	t.Run("重复加购合并数量", func(t *testing.T) {
		uc, _ := newTestUseCase()

		_, err := uc.AddItem(context.Background(), 100, 1, 2)
		require.NoError(t, err)
		info, err := uc.AddItem(context.Background(), 100, 1, 3)
		require.NoError(t, err)

		require.Len(t, info.Items, 1)
		assert.Equal(t, 5, info.Items[0].Quantity)
	})

	t.Run("商品不存在", func(t *testing.T) {
		uc, _ := newTestUseCase()

		_, err := uc.AddItem(context.Background(), 100, 999, 1)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("数量非法", func(t *testing.T) {
		uc, _ := newTestUseCase()

		_, err := uc.AddItem(context.Background(), 100, 1, 0)
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	})
}

func TestCartRemoveItem(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.AddItem(context.Background(), 100, 1, 1)
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), 100, 2, 1)
	require.NoError(t, err)

	info, err := uc.RemoveItem(context.Background(), 100, 1)
	require.NoError(t, err)
	require.Len(t, info.Items, 1)
	assert.Equal(t, uint(2), info.Items[0].ProductID)

	_, err = uc.RemoveItem(context.Background(), 100, 999)
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestCartClear(t *testing.T) {
	uc, repo := newTestUseCase()

	_, err := uc.AddItem(context.Background(), 100, 1, 1)
	require.NoError(t, err)

	require.NoError(t, uc.Clear(context.Background(), 100))
	assert.Empty(t, repo.carts)

	// 清空空购物车同样成功（幂等）
	require.NoError(t, uc.Clear(context.Background(), 100))
}
