package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo 内存商品仓储
type fakeRepo struct {
	bySKU  map[string]*Product
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bySKU: make(map[string]*Product), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, p *Product) error {
	if _, ok := f.bySKU[p.SKU]; ok {
		return ErrSKUDuplicate
	}
	p.ID = f.nextID
	f.nextID++
	f.bySKU[p.SKU] = p
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*Product, error) {
	for _, p := range f.bySKU {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (f *fakeRepo) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	if p, ok := f.bySKU[sku]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

func (f *fakeRepo) FindByIDs(ctx context.Context, ids []uint) ([]*Product, error) {
	var out []*Product
	for _, id := range ids {
		if p, err := f.FindByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Product) error {
	f.bySKU[p.SKU] = p
	return nil
}

func (f *fakeRepo) List(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	var out []*Product
	for _, p := range f.bySKU {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func TestPublishProduct(t *testing.T) {
	svc := NewService(newFakeRepo())

	t.Run("发布成功", func(t *testing.T) {
		p, err := svc.PublishProduct(context.Background(),
			"MOUSE-G502", "游戏鼠标G502", "罗技", "鼠标",
			29900, true, 50, "", "有线游戏鼠标")
		require.NoError(t, err)

		assert.NotZero(t, p.ID)
		assert.Equal(t, int64(29900), p.Price)
		assert.Equal(t, 50, p.Quantity)
		assert.True(t, p.TrackQuantity)
	})

	t.Run("SKU格式非法", func(t *testing.T) {
		cases := []string{"ab", "lowercase-sku", "SKU WITH SPACE", "-LEADING"}
		for _, sku := range cases {
			_, err := svc.PublishProduct(context.Background(),
				sku, "商品", "", "", 100, false, 0, "", "")
			assert.ErrorIs(t, err, ErrInvalidSKU, "sku=%s", sku)
		}
	})

	t.Run("价格越界", func(t *testing.T) {
		_, err := svc.PublishProduct(context.Background(),
			"KB-100", "键盘", "", "", 0, false, 0, "", "")
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = svc.PublishProduct(context.Background(),
			"KB-101", "键盘", "", "", 100000000, false, 0, "", "")
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("初始库存为负", func(t *testing.T) {
		_, err := svc.PublishProduct(context.Background(),
			"KB-102", "键盘", "", "", 100, true, -1, "", "")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("SKU重复", func(t *testing.T) {
		_, err := svc.PublishProduct(context.Background(),
			"PAD-001", "鼠标垫", "", "", 2900, false, 0, "", "")
		require.NoError(t, err)

		_, err = svc.PublishProduct(context.Background(),
			"PAD-001", "另一个鼠标垫", "", "", 3900, false, 0, "", "")
		assert.ErrorIs(t, err, ErrSKUDuplicate)
	})
}

func TestListProductsPageClamp(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.PublishProduct(context.Background(),
		"HS-700", "游戏耳机", "", "耳机", 59900, true, 10, "", "")
	require.NoError(t, err)

	// 非法分页参数被修正，不报错
	products, total, err := svc.ListProducts(context.Background(), ListParams{Page: -1, PageSize: 9999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, products, 1)
}
