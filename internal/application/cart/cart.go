package cart

import (
	"context"
	"fmt"

	"github.com/xiebiao/gearstore/internal/domain/cart"
	"github.com/xiebiao/gearstore/internal/domain/product"
)

// UseCase 购物车用例
// 设计说明：
// 1. 加购时回查商品，写入SKU/名称/当前价格快照
// 2. 不在加购时校验库存：库存以结账时的原子扣减为准，
//    提前校验只会产生"加购成功、结账失败"之外多一种不一致
type UseCase struct {
	cartRepo    cart.Repository
	productRepo product.Repository
}

// NewUseCase 创建购物车用例
func NewUseCase(cartRepo cart.Repository, productRepo product.Repository) *UseCase {
	return &UseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// ItemInfo 购物车条目DTO
type ItemInfo struct {
	ProductID uint   `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	PriceYuan string `json:"price_yuan"`
}

// CartInfo 购物车DTO
type CartInfo struct {
	Items        []*ItemInfo `json:"items"`
	ItemCount    int         `json:"item_count"`
	Subtotal     int64       `json:"subtotal"`
	SubtotalYuan string      `json:"subtotal_yuan"`
}

// AddItem 加入商品
func (uc *UseCase) AddItem(ctx context.Context, userID, productID uint, quantity int) (*CartInfo, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	// 回查商品，记录加购时的价格快照
	p, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(cart.CartItem{
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Quantity:  quantity,
		Price:     p.Price,
	}); err != nil {
		return nil, err
	}

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return toCartInfo(c), nil
}

// Get 查询购物车
func (uc *UseCase) Get(ctx context.Context, userID uint) (*CartInfo, error) {
	c, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartInfo(c), nil
}

// RemoveItem 移除商品
func (uc *UseCase) RemoveItem(ctx context.Context, userID, productID uint) (*CartInfo, error) {
	c, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return toCartInfo(c), nil
}

// Clear 清空购物车
func (uc *UseCase) Clear(ctx context.Context, userID uint) error {
	return uc.cartRepo.Clear(ctx, userID)
}

// toCartInfo 领域实体转DTO
func toCartInfo(c *cart.Cart) *CartInfo {
	items := make([]*ItemInfo, 0, len(c.Items))
	count := 0
	for _, item := range c.Items {
		items = append(items, &ItemInfo{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			PriceYuan: centsToYuan(item.Price),
		})
		count += item.Quantity
	}

	subtotal := c.Subtotal()
	return &CartInfo{
		Items:        items,
		ItemCount:    count,
		Subtotal:     subtotal,
		SubtotalYuan: centsToYuan(subtotal),
	}
}

// centsToYuan 分转元的展示格式
func centsToYuan(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
