package cart

import (
	"time"
)

// CartItem 购物车条目
// 设计说明：
// 1. Price记录"加购时的价格"（历史价格快照），结账时以此计价
// 2. 冗余SKU与Name，避免购物车展示时回表查询商品
type CartItem struct {
	ProductID uint   `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // 加购时的单价（分）
}

// Cart 购物车（聚合根）
// 设计说明：
// 1. 一个用户一个购物车，以用户ID为键整体存储在Redis中（JSON序列化）
// 2. 购物车是临时数据：结账成功或显式清空后销毁
// 3. 购物车与订单/库存持久化在不同存储中，结账流程据此设计补偿
type Cart struct {
	UserID    uint       `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart 创建空购物车
func NewCart(userID uint) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     []CartItem{},
		UpdatedAt: time.Now(),
	}
}

// AddItem 加入商品（领域行为）
// 业务规则：
// 1. 数量必须>0
// 2. 同一商品重复加购时合并数量，价格以最新一次加购为准
func (c *Cart) AddItem(item CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.Items[i].Price = item.Price
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveItem 移除商品
func (c *Cart) RemoveItem(productID uint) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal 商品小计：Σ(加购价 × 数量)
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
