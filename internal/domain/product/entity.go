package product

import (
	"time"
)

// Product 商品实体（聚合根）
// 设计说明：
// 1. Product是商品聚合的根实体，代表一件电竞外设（键盘、鼠标、耳机等）
// 2. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 3. SKU作为业务唯一标识（数据库层保证唯一性）
// 4. TrackQuantity=false的商品（虚拟周边、预售位）不参与库存管控
// 5. Quantity只能通过库存台账（inventory.Ledger）变更，禁止业务代码直接改写
type Product struct {
	ID            uint
	SKU           string // 商品编码（业务唯一标识）
	Name          string // 商品名称
	Brand         string // 品牌
	Category      string // 分类（keyboard/mouse/headset/...）
	Price         int64  // 价格（单位：分，1元=100分）
	TrackQuantity bool   // 是否启用库存管控
	Quantity      int    // 可售库存数量（仅TrackQuantity=true时有意义）
	ImageURL      string // 商品主图URL
	Description   string // 商品描述
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct 创建新商品（工厂方法）
// sku需调用方先校验格式；quantity为初始库存
func NewProduct(sku, name, brand, category string, price int64, trackQuantity bool, quantity int, imageURL, description string) *Product {
	now := time.Now()
	return &Product{
		SKU:           sku,
		Name:          name,
		Brand:         brand,
		Category:      category,
		Price:         price,
		TrackQuantity: trackQuantity,
		Quantity:      quantity,
		ImageURL:      imageURL,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpdatePrice 更新价格（领域行为）
// 业务规则：价格必须>0
func (p *Product) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	p.Price = newPrice
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新商品基本信息
func (p *Product) UpdateInfo(name, brand, category, description string) {
	if name != "" {
		p.Name = name
	}
	if brand != "" {
		p.Brand = brand
	}
	if category != "" {
		p.Category = category
	}
	if description != "" {
		p.Description = description
	}
	p.UpdatedAt = time.Now()
}

// HasEnough 校验可售库存是否满足请求数量
// 说明：未启用库存管控的商品视为永远有货
func (p *Product) HasEnough(quantity int) bool {
	if !p.TrackQuantity {
		return true
	}
	return p.Quantity >= quantity
}
