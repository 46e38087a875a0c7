package product

import (
	"context"
	"regexp"
)

// Service 商品领域服务接口
// 设计说明：
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现（依赖倒置）
type Service interface {
	// PublishProduct 发布商品（上架）
	// 业务规则：
	// - SKU格式必须合法（3-32位大写字母、数字或连字符）
	// - 价格必须在1-99999999分之间
	// - 初始库存必须>=0
	// - SKU不能重复
	PublishProduct(ctx context.Context, sku, name, brand, category string, price int64, trackQuantity bool, quantity int, imageURL, description string) (*Product, error)

	// GetProductByID 根据ID获取商品详情
	GetProductByID(ctx context.Context, id uint) (*Product, error)

	// GetProductBySKU 根据SKU获取商品
	GetProductBySKU(ctx context.Context, sku string) (*Product, error)

	// UpdateProductInfo 更新商品信息
	UpdateProductInfo(ctx context.Context, id uint, name, brand, category, description string) error

	// UpdateProductPrice 更新商品价格
	UpdateProductPrice(ctx context.Context, id uint, newPrice int64) error

	// ListProducts 分页查询商品列表
	// 公开接口，不需要权限校验
	ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建商品领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// skuPattern SKU格式：3-32位大写字母、数字或连字符
var skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{2,31}$`)

// PublishProduct 发布商品
func (s *service) PublishProduct(ctx context.Context, sku, name, brand, category string, price int64, trackQuantity bool, quantity int, imageURL, description string) (*Product, error) {
	// 1. SKU格式校验
	if !skuPattern.MatchString(sku) {
		return nil, ErrInvalidSKU
	}

	// 2. 价格范围校验（1分-999999.99元）
	if price < 1 || price > 99999999 {
		return nil, ErrInvalidPrice
	}

	// 3. 初始库存校验
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	// 4. 检查SKU是否已存在（数据库UNIQUE索引兜底）
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err == nil && existing != nil {
		return nil, ErrSKUDuplicate
	}
	if err != nil && err != ErrProductNotFound {
		return nil, err
	}

	// 5. 创建商品实体并持久化
	p := NewProduct(sku, name, brand, category, price, trackQuantity, quantity, imageURL, description)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetProductByID 根据ID获取商品
func (s *service) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// GetProductBySKU 根据SKU获取商品
func (s *service) GetProductBySKU(ctx context.Context, sku string) (*Product, error) {
	if !skuPattern.MatchString(sku) {
		return nil, ErrInvalidSKU
	}
	return s.repo.FindBySKU(ctx, sku)
}

// UpdateProductInfo 更新商品信息
func (s *service) UpdateProductInfo(ctx context.Context, id uint, name, brand, category, description string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	p.UpdateInfo(name, brand, category, description)
	return s.repo.Update(ctx, p)
}

// UpdateProductPrice 更新商品价格
func (s *service) UpdateProductPrice(ctx context.Context, id uint, newPrice int64) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := p.UpdatePrice(newPrice); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// ListProducts 分页查询商品列表
func (s *service) ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	// 分页参数兜底，避免恶意大分页拖垮数据库
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.repo.List(ctx, params)
}
