package product

import (
	"context"
	"fmt"

	"github.com/xiebiao/gearstore/internal/domain/product"
)

// ListProductsUseCase 商品查询用例（公开接口）
type ListProductsUseCase struct {
	productService product.Service
}

// NewListProductsUseCase 创建商品查询用例
func NewListProductsUseCase(productService product.Service) *ListProductsUseCase {
	return &ListProductsUseCase{productService: productService}
}

// ListRequest 列表查询请求DTO
type ListRequest struct {
	Page     int
	PageSize int
	Keyword  string
	Category string
	SortBy   string
	SortDesc bool
}

// ProductInfo 商品信息DTO
type ProductInfo struct {
	ID            uint   `json:"id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Brand         string `json:"brand"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	PriceYuan     string `json:"price_yuan"`
	TrackQuantity bool   `json:"track_quantity"`
	Quantity      int    `json:"quantity"`
	InStock       bool   `json:"in_stock"`
	ImageURL      string `json:"image_url"`
	Description   string `json:"description"`
}

// ListResult 分页查询结果
type ListResult struct {
	Products []*ProductInfo `json:"products"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Execute 执行商品列表查询
func (uc *ListProductsUseCase) Execute(ctx context.Context, req ListRequest) (*ListResult, error) {
	params := product.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Category: req.Category,
		SortBy:   req.SortBy,
		SortDesc: req.SortDesc,
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	products, total, err := uc.productService.ListProducts(ctx, params)
	if err != nil {
		return nil, err
	}

	infos := make([]*ProductInfo, 0, len(products))
	for _, p := range products {
		infos = append(infos, toProductInfo(p))
	}

	return &ListResult{
		Products: infos,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// Get 查询商品详情
func (uc *ListProductsUseCase) Get(ctx context.Context, id uint) (*ProductInfo, error) {
	p, err := uc.productService.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductInfo(p), nil
}

// toProductInfo 领域实体转DTO
func toProductInfo(p *product.Product) *ProductInfo {
	return &ProductInfo{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Brand:         p.Brand,
		Category:      p.Category,
		Price:         p.Price,
		PriceYuan:     centsToYuan(p.Price),
		TrackQuantity: p.TrackQuantity,
		Quantity:      p.Quantity,
		InStock:       !p.TrackQuantity || p.Quantity > 0,
		ImageURL:      p.ImageURL,
		Description:   p.Description,
	}
}

// centsToYuan 分转元的展示格式
func centsToYuan(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
