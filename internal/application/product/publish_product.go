package product

import (
	"context"

	"github.com/xiebiao/gearstore/internal/domain/product"
)

// PublishProductUseCase 商品发布用例（管理端）
// 设计说明：业务规则校验在领域服务中完成，应用层负责编排与DTO转换
type PublishProductUseCase struct {
	productService product.Service
}

// NewPublishProductUseCase 创建商品发布用例
func NewPublishProductUseCase(productService product.Service) *PublishProductUseCase {
	return &PublishProductUseCase{productService: productService}
}

// PublishRequest 发布请求DTO
type PublishRequest struct {
	SKU           string
	Name          string
	Brand         string
	Category      string
	Price         int64 // 分
	TrackQuantity bool
	Quantity      int
	ImageURL      string
	Description   string
}

// Execute 执行商品发布
func (uc *PublishProductUseCase) Execute(ctx context.Context, req PublishRequest) (*ProductInfo, error) {
	p, err := uc.productService.PublishProduct(ctx,
		req.SKU, req.Name, req.Brand, req.Category,
		req.Price, req.TrackQuantity, req.Quantity,
		req.ImageURL, req.Description)
	if err != nil {
		return nil, err
	}

	return toProductInfo(p), nil
}
