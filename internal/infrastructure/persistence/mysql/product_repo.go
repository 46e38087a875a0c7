package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gearstore/internal/domain/product"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// productRepository 商品仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. Update不触碰Quantity字段：库存只由台账的原子UPDATE变更
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := &ProductModel{
		SKU:           p.SKU,
		Name:          p.Name,
		Brand:         p.Brand,
		Category:      p.Category,
		Price:         p.Price,
		TrackQuantity: p.TrackQuantity,
		Quantity:      p.Quantity,
		ImageURL:      p.ImageURL,
		Description:   p.Description,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// FindBySKU 根据SKU查找商品
func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).Where("sku = ?", sku).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// FindByIDs 批量查找商品
func (r *productRepository) FindByIDs(ctx context.Context, ids []uint) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []ProductModel
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询商品失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, nil
}

// Update 更新商品基本信息
// 注意：使用Select排除quantity，库存变更只走台账
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	result := r.getDB(ctx).Model(&ProductModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"brand":       p.Brand,
			"category":    p.Category,
			"price":       p.Price,
			"image_url":   p.ImageURL,
			"description": p.Description,
			"updated_at":  p.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// List 分页查询商品列表
func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	var models []ProductModel
	var total int64

	query := r.getDB(ctx).Model(&ProductModel{})

	// 关键词搜索（名称/品牌/SKU）
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR brand LIKE ? OR sku LIKE ?", kw, kw, kw)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	// 排序（白名单字段，防SQL注入）
	orderBy := "created_at"
	if params.SortBy == "price" {
		orderBy = "price"
	}
	if params.SortDesc {
		orderBy += " DESC"
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order(orderBy).Limit(params.PageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, total, nil
}

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:            model.ID,
		SKU:           model.SKU,
		Name:          model.Name,
		Brand:         model.Brand,
		Category:      model.Category,
		Price:         model.Price,
		TrackQuantity: model.TrackQuantity,
		Quantity:      model.Quantity,
		ImageURL:      model.ImageURL,
		Description:   model.Description,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// getDB 从context获取事务DB，如果没有则使用默认DB
func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
