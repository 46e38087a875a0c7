package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gearstore/internal/domain/order"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// orderRepository 订单仓储实现（MySQL）
// 设计说明：
// 1. Order和OrderItem是聚合关系，必须一起保存
// 2. 查询时使用Preload预加载明细，避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// GORM通过foreignKey自动保存关联的Items
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 订单号撞唯一索引，调用方重新生成订单号重试
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "订单号冲突")
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}

	return nil
}

// FindByID 根据ID查找订单（包含明细）
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := r.getDB(ctx).Preload("Items").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// FindByOrderNo 根据订单号查找订单
func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	err := r.getDB(ctx).Preload("Items").Where("order_no = ?", orderNo).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// Update 更新订单
// 主要用于状态流转和回填支付单号/物流单号，不更新Items
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	result := r.getDB(ctx).Model(&OrderModel{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"status":          int(o.Status),
		"payment_status":  int(o.PaymentStatus),
		"payment_id":      o.PaymentID,
		"tracking_number": o.TrackingNumber,
		"cancel_reason":   o.CancelReason,
		"updated_at":      o.UpdatedAt,
	})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ListByUserID 查询用户的订单列表
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := r.getDB(ctx).Model(&OrderModel{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// List 管理端订单列表（分页+状态过滤+关键词搜索）
func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := r.getDB(ctx).Model(&OrderModel{})

	if params.Status != 0 {
		query = query.Where("status = ?", int(params.Status))
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("order_no LIKE ? OR shipping_address LIKE ?", kw, kw)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &OrderModel{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		Shipping:        o.Shipping,
		Discount:        o.Discount,
		Total:           o.Total,
		Status:          int(o.Status),
		PaymentStatus:   int(o.PaymentStatus),
		PaymentID:       o.PaymentID,
		TrackingNumber:  o.TrackingNumber,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		PaymentMethod:   o.PaymentMethod,
		CancelReason:    o.CancelReason,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &order.Order{
		ID:              model.ID,
		OrderNo:         model.OrderNo,
		UserID:          model.UserID,
		Subtotal:        model.Subtotal,
		Tax:             model.Tax,
		Shipping:        model.Shipping,
		Discount:        model.Discount,
		Total:           model.Total,
		Status:          order.Status(model.Status),
		PaymentStatus:   order.PaymentStatus(model.PaymentStatus),
		PaymentID:       model.PaymentID,
		TrackingNumber:  model.TrackingNumber,
		ShippingAddress: model.ShippingAddress,
		BillingAddress:  model.BillingAddress,
		PaymentMethod:   model.PaymentMethod,
		CancelReason:    model.CancelReason,
		Items:           items,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// getDB 从context获取事务DB，如果没有则使用默认DB
func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
