package order

import (
	"context"
	"fmt"

	"github.com/xiebiao/gearstore/internal/domain/order"
)

// ListOrdersUseCase 买家订单查询用例
// 设计说明：买家只能看到自己的订单，按订单号查询时校验归属
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单查询用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// List 查询当前用户的订单列表
func (uc *ListOrdersUseCase) List(ctx context.Context, userID uint, page, pageSize int) ([]*OrderSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*OrderSummary, len(orders))
	for i, o := range orders {
		summaries[i] = toOrderSummary(o)
	}
	return summaries, total, nil
}

// Get 按订单号查询订单详情
// 业务规则：只能查询自己的订单
func (uc *ListOrdersUseCase) Get(ctx context.Context, userID uint, orderNo string) (*OrderDetail, error) {
	o, err := uc.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}

	if o.UserID != userID {
		// 归属不符按不存在处理，不向越权方泄露订单存在性
		return nil, order.ErrOrderNotFound
	}

	return toOrderDetail(o), nil
}

// =========================================
// 应用层DTO
// =========================================

// OrderSummary 订单摘要（列表用）
type OrderSummary struct {
	OrderNo       string `json:"order_no"`
	Total         int64  `json:"total"`
	TotalYuan     string `json:"total_yuan"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	ItemCount     int    `json:"item_count"`
	CreatedAt     string `json:"created_at"`
}

// OrderDetail 订单详情
type OrderDetail struct {
	OrderNo         string      `json:"order_no"`
	Items           []OrderItem `json:"items"`
	Subtotal        int64       `json:"subtotal"`
	Tax             int64       `json:"tax"`
	Shipping        int64       `json:"shipping"`
	Discount        int64       `json:"discount"`
	Total           int64       `json:"total"`
	TotalYuan       string      `json:"total_yuan"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"payment_status"`
	TrackingNumber  string      `json:"tracking_number,omitempty"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	CancelReason    string      `json:"cancel_reason,omitempty"`
	CreatedAt       string      `json:"created_at"`
}

// OrderItem 订单明细DTO
type OrderItem struct {
	ProductID uint   `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

func toOrderSummary(o *order.Order) *OrderSummary {
	return &OrderSummary{
		OrderNo:       o.OrderNo,
		Total:         o.Total,
		TotalYuan:     centsToYuan(o.Total),
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		ItemCount:     len(o.Items),
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toOrderDetail(o *order.Order) *OrderDetail {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return &OrderDetail{
		OrderNo:         o.OrderNo,
		Items:           items,
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		Shipping:        o.Shipping,
		Discount:        o.Discount,
		Total:           o.Total,
		TotalYuan:       centsToYuan(o.Total),
		Status:          o.Status.String(),
		PaymentStatus:   o.PaymentStatus.String(),
		TrackingNumber:  o.TrackingNumber,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// centsToYuan 分转元的展示格式（267.00）
func centsToYuan(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
