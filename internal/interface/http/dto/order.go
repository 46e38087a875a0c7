package dto

// CheckoutRequest 结账请求
// 说明：金额字段单位为分；账单地址为空时使用收货地址
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,min=5,max=500"`
	BillingAddress  string `json:"billing_address" binding:"max=500"`
	PaymentMethod   string `json:"payment_method" binding:"required,oneof=alipay wechat card"`
	TaxAmount       int64  `json:"tax_amount" binding:"gte=0"`
	ShippingAmount  int64  `json:"shipping_amount" binding:"gte=0"`
	DiscountAmount  int64  `json:"discount_amount" binding:"gte=0"`
	Notes           string `json:"notes" binding:"max=500"`
}

// CheckoutResponse 结账响应
type CheckoutResponse struct {
	OrderNo       string `json:"order_no"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Subtotal      int64  `json:"subtotal"`
	Tax           int64  `json:"tax"`
	Shipping      int64  `json:"shipping"`
	Discount      int64  `json:"discount"`
	Total         int64  `json:"total"`
	CreatedAt     string `json:"created_at"`
}

// ListOrdersQuery 订单列表查询参数
type ListOrdersQuery struct {
	Page     int `form:"page,default=1" binding:"gte=0"`
	PageSize int `form:"page_size,default=20" binding:"gte=0,lte=100"`
}

// AdminListOrdersQuery 管理端订单列表查询参数
type AdminListOrdersQuery struct {
	Page     int    `form:"page,default=1" binding:"gte=0"`
	PageSize int    `form:"page_size,default=20" binding:"gte=0,lte=100"`
	Status   string `form:"status" binding:"max=20"`
	Keyword  string `form:"keyword" binding:"max=100"`
}

// AdminTransitionRequest 管理端订单状态流转请求
// 说明：三个字段均可选，但不能全为空；未填的字段保持不变
type AdminTransitionRequest struct {
	Status         string `json:"status" binding:"max=20"`
	PaymentStatus  string `json:"payment_status" binding:"max=20"`
	TrackingNumber string `json:"tracking_number" binding:"max=100"`
}
