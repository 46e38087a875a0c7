package dto

// PublishProductRequest 商品发布请求（管理端）
// 说明：
// 1. 价格单位为分，避免浮点精度问题
// 2. SKU格式在领域服务中校验（3-32位大写字母、数字、连字符）
type PublishProductRequest struct {
	SKU           string `json:"sku" binding:"required,min=3,max=32"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Brand         string `json:"brand" binding:"max=100"`
	Category      string `json:"category" binding:"max=100"`
	Price         int64  `json:"price" binding:"required,gt=0"`
	TrackQuantity bool   `json:"track_quantity"`
	Quantity      int    `json:"quantity" binding:"gte=0"`
	ImageURL      string `json:"image_url" binding:"max=500"`
	Description   string `json:"description" binding:"max=2000"`
}

// ListProductsQuery 商品列表查询参数（Query String）
type ListProductsQuery struct {
	Page     int    `form:"page,default=1" binding:"gte=0"`
	PageSize int    `form:"page_size,default=20" binding:"gte=0,lte=100"`
	Keyword  string `form:"keyword" binding:"max=100"`
	Category string `form:"category" binding:"max=100"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price created_at"`
	SortDesc bool   `form:"sort_desc"`
}
