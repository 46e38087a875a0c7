package handler

import (
	"github.com/gin-gonic/gin"

	appcheckout "github.com/xiebiao/gearstore/internal/application/checkout"
	apporder "github.com/xiebiao/gearstore/internal/application/order"
	"github.com/xiebiao/gearstore/internal/interface/http/dto"
	"github.com/xiebiao/gearstore/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/response"
)

// OrderHandler 订单HTTP处理器（买家侧）
type OrderHandler struct {
	checkoutUseCase *appcheckout.UseCase
	listUseCase     *apporder.ListOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *appcheckout.UseCase,
	listUseCase *apporder.ListOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase: checkoutUseCase,
		listUseCase:     listUseCase,
	}
}

// Checkout 结账下单
// @Summary      结账下单
// @Description  以购物车内容创建订单并扣减库存，成功后清空购物车
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "结账信息"
// @Success      201 {object} response.Response{data=dto.CheckoutResponse} "下单成功"
// @Failure      400 {object} response.Response "参数错误或购物车为空"
// @Failure      409 {object} response.Response "库存不足"
// @Router       /api/v1/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	o, err := h.checkoutUseCase.Execute(c.Request.Context(), userID, appcheckout.Request{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		TaxAmount:       req.TaxAmount,
		ShippingAmount:  req.ShippingAmount,
		DiscountAmount:  req.DiscountAmount,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.CheckoutResponse{
		OrderNo:       o.OrderNo,
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Shipping:      o.Shipping,
		Discount:      o.Discount,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}

// List 我的订单列表
// @Summary      我的订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var query dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	summaries, total, err := h.listUseCase.List(c.Request.Context(), userID, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, summaries, total, query.Page, query.PageSize)
}

// Get 订单详情
// @Summary      订单详情
// @Description  按订单号查询，只能查询自己的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        order_no path string true "订单号"
// @Success      200 {object} response.Response{data=apporder.OrderDetail} "查询成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{order_no} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderNo := c.Param("order_no")
	if orderNo == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "订单号不能为空")
		return
	}

	userID := middleware.MustGetUserID(c)
	detail, err := h.listUseCase.Get(c.Request.Context(), userID, orderNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}
