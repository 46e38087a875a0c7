package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/gearstore/internal/application/order"
	"github.com/xiebiao/gearstore/internal/interface/http/dto"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/response"
)

// AdminOrderHandler 订单HTTP处理器（管理端）
// 说明：路由层已施加RequireRole(admin)，Handler不再重复鉴权
type AdminOrderHandler struct {
	adminUseCase *apporder.AdminOrdersUseCase
}

// NewAdminOrderHandler 创建管理端订单处理器
func NewAdminOrderHandler(adminUseCase *apporder.AdminOrdersUseCase) *AdminOrderHandler {
	return &AdminOrderHandler{adminUseCase: adminUseCase}
}

// List 订单列表（管理端）
// @Summary      订单列表（管理端）
// @Description  查询全部订单，支持按状态过滤与订单号搜索
// @Tags         管理端
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        status query string false "订单状态（PENDING/CONFIRMED/...）"
// @Param        keyword query string false "订单号关键词"
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/admin/orders [get]
func (h *AdminOrderHandler) List(c *gin.Context) {
	var query dto.AdminListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	details, total, err := h.adminUseCase.List(c.Request.Context(), apporder.AdminListRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
		Status:   query.Status,
		Keyword:  query.Keyword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, details, total, query.Page, query.PageSize)
}

// Transition 订单状态流转（管理端）
// @Summary      订单状态流转
// @Description  按状态机推进订单状态或修改支付状态，非法流转返回409
// @Tags         管理端
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order_no path string true "订单号"
// @Param        request body dto.AdminTransitionRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderDetail} "流转成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      409 {object} response.Response "非法状态流转"
// @Router       /api/v1/admin/orders/{order_no} [patch]
func (h *AdminOrderHandler) Transition(c *gin.Context) {
	orderNo := c.Param("order_no")
	if orderNo == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "订单号不能为空")
		return
	}

	var req dto.AdminTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	detail, err := h.adminUseCase.Transition(c.Request.Context(), orderNo, apporder.TransitionRequest{
		Status:         req.Status,
		PaymentStatus:  req.PaymentStatus,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Adjustments 订单库存台账（管理端）
// @Summary      订单库存台账
// @Description  查询订单关联的库存扣减/回补记录，用于核对订单与库存
// @Tags         管理端
// @Produce      json
// @Security     BearerAuth
// @Param        order_no path string true "订单号"
// @Success      200 {object} response.Response{data=[]apporder.AdjustmentInfo} "查询成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/admin/orders/{order_no}/adjustments [get]
func (h *AdminOrderHandler) Adjustments(c *gin.Context) {
	orderNo := c.Param("order_no")
	if orderNo == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "订单号不能为空")
		return
	}

	infos, err := h.adminUseCase.Adjustments(c.Request.Context(), orderNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, infos)
}
