package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/gearstore/internal/application/cart"
	"github.com/xiebiao/gearstore/internal/interface/http/dto"
	"github.com/xiebiao/gearstore/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 说明：购物车所有接口都需要登录，userID从JWT Claims中取
type CartHandler struct {
	cartUseCase *appcart.UseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.UseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  添加商品到购物车，重复加购时合并数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "加购信息"
// @Success      200 {object} response.Response{data=appcart.CartInfo} "加购成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.cartUseCase.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartInfo} "查询成功"
// @Router       /api/v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	result, err := h.cartUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveItem 移除购物车商品
// @Summary      移除购物车商品
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path int true "商品ID"
// @Success      200 {object} response.Response{data=appcart.CartInfo} "移除成功"
// @Failure      404 {object} response.Response "商品不在购物车中"
// @Router       /api/v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "商品ID非法")
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.cartUseCase.RemoveItem(c.Request.Context(), userID, uint(productID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "清空成功"
// @Router       /api/v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	if err := h.cartUseCase.Clear(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
