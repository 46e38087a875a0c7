package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/gearstore/internal/application/product"
	"github.com/xiebiao/gearstore/internal/interface/http/dto"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	publishUseCase *appproduct.PublishProductUseCase
	listUseCase    *appproduct.ListProductsUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	publishUseCase *appproduct.PublishProductUseCase,
	listUseCase *appproduct.ListProductsUseCase,
) *ProductHandler {
	return &ProductHandler{
		publishUseCase: publishUseCase,
		listUseCase:    listUseCase,
	}
}

// Publish 发布商品（管理端）
// @Summary      发布商品
// @Description  上架新商品，SKU全局唯一
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=appproduct.ProductInfo} "发布成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无权限"
// @Failure      409 {object} response.Response "SKU已存在"
// @Router       /api/v1/admin/products [post]
func (h *ProductHandler) Publish(c *gin.Context) {
	var req dto.PublishProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.publishUseCase.Execute(c.Request.Context(), appproduct.PublishRequest{
		SKU:           req.SKU,
		Name:          req.Name,
		Brand:         req.Brand,
		Category:      req.Category,
		Price:         req.Price,
		TrackQuantity: req.TrackQuantity,
		Quantity:      req.Quantity,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List 商品列表（公开接口）
// @Summary      商品列表
// @Description  分页查询商品，支持关键词、分类过滤与排序
// @Tags         商品
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        keyword query string false "关键词（匹配名称/品牌/SKU）"
// @Param        category query string false "分类"
// @Param        sort_by query string false "排序字段" Enums(price, created_at)
// @Param        sort_desc query bool false "是否降序"
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var query dto.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appproduct.ListRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
		Keyword:  query.Keyword,
		Category: query.Category,
		SortBy:   query.SortBy,
		SortDesc: query.SortDesc,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Products, result.Total, result.Page, result.PageSize)
}

// Get 商品详情（公开接口）
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=appproduct.ProductInfo} "查询成功"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "商品ID非法")
		return
	}

	result, err := h.listUseCase.Get(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
