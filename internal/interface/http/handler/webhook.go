package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	apppayment "github.com/xiebiao/gearstore/internal/application/payment"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/response"
)

// SignatureHeader 支付网关回调签名Header
const SignatureHeader = "X-Gateway-Signature"

// WebhookHandler 支付回调HTTP处理器
// 设计说明：
// 1. 签名针对原始请求体计算，必须在JSON解析前读取原始字节
// 2. 重复事件返回200（网关收到200停止重发）
// 3. 处理失败返回5xx，网关按退避策略重发
type WebhookHandler struct {
	webhookUseCase *apppayment.WebhookUseCase
}

// NewWebhookHandler 创建支付回调处理器
func NewWebhookHandler(webhookUseCase *apppayment.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{webhookUseCase: webhookUseCase}
}

// HandlePaymentEvent 处理支付网关回调
// @Summary      支付回调
// @Description  接收支付网关事件（支付成功/失败、退款成功），按事件ID幂等处理
// @Tags         支付
// @Accept       json
// @Produce      json
// @Param        X-Gateway-Signature header string true "HMAC-SHA256签名"
// @Success      200 {object} response.Response "处理成功（含重复事件）"
// @Failure      400 {object} response.Response "载荷非法或签名校验失败"
// @Failure      500 {object} response.Response "处理失败，等待网关重发"
// @Router       /api/v1/payments/webhook [post]
func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "读取请求体失败")
		return
	}

	signature := c.GetHeader(SignatureHeader)

	if err := h.webhookUseCase.HandleEvent(c.Request.Context(), rawBody, signature); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
