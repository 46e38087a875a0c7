package order

import (
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrInvalidTransition 订单状态非法流转
	ErrInvalidTransition = apperrors.ErrInvalidTransition

	// ErrPaymentStatusConflict 支付状态与订单状态冲突
	ErrPaymentStatusConflict = apperrors.New(apperrors.ErrCodeInvalidTransition, "支付状态与订单状态不一致")

	// ErrEmptyItems 订单明细为空
	ErrEmptyItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 明细数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细数量必须大于0")

	// ErrInvalidTotal 订单金额不合法
	ErrInvalidTotal = apperrors.ErrInvalidTotal

	// ErrAccessDenied 无权访问他人订单
	ErrAccessDenied = apperrors.ErrForbidden
)
