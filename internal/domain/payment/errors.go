package payment

import (
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// 支付领域错误定义
var (
	// ErrInvalidSignature 回调签名校验失败（一律拒绝处理，fail closed）
	ErrInvalidSignature = apperrors.ErrInvalidSignature

	// ErrDuplicateEvent 事件已处理（并发插入撞唯一索引时返回）
	ErrDuplicateEvent = apperrors.New(apperrors.ErrCodeDuplicateEntry, "支付事件已处理")

	// ErrInvalidPayload 回调报文格式非法
	ErrInvalidPayload = apperrors.New(apperrors.ErrCodeInvalidParams, "回调报文格式非法")
)
