package cart

import (
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrEmptyCart 购物车为空
	ErrEmptyCart = apperrors.ErrEmptyCart

	// ErrInvalidQuantity 加购数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "商品数量必须大于0")

	// ErrItemNotFound 购物车中不存在该商品
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeNotFound, "购物车中不存在该商品")
)
