package product

import (
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.ErrProductNotFound

	// ErrSKUDuplicate SKU编码已存在
	ErrSKUDuplicate = apperrors.ErrSKUDuplicate

	// ErrInvalidSKU SKU格式不合法
	ErrInvalidSKU = apperrors.New(apperrors.ErrCodeInvalidParams, "SKU格式不合法（3-32位大写字母、数字或连字符）")

	// ErrInvalidPrice 价格不合法
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "商品价格必须大于0")

	// ErrInvalidQuantity 库存数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "库存数量不能为负数")
)
