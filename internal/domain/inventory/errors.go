package inventory

import (
	"strings"

	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrInsufficientStock 库存不足（扣减时的原子条件更新未命中）
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.ErrProductNotFound

	// ErrInvalidQuantity 请求数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "库存操作数量必须大于0")
)

// NewUnavailableError 构造可售校验失败错误
// details为逐条目的失败明细（商品不存在/库存不足），整体作为一个业务错误返回，
// 方便接口层一次性展示所有问题条目
func NewUnavailableError(details []string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeInventoryUnavailable, "库存校验失败: "+strings.Join(details, "; "))
}
