package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/gearstore/internal/domain/inventory"
	"github.com/xiebiao/gearstore/internal/domain/order"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/logger"
)

// AdminOrdersUseCase 管理端订单用例
// 设计说明：
// 1. 列表支持按状态过滤和订单号/地址关键词搜索
// 2. 状态流转由领域实体的状态机校验，非法流转返回业务错误（接口层映射409）
// 3. 台账查询用于排查"订单状态与库存对不上"一类的客诉
type AdminOrdersUseCase struct {
	orderRepo order.Repository
	ledger    inventory.Ledger
}

// NewAdminOrdersUseCase 创建管理端订单用例
func NewAdminOrdersUseCase(orderRepo order.Repository, ledger inventory.Ledger) *AdminOrdersUseCase {
	return &AdminOrdersUseCase{orderRepo: orderRepo, ledger: ledger}
}

// AdminListRequest 管理端列表请求
type AdminListRequest struct {
	Page     int
	PageSize int
	Status   string // 状态名过滤（空=不过滤）
	Keyword  string
}

// List 管理端订单列表
func (uc *AdminOrdersUseCase) List(ctx context.Context, req AdminListRequest) ([]*OrderDetail, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	params := order.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
	}
	if req.Status != "" {
		s, ok := order.ParseStatus(req.Status)
		if !ok {
			return nil, 0, apperrors.New(apperrors.ErrCodeInvalidParams, "未知的订单状态: "+req.Status)
		}
		params.Status = s
	}

	orders, total, err := uc.orderRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*OrderDetail, len(orders))
	for i, o := range orders {
		details[i] = toOrderDetail(o)
	}
	return details, total, nil
}

// TransitionRequest 管理端订单流转请求
// 三个字段均可选，至少提供一个
type TransitionRequest struct {
	Status         string // 目标订单状态
	PaymentStatus  string // 目标支付状态
	TrackingNumber string // 物流单号
}

// Transition 管理端手工流转订单
// 合法性由领域状态机与交叉校验保证，非法组合整体拒绝
func (uc *AdminOrdersUseCase) Transition(ctx context.Context, orderNo string, req TransitionRequest) (*OrderDetail, error) {
	if req.Status == "" && req.PaymentStatus == "" && req.TrackingNumber == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "至少提供status/payment_status/tracking_number之一")
	}

	var status order.Status
	if req.Status != "" {
		s, ok := order.ParseStatus(req.Status)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "未知的订单状态: "+req.Status)
		}
		status = s
	}

	var paymentStatus order.PaymentStatus
	if req.PaymentStatus != "" {
		ps, ok := order.ParsePaymentStatus(req.PaymentStatus)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "未知的支付状态: "+req.PaymentStatus)
		}
		paymentStatus = ps
	}

	o, err := uc.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if err := o.ApplyAdminTransition(status, paymentStatus, req.TrackingNumber); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	logger.L().Info("管理端订单流转",
		zap.String("order_no", orderNo),
		zap.String("from", from.String()),
		zap.String("to", o.Status.String()),
		zap.String("payment_status", o.PaymentStatus.String()))

	return toOrderDetail(o), nil
}

// AdjustmentInfo 库存台账DTO
type AdjustmentInfo struct {
	ProductID uint   `json:"product_id"`
	Delta     int    `json:"delta"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}

// Adjustments 查询订单关联的库存台账（审计用）
// 每一次扣减/回补在台账中都有一行，Before/After可还原库存变动过程
func (uc *AdminOrdersUseCase) Adjustments(ctx context.Context, orderNo string) ([]*AdjustmentInfo, error) {
	o, err := uc.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}

	adjustments, err := uc.ledger.ListAdjustments(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	infos := make([]*AdjustmentInfo, len(adjustments))
	for i, a := range adjustments {
		infos[i] = &AdjustmentInfo{
			ProductID: a.ProductID,
			Delta:     a.Delta,
			Before:    a.Before,
			After:     a.After,
			Reason:    string(a.Reason),
			CreatedAt: a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return infos, nil
}
