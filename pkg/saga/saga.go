// Package saga 实现通用的Saga事务框架
//
// Saga模式核心思想：
// 1. 将跨存储的长事务拆分为多个本地短事务
// 2. 每个短事务有对应的补偿操作
// 3. 如果某步失败，按逆序执行已完成步骤的补偿操作
//
// 本项目的下单流程横跨MySQL（订单、库存台账）和Redis（购物车），
// 没有跨存储事务可用，因此用Saga + 补偿替代。
package saga

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/gearstore/pkg/logger"
)

// Step 表示Saga中的一个步骤
//
// 设计要点：
// 1. Action是正向操作（如创建订单、扣减库存）
// 2. Compensate是补偿操作（如取消订单、恢复库存）
// 3. 每个操作都必须支持幂等（允许重试）
type Step struct {
	Name       string                          // 步骤名称（用于日志和调试）
	Action     func(ctx context.Context) error // 正向操作
	Compensate func(ctx context.Context) error // 补偿操作
}

// Saga 表示一个Saga事务
type Saga struct {
	steps    []Step        // 所有步骤
	executed []Step        // 已执行的步骤（用于补偿）
	timeout  time.Duration // 整体超时时间
}

// NewSaga 创建一个新的Saga事务
//
// 示例：
//
//	sg := saga.NewSaga(30 * time.Second)
//	sg.AddStep("创建订单", createOrder, cancelOrder)
//	sg.AddStep("扣减库存", deductStock, restoreStock)
//	err := sg.Execute(ctx)
func NewSaga(timeout time.Duration) *Saga {
	return &Saga{
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 添加一个Saga步骤
//
// 约束：
// 1. 步骤按添加顺序执行，按逆序补偿
// 2. Action和Compensate都可以为nil（如最后一步通常无需补偿）
// 3. 补偿操作必须完全独立，不依赖后续步骤的结果
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga事务
//
// 执行流程：
// 1. 按顺序执行每个步骤的Action
// 2. 如果某步失败，逆序执行已完成步骤的Compensate
// 3. 超时也会触发补偿（补偿使用新Context，避免补偿本身被超时打断）
//
// Saga保证"最终一致性"，补偿期间数据可能处于中间状态。
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		select {
		case <-ctx.Done():
			s.compensate(context.Background())
			return fmt.Errorf("saga超时: %w", ctx.Err())
		default:
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.Background())
				return fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err)
			}
		}

		// 记录已执行的步骤（用于补偿）
		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 执行补偿流程
//
// 补偿原则：
// 1. 按逆序执行已完成步骤的Compensate
// 2. 即使某个Compensate失败，也继续执行后续补偿（尽最大努力）
// 3. 补偿失败记录日志，需人工对账介入
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]

		if step.Compensate != nil {
			if err := step.Compensate(ctx); err != nil {
				// 补偿失败不中断，台账与幂等键保证后续可安全重放
				logger.L().Error("saga补偿失败，需人工介入",
					zap.String("step", step.Name),
					zap.Error(err),
				)
			}
		}
	}

	s.executed = nil
}
