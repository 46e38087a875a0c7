package saga

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestSaga_Execute_Success 测试所有步骤成功的场景
func TestSaga_Execute_Success(t *testing.T) {
	executed := make([]string, 0)

	sg := NewSaga(5 * time.Second)

	sg.AddStep("创建订单",
		func(ctx context.Context) error {
			executed = append(executed, "创建订单")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "取消订单")
			return nil
		},
	)

	sg.AddStep("扣减库存",
		func(ctx context.Context) error {
			executed = append(executed, "扣减库存")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "恢复库存")
			return nil
		},
	)

	err := sg.Execute(context.Background())
	if err != nil {
		t.Fatalf("Saga执行失败: %v", err)
	}

	if len(executed) != 2 {
		t.Errorf("期望执行2个步骤，实际执行%d个", len(executed))
	}

	if executed[0] != "创建订单" || executed[1] != "扣减库存" {
		t.Errorf("执行顺序错误: %v", executed)
	}
}

// TestSaga_Execute_FailureAndCompensate 测试步骤失败触发逆序补偿
func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	executed := make([]string, 0)

	sg := NewSaga(5 * time.Second)

	sg.AddStep("创建订单",
		func(ctx context.Context) error {
			executed = append(executed, "创建订单")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "取消订单")
			return nil
		},
	)

	sg.AddStep("扣减库存",
		func(ctx context.Context) error {
			executed = append(executed, "扣减库存")
			return errors.New("库存不足")
		},
		func(ctx context.Context) error {
			executed = append(executed, "恢复库存")
			return nil
		},
	)

	err := sg.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该失败但返回成功")
	}

	// 正向2步（第2步失败） + 补偿1步（只补偿已完成的步骤）
	expected := []string{"创建订单", "扣减库存", "取消订单"}

	if len(executed) != len(expected) {
		t.Fatalf("期望执行%d个步骤，实际执行%d个: %v", len(expected), len(executed), executed)
	}

	for i, step := range expected {
		if executed[i] != step {
			t.Errorf("步骤%d期望'%s'，实际'%s'", i, step, executed[i])
		}
	}
}

// TestSaga_Execute_CompensateErrorContinues 测试补偿失败不中断后续补偿
func TestSaga_Execute_CompensateErrorContinues(t *testing.T) {
	executed := make([]string, 0)

	sg := NewSaga(5 * time.Second)

	sg.AddStep("步骤A",
		func(ctx context.Context) error {
			executed = append(executed, "A")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "补偿A")
			return nil
		},
	)

	sg.AddStep("步骤B",
		func(ctx context.Context) error {
			executed = append(executed, "B")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "补偿B")
			return errors.New("补偿B失败")
		},
	)

	sg.AddStep("步骤C",
		func(ctx context.Context) error {
			executed = append(executed, "C")
			return errors.New("C失败")
		},
		nil,
	)

	err := sg.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该失败但返回成功")
	}

	// 补偿B失败后仍然执行补偿A
	expected := []string{"A", "B", "C", "补偿B", "补偿A"}
	if len(executed) != len(expected) {
		t.Fatalf("期望%v，实际%v", expected, executed)
	}
	for i := range expected {
		if executed[i] != expected[i] {
			t.Errorf("步骤%d期望'%s'，实际'%s'", i, expected[i], executed[i])
		}
	}
}

// TestSaga_Execute_Timeout 测试超时触发补偿
func TestSaga_Execute_Timeout(t *testing.T) {
	executed := make([]string, 0)

	sg := NewSaga(50 * time.Millisecond)

	sg.AddStep("慢步骤",
		func(ctx context.Context) error {
			executed = append(executed, "慢步骤")
			time.Sleep(100 * time.Millisecond)
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "补偿慢步骤")
			return nil
		},
	)

	sg.AddStep("后续步骤",
		func(ctx context.Context) error {
			executed = append(executed, "后续步骤")
			return nil
		},
		nil,
	)

	err := sg.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga超时应该返回错误")
	}

	// 慢步骤执行完才检测到超时，后续步骤不执行，已执行的被补偿
	expected := []string{"慢步骤", "补偿慢步骤"}
	if len(executed) != len(expected) {
		t.Fatalf("期望%v，实际%v", expected, executed)
	}
}
