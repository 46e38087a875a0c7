package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if CheckoutsTotal == nil {
		t.Error("CheckoutsTotal未初始化")
	}
	if PaymentEventsTotal == nil {
		t.Error("PaymentEventsTotal未初始化")
	}
	if InventoryAdjustmentsTotal == nil {
		t.Error("InventoryAdjustmentsTotal未初始化")
	}

	// 重复初始化不应panic（promauto重复注册会panic，靠initialized标记防护）
	InitMetrics()
}

// TestCounterVec 测试带标签的计数
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"result": "success"}

	before := counterVecValue(t, CheckoutsTotal, labels)

	IncCounterVec(CheckoutsTotal, labels)
	IncCounterVec(CheckoutsTotal, labels)

	after := counterVecValue(t, CheckoutsTotal, labels)
	if after-before != 2 {
		t.Errorf("计数错误: before=%f after=%f", before, after)
	}
}

// TestNilSafety 未初始化时的便捷函数不应panic
func TestNilSafety(t *testing.T) {
	IncCounterVec(nil, map[string]string{"a": "b"})
	ObserveHistogram(nil, 1.0)
	SetGaugeVec(nil, map[string]string{"a": "b"}, 1.0)
}

// counterVecValue 读取CounterVec当前值
func counterVecValue(t *testing.T, vec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := vec.With(labels).Write(m); err != nil {
		t.Fatalf("读取指标失败: %v", err)
	}
	return m.GetCounter().GetValue()
}
