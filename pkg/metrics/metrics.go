// Package metrics 提供基于Prometheus的指标收集
//
// 指标命名规范：
// - Counter以`_total`结尾（checkouts_total）
// - Histogram以单位结尾（http_request_duration_seconds）
// - Gauge使用现在时态（http_requests_in_progress）
//
// 标签避免高基数维度（不要用user_id、order_no作为标签）。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/checkout）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 下单业务指标

	// CheckoutsTotal 下单总数（Counter）
	// 标签：result（success/failure）
	CheckoutsTotal *prometheus.CounterVec

	// CheckoutDuration 下单耗时（Histogram）
	CheckoutDuration prometheus.Histogram

	// 支付回调指标

	// PaymentEventsTotal 支付事件处理总数（Counter）
	// 标签：type（payment.succeeded等）、result（applied/duplicate/ignored/failure）
	PaymentEventsTotal *prometheus.CounterVec

	// 库存台账指标

	// InventoryAdjustmentsTotal 库存台账写入总数（Counter）
	// 标签：reason（DEDUCT_ON_ORDER/RESTORE_ON_REFUND/MANUAL）
	InventoryAdjustmentsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数（Counter）
	// 标签：queue（队列名称）、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry。
// 使用promauto.New*自动注册，Histogram的Buckets按业务场景定制。
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 下单业务指标
	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "下单总数",
		},
		[]string{"result"},
	)

	CheckoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "checkout_duration_seconds",
			Help: "下单耗时（秒）",
			// 下单涉及多个存储操作，耗时偏长
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	// 支付回调指标
	PaymentEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_events_total",
			Help: "支付事件处理总数",
		},
		[]string{"type", "result"},
	)

	// 库存台账指标
	InventoryAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_adjustments_total",
			Help: "库存台账写入总数",
		},
		[]string{"reason"},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}
