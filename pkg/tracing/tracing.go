// Package tracing 提供基于OpenTelemetry的链路追踪
//
// 下单流程横跨Redis购物车、MySQL订单/库存、RabbitMQ通知，
// 通过Span可以看到每一步的耗时与失败点。
//
// 核心概念：
// - Trace：一个完整的请求链路（所有Span共享同一个TraceID）
// - Span：一个操作单元（操作名、起止时间、状态）
// - Propagator：跨进程传递TraceID/SpanID（W3C traceparent头）
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: OTLP gRPC端点（如 localhost:4317）
//
// 返回shutdown函数，程序退出前调用，确保最后一批Span刷出。
//
// 采样策略：AlwaysSample（100%采样），适合开发/测试环境；
// 生产环境建议TraceIDRatioBased按比例采样。
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// OTLP gRPC Exporter（厂商中立，可对接Jaeger/Zipkin/Datadog）
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 生产环境应启用TLS
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// Resource描述产生遥测数据的实体，属性附加到所有Span上
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		// BatchSpanProcessor批量发送Span（性能优于SimpleSpanProcessor）
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 全局Provider：业务代码直接otel.Tracer()获取，无需逐层传递
	otel.SetTracerProvider(tp)

	// W3C Trace Context + Baggage跨服务传播
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 约定：
// 1. Span命名使用操作名（Checkout、DeductStock），动态值放属性
// 2. 必须使用返回的ctx调用下游函数，否则无法构建调用树
//
// 示例：
//
//	func (uc *CheckoutUseCase) Execute(ctx context.Context) error {
//	    ctx, span := tracing.StartSpan(ctx, "gearstore", "Checkout")
//	    defer span.End()
//	    ...
//	}
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于日志关联）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
