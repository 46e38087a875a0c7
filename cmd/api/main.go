package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/xiebiao/gearstore/docs"
	"github.com/xiebiao/gearstore/internal/infrastructure/config"
	"github.com/xiebiao/gearstore/internal/infrastructure/notification"
	"github.com/xiebiao/gearstore/pkg/logger"
	"github.com/xiebiao/gearstore/pkg/metrics"
	"github.com/xiebiao/gearstore/pkg/tracing"
)

// @title           GearStore API
// @version         1.0
// @description     游戏外设商城：商品、购物车、下单、库存台账与支付回调
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式：Bearer <token>
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	if _, err := logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	}); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	// 3. 初始化指标
	metrics.InitMetrics()

	// 4. 初始化链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("gearstore", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.L().Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	// 5. 依赖注入（wire生成）
	app, err := initApp(cfg)
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer app.Close()

	// 6. 启动订单事件消费者（MQ启用时）
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if cfg.MQ.Enabled {
		consumer, err := notification.NewOrderEventConsumer(cfg)
		if err != nil {
			log.Fatalf("初始化订单事件消费者失败: %v", err)
		}
		defer consumer.Close()
		go func() {
			if err := consumer.Run(consumerCtx); err != nil {
				logger.L().Error("订单事件消费者退出", zap.Error(err))
			}
		}()
	}

	// 7. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.L().Info("服务启动",
			zap.Int("port", cfg.Server.Port),
			zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 8. 优雅停机：等待信号，给在途请求10秒收尾
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("收到停机信号，开始优雅停机")
	stopConsumer()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("优雅停机失败", zap.Error(err))
	}

	logger.L().Info("服务已停止")
}
