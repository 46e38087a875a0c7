package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/gearstore/internal/domain/user"
	"github.com/xiebiao/gearstore/internal/infrastructure/config"
	"github.com/xiebiao/gearstore/internal/infrastructure/notification"
	"github.com/xiebiao/gearstore/internal/interface/http/handler"
	"github.com/xiebiao/gearstore/internal/interface/http/middleware"
	"github.com/xiebiao/gearstore/pkg/response"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App 应用组装结果
// 所有Handler与中间件由wire注入，main只负责启动与停机
type App struct {
	cfg *config.Config

	userHandler       *handler.UserHandler
	productHandler    *handler.ProductHandler
	cartHandler       *handler.CartHandler
	orderHandler      *handler.OrderHandler
	adminOrderHandler *handler.AdminOrderHandler
	webhookHandler    *handler.WebhookHandler

	authMiddleware *middleware.AuthMiddleware
	publisher      *notification.OrderPublisher
}

// NewApp 组装应用
func NewApp(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	adminOrderHandler *handler.AdminOrderHandler,
	webhookHandler *handler.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
	publisher *notification.OrderPublisher,
) *App {
	return &App{
		cfg:               cfg,
		userHandler:       userHandler,
		productHandler:    productHandler,
		cartHandler:       cartHandler,
		orderHandler:      orderHandler,
		adminOrderHandler: adminOrderHandler,
		webhookHandler:    webhookHandler,
		authMiddleware:    authMiddleware,
		publisher:         publisher,
	}
}

// Engine 构建Gin引擎并注册全部路由
func (a *App) Engine() *gin.Engine {
	if a.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.Metrics())

	if a.cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst)
		r.Use(limiter.Limit())
	}

	a.registerRoutes(r)
	return r
}

// registerRoutes 注册路由
// 路由分三类：公开、登录态、管理端（登录态+admin角色）
func (a *App) registerRoutes(r *gin.Engine) {
	// 健康检查与运维端点
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 用户模块（公开）
		users := v1.Group("/users")
		{
			users.POST("/register", a.userHandler.Register)
			users.POST("/login", a.userHandler.Login)
			users.POST("/logout", a.authMiddleware.RequireAuth(), a.userHandler.Logout)
		}

		// 商品模块（公开查询）
		products := v1.Group("/products")
		{
			products.GET("", a.productHandler.List)
			products.GET("/:id", a.productHandler.Get)
		}

		// 支付回调（签名鉴权，不走登录态）
		v1.POST("/payments/webhook", a.webhookHandler.HandlePaymentEvent)

		// 登录态接口
		authorized := v1.Group("")
		authorized.Use(a.authMiddleware.RequireAuth())
		{
			authorized.GET("/cart", a.cartHandler.Get)
			authorized.DELETE("/cart", a.cartHandler.Clear)
			authorized.POST("/cart/items", a.cartHandler.AddItem)
			authorized.DELETE("/cart/items/:product_id", a.cartHandler.RemoveItem)

			authorized.POST("/checkout", a.orderHandler.Checkout)
			authorized.GET("/orders", a.orderHandler.List)
			authorized.GET("/orders/:order_no", a.orderHandler.Get)
		}

		// 管理端接口（登录态+admin角色）
		admin := v1.Group("/admin")
		admin.Use(a.authMiddleware.RequireAuth(), a.authMiddleware.RequireRole(user.RoleAdmin))
		{
			admin.POST("/products", a.productHandler.Publish)
			admin.GET("/orders", a.adminOrderHandler.List)
			admin.PATCH("/orders/:order_no", a.adminOrderHandler.Transition)
			admin.GET("/orders/:order_no/adjustments", a.adminOrderHandler.Adjustments)
		}
	}
}

// Close 释放应用持有的外部连接
func (a *App) Close() error {
	return a.publisher.Close()
}
