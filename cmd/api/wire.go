//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	appcart "github.com/xiebiao/gearstore/internal/application/cart"
	appcheckout "github.com/xiebiao/gearstore/internal/application/checkout"
	apporder "github.com/xiebiao/gearstore/internal/application/order"
	apppayment "github.com/xiebiao/gearstore/internal/application/payment"
	appproduct "github.com/xiebiao/gearstore/internal/application/product"
	appuser "github.com/xiebiao/gearstore/internal/application/user"
	"github.com/xiebiao/gearstore/internal/domain/product"
	"github.com/xiebiao/gearstore/internal/domain/user"
	"github.com/xiebiao/gearstore/internal/infrastructure/config"
	"github.com/xiebiao/gearstore/internal/infrastructure/notification"
	"github.com/xiebiao/gearstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/gearstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/gearstore/internal/interface/http/handler"
	"github.com/xiebiao/gearstore/internal/interface/http/middleware"
)

// initApp 组装整个应用
// 依赖链：Repository ← Service ← UseCase ← Handler ← App
func initApp(cfg *config.Config) (*App, error) {
	wire.Build(
		// 基础设施
		mysql.NewDB,
		redis.NewClient,
		mysql.NewTxManager,
		mysql.NewUserRepository,
		mysql.NewProductRepository,
		mysql.NewOrderRepository,
		mysql.NewPaymentEventRepository,
		mysql.NewInventoryLedger,
		redis.NewSessionStore,
		provideCartStore,
		provideJWTManager,
		provideWebhookSecret,
		provideTxManager,
		notification.NewOrderPublisher,
		wire.Bind(new(appcheckout.Notifier), new(*notification.OrderPublisher)),

		// 领域服务
		user.NewService,
		product.NewService,

		// 应用层用例
		appuser.NewRegisterUseCase,
		appuser.NewLoginUseCase,
		appuser.NewLogoutUseCase,
		appproduct.NewPublishProductUseCase,
		appproduct.NewListProductsUseCase,
		appcart.NewUseCase,
		appcheckout.NewUseCase,
		apporder.NewListOrdersUseCase,
		apporder.NewAdminOrdersUseCase,
		apppayment.NewWebhookUseCase,

		// 接口层
		handler.NewUserHandler,
		handler.NewProductHandler,
		handler.NewCartHandler,
		handler.NewOrderHandler,
		handler.NewAdminOrderHandler,
		handler.NewWebhookHandler,
		middleware.NewAuthMiddleware,

		NewApp,
	)
	return nil, nil
}
