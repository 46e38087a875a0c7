package main

import (
	"github.com/xiebiao/gearstore/internal/application/payment"
	"github.com/xiebiao/gearstore/internal/domain/cart"
	"github.com/xiebiao/gearstore/internal/infrastructure/config"
	"github.com/xiebiao/gearstore/internal/infrastructure/persistence/mysql"
	redisstore "github.com/xiebiao/gearstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/gearstore/pkg/jwt"

	goredis "github.com/redis/go-redis/v9"
)

// provideJWTManager 从配置构建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideCartStore 购物车存储（TTL来自配置）
func provideCartStore(cfg *config.Config, client *goredis.Client) cart.Repository {
	return redisstore.NewCartStore(client, cfg.Redis.CartTTL)
}

// provideWebhookSecret 支付回调签名密钥
func provideWebhookSecret(cfg *config.Config) payment.WebhookSecret {
	return payment.WebhookSecret(cfg.Payment.WebhookSecret)
}

// provideTxManager 事务管理器（接口形式供应用层使用）
func provideTxManager(txManager *mysql.TxManager) payment.TxManager {
	return txManager
}
