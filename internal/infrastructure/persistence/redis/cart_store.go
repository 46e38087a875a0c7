package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/gearstore/internal/domain/cart"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// CartStore 购物车存储（Redis）
// 设计说明：
// 1. 实现domain/cart/repository.go定义的接口
// 2. 一个用户的购物车整体序列化为一个JSON值，Key设计：cart:user:{user_id}
// 3. 购物车是临时数据，设置TTL自动过期（长期不结账的购物车无保留价值）
// 4. 购物车与订单/库存不在同一存储中，结账流程的补偿设计依赖这一事实
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartStore 创建购物车存储
// ttl<=0时使用默认7天
func NewCartStore(client *redis.Client, ttl time.Duration) cart.Repository {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &CartStore{client: client, ttl: ttl}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:user:%d", userID)
}

// Get 读取用户购物车
// 不存在时返回空购物车（加购前无购物车是正常状态）
func (s *CartStore) Get(ctx context.Context, userID uint) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.NewCart(userID), nil
		}
		return nil, apperrors.Wrap(err, "读取购物车失败")
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// 脏数据按空购物车处理，避免用户被坏数据卡死
		return cart.NewCart(userID), nil
	}

	return &c, nil
}

// Save 整体保存购物车
func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return apperrors.Wrap(err, "序列化购物车失败")
	}

	if err := s.client.Set(ctx, cartKey(c.UserID), data, s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "保存购物车失败")
	}

	return nil
}

// Clear 清空用户购物车（幂等：删除不存在的Key不报错）
func (s *CartStore) Clear(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}
