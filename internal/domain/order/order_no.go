package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNo 生成订单号
// 格式：GG + 时间戳(14位) + 随机数(6位)，如 GG20260830153045123456
// 设计说明：
// 1. 前缀+时间戳保证人类可读且大致时间有序
// 2. 6位随机数降低同秒冲突概率，数据库UNIQUE索引兜底
// 3. 使用crypto/rand避免多实例部署时的伪随机种子碰撞
func GenerateOrderNo() string {
	ts := time.Now().Format("20060102150405")
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand失败极罕见，退化为纳秒尾数
		return fmt.Sprintf("GG%s%06d", ts, time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("GG%s%06d", ts, n.Int64())
}
