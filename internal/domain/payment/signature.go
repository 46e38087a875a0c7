package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature 校验webhook签名
// 算法：HMAC-SHA256(secret, rawBody)，签名头格式 "sha256=<hex>"（裸hex也接受）
// 设计说明：
// 1. 对原始报文体计算，任何先解析再序列化的做法都会因字段序不稳定而校验失败
// 2. 使用hmac.Equal常量时间比较，防止时序侧信道探测签名
// 3. 校验失败一律拒绝（fail closed），不做降级放行
func VerifySignature(secret string, body []byte, signatureHeader string) error {
	if signatureHeader == "" {
		return ErrInvalidSignature
	}

	sig := strings.TrimPrefix(signatureHeader, "sha256=")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign 计算报文签名（测试和本地联调用）
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
