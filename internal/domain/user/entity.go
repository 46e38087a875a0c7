package user

import (
	"time"
)

// Role 用户角色
// 设计说明：
// 1. 显式角色枚举，权限校验统一走Role判断，不做字符串比对
// 2. 使用int类型存储，便于索引和扩展（后续可加运营、客服等角色）
type Role int

const (
	RoleCustomer Role = 1 // 普通买家
	RoleAdmin    Role = 2 // 管理员
)

// String 实现Stringer接口（方便日志输出）
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// IsValid 角色值合法性校验
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User 用户实体（聚合根）
// 设计说明：
// 1. 密码已加密存储（bcrypt），不提供明文访问方法
// 2. 领域实体不依赖GORM tag（infrastructure层的Repository实现时处理映射）
// 3. Role决定可访问的接口范围，由中间件统一校验
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码，新注册用户角色固定为买家
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		Role:      RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UpdateNickname 更新昵称（领域行为）
func (u *User) UpdateNickname(nickname string) {
	u.Nickname = nickname
	u.UpdatedAt = time.Now()
}
