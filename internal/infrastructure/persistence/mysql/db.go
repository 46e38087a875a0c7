package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/gearstore/internal/infrastructure/config"
	"github.com/xiebiao/gearstore/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（生产环境应使用版本化迁移脚本）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.L().Info("数据库连接成功", zap.String("host", cfg.Database.Host))

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&InventoryAdjustmentModel{},
		&PaymentEventModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	Role      int            `gorm:"type:tinyint;default:1;not null;comment:角色(1买家2管理员)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// ProductModel GORM商品模型
// 设计说明：
// 1. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 2. SKU有唯一索引，防止重复
// 3. Quantity只由库存台账的原子UPDATE变更，不参与普通Save
// 4. 复合索引优化列表查询性能
type ProductModel struct {
	ID            uint           `gorm:"primaryKey"`
	SKU           string         `gorm:"uniqueIndex;size:32;not null;comment:商品编码"`
	Name          string         `gorm:"index:idx_search;size:200;not null;comment:商品名称"`
	Brand         string         `gorm:"index:idx_search;size:100;comment:品牌"`
	Category      string         `gorm:"index;size:50;comment:分类"`
	Price         int64          `gorm:"index:idx_list;not null;comment:价格(分)"`
	TrackQuantity bool           `gorm:"default:true;comment:是否启用库存管控"`
	Quantity      int            `gorm:"default:0;comment:可售库存数量"`
	ImageURL      string         `gorm:"size:500;comment:商品主图URL"`
	Description   string         `gorm:"type:text;comment:商品描述"`
	CreatedAt     time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// OrderModel GORM订单模型
// 设计说明：
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引（业务主键）
// 3. 订单状态与支付状态分别建索引（管理端列表按状态过滤）
// 4. 无软删除：订单永不删除（审计要求）
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	Subtotal        int64            `gorm:"not null;comment:商品小计(分)"`
	Tax             int64            `gorm:"default:0;comment:税费(分)"`
	Shipping        int64            `gorm:"default:0;comment:运费(分)"`
	Discount        int64            `gorm:"default:0;comment:优惠金额(分)"`
	Total           int64            `gorm:"not null;comment:应付总额(分)"`
	Status          int              `gorm:"index;type:tinyint;default:1;comment:订单状态(1待支付2已确认3处理中4已发货5已送达6已取消7已退款)"`
	PaymentStatus   int              `gorm:"index;type:tinyint;default:1;comment:支付状态(1待支付2已支付3支付失败4已退款)"`
	PaymentID       string           `gorm:"size:64;comment:支付平台单号"`
	TrackingNumber  string           `gorm:"size:64;comment:物流单号"`
	ShippingAddress string           `gorm:"size:500;comment:收货地址快照"`
	BillingAddress  string           `gorm:"size:500;comment:账单地址快照"`
	PaymentMethod   string           `gorm:"size:32;comment:支付方式"`
	CancelReason    string           `gorm:"size:200;comment:取消原因"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"` // 一对多关联
	CreatedAt       time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 设计说明：SKU/Name/Price均为下单时刻的快照
type OrderItemModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null;comment:订单ID"`
	ProductID uint   `gorm:"index;not null;comment:商品ID"`
	SKU       string `gorm:"size:32;not null;comment:商品编码快照"`
	Name      string `gorm:"size:200;not null;comment:商品名称快照"`
	Quantity  int    `gorm:"not null;comment:购买数量"`
	Price     int64  `gorm:"not null;comment:下单时单价(分)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

// InventoryAdjustmentModel GORM库存台账模型
// 设计说明：
// 1. (order_id, product_id, reason)复合唯一索引是扣减/回补的幂等键
// 2. 只插入不更新，Before/After记录变动前后数量
type InventoryAdjustmentModel struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uint      `gorm:"uniqueIndex:idx_adjustment_idem;not null;comment:商品ID"`
	OrderID   uint      `gorm:"uniqueIndex:idx_adjustment_idem;not null;comment:订单ID"`
	Reason    string    `gorm:"uniqueIndex:idx_adjustment_idem;size:32;not null;comment:变动原因"`
	Delta     int       `gorm:"not null;comment:变动量(扣减为负)"`
	Before    int       `gorm:"not null;comment:变动前数量"`
	After     int       `gorm:"not null;comment:变动后数量"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (InventoryAdjustmentModel) TableName() string {
	return "inventory_adjustments"
}

// PaymentEventModel GORM支付事件模型
// 设计说明：EventID唯一索引保证同一平台事件至多处理一次（webhook去重）
type PaymentEventModel struct {
	ID            uint      `gorm:"primaryKey"`
	EventID       string    `gorm:"uniqueIndex;size:64;not null;comment:支付平台事件ID"`
	Type          string    `gorm:"size:64;not null;comment:事件类型"`
	OrderNo       string    `gorm:"index;size:32;comment:关联订单号"`
	PayloadDigest string    `gorm:"size:64;comment:报文sha256摘要"`
	ProcessedAt   time.Time `gorm:"comment:处理时间"`
}

// TableName 指定表名
func (PaymentEventModel) TableName() string {
	return "payment_events"
}
