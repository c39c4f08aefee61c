package order

import (
	"context"
	"time"
)

// Order 订单模型。结账时一次性创建，除 Status 和 SummaryText 外不可变：
// TotalAmount 是结账瞬间的快照，之后商品改价不会影响它。
type Order struct {
	ID          int64  `gorm:"primaryKey"`
	InvoiceNo   int64  `gorm:"uniqueIndex;not null"` // 全局唯一且单调递增的单据号
	Session     string `gorm:"size:64;index;not null"`
	TotalAmount int64  `gorm:"not null"` // 分
	Status      Status `gorm:"type:varchar(20);index;not null"`

	// 收货信息，下单时可以不填，摘要里会以"请补充"占位
	CustomerName    string `gorm:"size:64"`
	CustomerPhone   string `gorm:"size:32"`
	CustomerAddress string `gorm:"size:255"`

	// SummaryText 订单创建后立刻渲染并回写的摘要文本，之后只有显式重渲染才会覆盖
	SummaryText string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem 订单明细，商品名和单价是结账瞬间的快照，商品表之后怎么改都不影响
type OrderItem struct {
	ID          int64  `gorm:"primaryKey"`
	OrderID     int64  `gorm:"index;not null"`
	ProductID   int64  `gorm:"index;not null"`
	ProductName string `gorm:"size:128;not null"`
	Quantity    int64  `gorm:"not null"`
	UnitPrice   int64  `gorm:"not null"` // 分
}

// Subtotal 行小计
func (it *OrderItem) Subtotal() int64 {
	return it.Quantity * it.UnitPrice
}

// Repository 订单仓储接口
type Repository interface {
	// CreateWithItems 在同一个事务里分配单据号、落订单、落明细，任一步失败整体回滚，
	// 不会出现有号无单或有单无明细的中间态
	CreateWithItems(ctx context.Context, o *Order, items []*OrderItem) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListItems(ctx context.Context, orderID int64) ([]*OrderItem, error)
	ListBySession(ctx context.Context, session string) ([]*Order, error)
	ListRecent(ctx context.Context, limit int) ([]*Order, error)
	// UpdateSummary 幂等覆盖摘要文本
	UpdateSummary(ctx context.Context, id int64, text string) error
	// UpdateStatus 条件更新：只有当前状态仍是 from 时才写 to，否则返回 false
	UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error)
	Delete(ctx context.Context, id int64) error
}
