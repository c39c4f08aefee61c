package notification

import (
	"context"
	"time"
)

// Notification 通知派发记录，由 notify-worker 消费 MQ 消息后写入，
// 只是事后查账用的流水，写入失败不会影响任何订单
type Notification struct {
	ID        uint64    `gorm:"primaryKey"`
	OrderID   int64     `gorm:"index;not null"`
	Kind      string    `gorm:"size:32;not null"` // 例如 order_created
	Body      string    `gorm:"size:512;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// Repository 通知记录仓储接口
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListRecent(ctx context.Context, limit int) ([]*Notification, error)
}
