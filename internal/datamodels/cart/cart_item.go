package cart

import (
	"context"
	"time"
)

// CartItem 购物车行：同一会话同一商品只有一行，重复加购走数量累加。
// 价格不落在这里，展示时永远回读商品表，购物车是"购物清单"而不是"锁价小票"。
type CartItem struct {
	ID        int64     `gorm:"primaryKey"`
	Session   string    `gorm:"size:64;not null;uniqueIndex:idx_cart_session_product"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_session_product"`
	Quantity  int64     `gorm:"not null"` // 永远 >= 1，<=0 的请求在上层被解释为删除
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository 购物车仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*CartItem, error)
	// GetBySessionAndProduct 未找到时返回 (nil, nil)，方便合并加购逻辑
	GetBySessionAndProduct(ctx context.Context, session string, productID int64) (*CartItem, error)
	ListBySession(ctx context.Context, session string) ([]*CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, id int64) error
	DeleteBySession(ctx context.Context, session string) error
}
