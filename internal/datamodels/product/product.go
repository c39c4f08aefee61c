package product

import (
	"context"
	"time"
)

// Product 商品模型，购物车和订单只读它，不回写
type Product struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"size:128;not null"`
	Description string    `gorm:"size:512"`
	Price       int64     `gorm:"not null"` // 分
	Stock       int64     `gorm:"not null"`
	Image       string    `gorm:"size:255"`
	Category    string    `gorm:"size:32;index"` // 分类：men(男士)、women(女士)、accessories(饰品)
	Status      int       `gorm:"index"`         // 0:下架 1:在售
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	StatusOffline = 0
	StatusOnSale  = 1
)

// OnSale 商品是否在售
func (p *Product) OnSale() bool {
	return p.Status == StatusOnSale
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	ListOnline(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
