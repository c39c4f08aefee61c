package staff

import (
	"context"
	"time"
)

// Staff 后台运营账号，订单状态只能由这类账号推进
type Staff struct {
	ID        int64     `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:64;not null"`
	Password  string    `gorm:"size:255;not null"` // 已加密密码
	Salt      string    `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository 员工仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Staff, error)
	GetByUsername(ctx context.Context, username string) (*Staff, error)
	Create(ctx context.Context, s *Staff) error
}
