package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/goshop/internal/datamodels/staff"
)

type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepository 创建员工仓储
func NewStaffRepository(db *gorm.DB) staff.Repository {
	return &staffRepo{db: db}
}

func (r *staffRepo) GetByID(ctx context.Context, id int64) (*staff.Staff, error) {
	var s staff.Staff
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepo) GetByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	var s staff.Staff
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepo) Create(ctx context.Context, s *staff.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}
