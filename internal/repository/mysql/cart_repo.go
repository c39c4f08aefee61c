package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/example/goshop/internal/datamodels/cart"
)

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepo{db: db}
}

func (r *cartRepo) GetByID(ctx context.Context, id int64) (*cart.CartItem, error) {
	var item cart.CartItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) GetBySessionAndProduct(ctx context.Context, session string, productID int64) (*cart.CartItem, error) {
	var item cart.CartItem
	err := r.db.WithContext(ctx).
		Where("session = ? AND product_id = ?", session, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) ListBySession(ctx context.Context, session string) ([]*cart.CartItem, error) {
	var list []*cart.CartItem
	if err := r.db.WithContext(ctx).
		Where("session = ?", session).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *cartRepo) Save(ctx context.Context, item *cart.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&cart.CartItem{}, id).Error
}

func (r *cartRepo) DeleteBySession(ctx context.Context, session string) error {
	return r.db.WithContext(ctx).
		Where("session = ?", session).
		Delete(&cart.CartItem{}).Error
}
