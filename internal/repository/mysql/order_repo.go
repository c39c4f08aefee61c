package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/goshop/internal/datamodels/order"
)

// invoiceCounter 单据号计数器，全表只有 ID=1 一行。
// 发号必须走数据库的行锁，应用层"读最大值加一"在并发结账下会撞号。
type invoiceCounter struct {
	ID    int64 `gorm:"primaryKey"`
	Value int64 `gorm:"not null"`
}

func (invoiceCounter) TableName() string {
	return "invoice_counters"
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepo{db: db}
}

// CreateWithItems 发号 + 落订单 + 落明细，同一事务内完成。
// 计数器行被 FOR UPDATE 锁住，并发结账在这里串行化，单据号因此唯一且按提交顺序递增；
// 事务回滚时号随之回收，不会留下有号无单的"幽灵单据"。
func (r *orderRepo) CreateWithItems(ctx context.Context, o *order.Order, items []*order.OrderItem) error {
	if len(items) == 0 {
		return errors.New("订单至少要有一条明细")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) 锁定计数器行，首次使用时创建
		var c invoiceCounter
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&c, 1).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c = invoiceCounter{ID: 1}
				if err := tx.Create(&c).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}

		// 2) 取号
		c.Value++
		if err := tx.Save(&c).Error; err != nil {
			return err
		}
		o.InvoiceNo = c.Value

		// 3) 落订单
		if err := tx.Create(o).Error; err != nil {
			return err
		}

		// 4) 落明细
		for _, it := range items {
			it.OrderID = o.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListItems(ctx context.Context, orderID int64) ([]*order.OrderItem, error) {
	var list []*order.OrderItem
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListBySession(ctx context.Context, session string) ([]*order.Order, error) {
	var list []*order.Order
	if err := r.db.WithContext(ctx).
		Where("session = ?", session).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []*order.Order
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) UpdateSummary(ctx context.Context, id int64, text string) error {
	return r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ?", id).
		Update("summary_text", text).Error
}

// UpdateStatus 条件更新，WHERE 里带上旧状态，并发下输掉的那次写影响 0 行
func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, from, to order.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete 删除订单及其明细
func (r *orderRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order.Order{}, id).Error
	})
}
