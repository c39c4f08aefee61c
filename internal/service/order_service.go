package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/order"
	"github.com/example/goshop/internal/summary"
)

// OrderService 订单的查询与后台管理：列表、详情、状态流转、删除、摘要重渲染。
// 这里没有新的业务规则，状态转移表是唯一的裁决点。
type OrderService struct {
	repo order.Repository
	shop *config.ShopConfig
}

// NewOrderService 创建订单服务
func NewOrderService(repo order.Repository, shop *config.ShopConfig) *OrderService {
	return &OrderService{repo: repo, shop: shop}
}

// ListRecent 查询最新的订单记录
func (s *OrderService) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	return s.repo.ListRecent(ctx, limit)
}

// ListBySession 查询某个会话的历史订单
func (s *OrderService) ListBySession(ctx context.Context, sess string) ([]*order.Order, error) {
	return s.repo.ListBySession(ctx, sess)
}

// Get 订单详情（含明细）
func (s *OrderService) Get(ctx context.Context, id int64) (*order.Order, []*order.OrderItem, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}
	items, err := s.repo.ListItems(ctx, o.ID)
	if err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

// UpdateStatus 员工推进订单状态。转移表以外的跳转直接拒绝，订单保持原状态；
// 落库时带旧状态做条件更新，两个员工并发改同一单时输掉的那个也会收到拒绝。
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, to order.Status) (*order.Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: 未知状态 %q", ErrInvalidTransition, string(to))
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !order.CanTransition(o.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	ok, err := s.repo.UpdateStatus(ctx, id, o.Status, to)
	if err != nil {
		GetMonitor().RecordDBError()
		return nil, err
	}
	if !ok {
		// 条件更新没命中说明状态已被并发修改
		return nil, fmt.Errorf("%w: 订单状态已变化，请刷新后重试", ErrInvalidTransition)
	}
	o.Status = to
	return o, nil
}

// Delete 删除订单及明细（后台清理用）
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// RefreshSummary 显式重渲染摘要并覆盖落库。渲染是纯函数，
// 输入没变时这就是一次幂等覆盖。
func (s *OrderService) RefreshSummary(ctx context.Context, id int64) (string, error) {
	o, items, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	text := summary.Render(s.shop, o, items)
	if err := s.repo.UpdateSummary(ctx, o.ID, text); err != nil {
		return "", err
	}
	return text, nil
}

// MessageLink 生成外部消息通道的深链，文本用的是落库的摘要
func (s *OrderService) MessageLink(ctx context.Context, id int64) (string, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	text := o.SummaryText
	if text == "" {
		// 极端情况下摘要两次回写都失败过，现场补渲染一次
		items, err := s.repo.ListItems(ctx, o.ID)
		if err != nil {
			return "", err
		}
		text = summary.Render(s.shop, o, items)
	}
	return summary.DeepLink(s.shop.MessageBase, text), nil
}
