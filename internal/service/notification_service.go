package service

import (
	"context"
	"fmt"

	"github.com/example/goshop/internal/datamodels/notification"
)

// NotificationService 通知派发流水（封装基础的读写）
type NotificationService struct {
	repo notification.Repository
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// ListRecent 最近的派发记录
func (s *NotificationService) ListRecent(ctx context.Context, limit int) ([]*notification.Notification, error) {
	return s.repo.ListRecent(ctx, limit)
}

// RecordOrderEvent 把一条已消费的订单事件记成流水
func (s *NotificationService) RecordOrderEvent(ctx context.Context, ev *OrderEvent) (*notification.Notification, error) {
	n := &notification.Notification{
		OrderID: ev.OrderID,
		Kind:    ev.Kind,
		Body: fmt.Sprintf("单据号 #%06d 金额 ¥%.2f 状态 %s",
			ev.InvoiceNo, float64(ev.TotalAmount)/100, ev.Status),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
