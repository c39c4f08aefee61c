package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/example/goshop/internal/datamodels/order"
)

// OrderEventsQueue 订单事件队列名，notify-worker 从这里消费
const OrderEventsQueue = "order_events"

// OrderEvent 订单创建事件，发给通知侧的最小数据集
type OrderEvent struct {
	Kind        string    `json:"kind"` // order_created
	OrderID     int64     `json:"order_id"`
	InvoiceNo   int64     `json:"invoice_no"`
	Session     string    `json:"session"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationPublisher 通知发布方。投递是 fire-and-forget 的：
// 这里的任何失败都不允许影响已经落库的订单。
type NotificationPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

// MQNotifier 基于 RabbitMQ 的通知发布实现
type MQNotifier struct {
	conn *amqp.Connection
}

// NewMQNotifier 创建 MQ 通知发布器
func NewMQNotifier(conn *amqp.Connection) *MQNotifier {
	return &MQNotifier{conn: conn}
}

// PublishOrderCreated 把订单创建事件写进队列
func (n *MQNotifier) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	ch, err := n.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(OrderEventsQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(&OrderEvent{
		Kind:        "order_created",
		OrderID:     o.ID,
		InvoiceNo:   o.InvoiceNo,
		Session:     o.Session,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	})
	if err != nil {
		return err
	}

	return ch.PublishWithContext(
		ctx,
		"",
		OrderEventsQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
