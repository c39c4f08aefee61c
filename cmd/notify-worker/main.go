package main

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/infra/mq"
	"github.com/example/goshop/internal/logger"
	"github.com/example/goshop/internal/repository/mysql"
	"github.com/example/goshop/internal/service"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		zap.L().Fatal("load config failed", zap.Error(err))
	}

	db := mysql.Init(&cfg.MySQL)
	mqConn := mq.Init(&cfg.RabbitMQ)

	notificationSvc := service.NewNotificationService(mysql.NewNotificationRepository(db))

	ch, err := mqConn.Channel()
	if err != nil {
		zap.L().Fatal("failed to open channel", zap.Error(err))
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(service.OrderEventsQueue, true, false, false, false, nil); err != nil {
		zap.L().Fatal("failed to declare queue", zap.Error(err))
	}

	// 手动确认模式（auto-ack=false），处理失败的消息重新入队
	msgs, err := ch.Consume(service.OrderEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		zap.L().Fatal("failed to consume", zap.Error(err))
	}

	zap.L().Info("notify worker started, waiting for order events")

	for d := range msgs {
		var ev service.OrderEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			zap.L().Warn("invalid message", zap.Error(err))
			// 消息格式错误，拒绝并丢弃
			_ = d.Nack(false, false)
			continue
		}
		handleEvent(context.Background(), notificationSvc, &ev, d)
	}
}

// handleEvent 把事件记成派发流水并确认消息。
// 这里无论怎么失败都只影响流水，订单早已提交。
func handleEvent(ctx context.Context, svc *service.NotificationService, ev *service.OrderEvent, d amqp.Delivery) {
	n, err := svc.RecordOrderEvent(ctx, ev)
	if err != nil {
		zap.L().Error("record notification failed",
			zap.Int64("order_id", ev.OrderID),
			zap.Error(err))
		service.GetMonitor().RecordDBError()
		service.GetMonitor().RecordWorkerFailed()
		// 拒绝消息并重新入队
		_ = d.Nack(false, true)
		return
	}

	zap.L().Info("order notification dispatched",
		zap.Int64("order_id", ev.OrderID),
		zap.Int64("invoice_no", ev.InvoiceNo),
		zap.Uint64("notification_id", n.ID))
	service.GetMonitor().RecordWorkerProcessed()

	if err := d.Ack(false); err != nil {
		zap.L().Warn("failed to ack message", zap.Error(err))
	}
}
