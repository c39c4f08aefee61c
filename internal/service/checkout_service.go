package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/order"
	"github.com/example/goshop/internal/summary"
)

// DeliveryInfo 下单时可选的收货信息，空字段在摘要里渲染成补充提示
type DeliveryInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutService 结账编排：读车 → 现价计总 → 事务内取号落单落明细 → 回写摘要 → 发通知 → 清车。
// 订单一旦在第三步提交就算下单成功，后面哪一步失败都不会把它撤掉。
type CheckoutService struct {
	carts    *CartService
	orders   order.Repository
	notifier NotificationPublisher
	shop     *config.ShopConfig
}

// NewCheckoutService 创建结账服务，notifier 传 nil 表示不发通知
func NewCheckoutService(carts *CartService, orders order.Repository, notifier NotificationPublisher, shop *config.ShopConfig) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		notifier: notifier,
		shop:     shop,
	}
}

// Checkout 把会话购物车原子地转换成一张不可变订单。
// 返回的订单已带上单据号、创建时间和摘要文本。
func (s *CheckoutService) Checkout(ctx context.Context, sess string, info DeliveryInfo) (*order.Order, error) {
	GetMonitor().RecordCheckoutRequest()

	// Draft：读车
	view, err := s.carts.List(ctx, sess)
	if err != nil {
		GetMonitor().RecordCheckoutError()
		GetMonitor().RecordDBError()
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if len(view.Lines) == 0 {
		GetMonitor().RecordCheckoutError()
		return nil, ErrEmptyCart
	}

	// Priced：用目录现价算总额，同时把快照明细攒出来。
	// 有解析不了的商品就整单拒绝，绝不按零价或悄悄丢行。
	items := make([]*order.OrderItem, 0, len(view.Lines))
	var total int64
	for _, line := range view.Lines {
		if !line.Available {
			GetMonitor().RecordCheckoutError()
			return nil, fmt.Errorf("%w: 商品 %d", ErrUnknownProduct, line.Item.ProductID)
		}
		items = append(items, &order.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Item.Quantity,
			UnitPrice:   line.Product.Price,
		})
		total += line.Item.Quantity * line.Product.Price
	}

	o := &order.Order{
		Session:         sess,
		TotalAmount:     total,
		Status:          order.StatusPending,
		CustomerName:    info.Name,
		CustomerPhone:   info.Phone,
		CustomerAddress: info.Address,
	}

	// Numbered + Persisted：取号、落单、落明细在仓储层的同一个事务里完成，
	// 失败时购物车一个字都没动，顾客可以直接重试
	if err := s.orders.CreateWithItems(ctx, o, items); err != nil {
		GetMonitor().RecordCheckoutError()
		GetMonitor().RecordDBError()
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	// 从这里起订单已经存在，以下步骤只记录、不回滚

	// 摘要要用到取号之后才知道的单据号和创建时间，所以是第二步回写；
	// 同样的输入写多少次结果都一样，失败后原样重试一次
	text := summary.Render(s.shop, o, items)
	if err := s.orders.UpdateSummary(ctx, o.ID, text); err != nil {
		GetMonitor().RecordSummaryRetry()
		if err = s.orders.UpdateSummary(ctx, o.ID, text); err != nil {
			GetMonitor().RecordDBError()
			zap.L().Error("attach order summary failed",
				zap.Int64("order_id", o.ID),
				zap.Int64("invoice_no", o.InvoiceNo),
				zap.Error(err))
		}
	}
	o.SummaryText = text

	// 通知纯属 fire-and-forget
	if s.notifier != nil {
		if err := s.notifier.PublishOrderCreated(ctx, o); err != nil {
			GetMonitor().RecordMQError()
			zap.L().Warn("publish order created event failed",
				zap.Int64("order_id", o.ID),
				zap.Error(err))
		}
	}

	// Cleared：清车失败不算结账失败，记日志重试一次完事
	if err := s.carts.Clear(ctx, sess); err != nil {
		if err = s.carts.Clear(ctx, sess); err != nil {
			GetMonitor().RecordDBError()
			zap.L().Error("clear cart after checkout failed",
				zap.String("session", sess),
				zap.Int64("order_id", o.ID),
				zap.Error(err))
		}
	}

	GetMonitor().RecordCheckoutSuccess()
	return o, nil
}
