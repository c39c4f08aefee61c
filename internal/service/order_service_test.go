package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/order"
)

func newOrderFixture(t *testing.T) (*OrderService, *mockOrderRepo, int64) {
	t.Helper()
	orderRepo := newMockOrderRepo()
	o := &order.Order{
		Session:     testSession,
		TotalAmount: 250,
		Status:      order.StatusPending,
	}
	items := []*order.OrderItem{
		{ProductID: 1, ProductName: "商品A", Quantity: 2, UnitPrice: 100},
		{ProductID: 2, ProductName: "商品B", Quantity: 1, UnitPrice: 50},
	}
	require.NoError(t, orderRepo.CreateWithItems(context.Background(), o, items))
	svc := NewOrderService(orderRepo, &config.DefaultConfig().Shop)
	return svc, orderRepo, o.ID
}

func TestUpdateStatusLinearFlow(t *testing.T) {
	svc, _, id := newOrderFixture(t)
	ctx := context.Background()

	for _, next := range []order.Status{
		order.StatusProcessing,
		order.StatusShipped,
		order.StatusDelivered,
	} {
		o, err := svc.UpdateStatus(ctx, id, next)
		require.NoError(t, err)
		assert.Equal(t, next, o.Status)
	}
}

func TestUpdateStatusRejectsIllegalJumps(t *testing.T) {
	svc, _, id := newOrderFixture(t)
	ctx := context.Background()

	// pending 不能越级，也不能倒退
	for _, to := range []order.Status{
		order.StatusShipped,
		order.StatusDelivered,
		order.StatusPending,
	} {
		_, err := svc.UpdateStatus(ctx, id, to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "pending -> %s", to)
	}

	// 订单保持原状态
	o, _, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, o.Status)
}

func TestUpdateStatusTerminalIsFinal(t *testing.T) {
	svc, _, id := newOrderFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, id, order.StatusCancelled)
	require.NoError(t, err)

	for _, to := range []order.Status{
		order.StatusPending,
		order.StatusProcessing,
		order.StatusDelivered,
	} {
		_, err := svc.UpdateStatus(ctx, id, to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "cancelled -> %s", to)
	}
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	svc, _, id := newOrderFixture(t)
	_, err := svc.UpdateStatus(context.Background(), id, order.Status("paid"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	_, err := svc.UpdateStatus(context.Background(), 404, order.StatusProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRefreshSummaryIsIdempotent(t *testing.T) {
	svc, orderRepo, id := newOrderFixture(t)
	ctx := context.Background()

	first, err := svc.RefreshSummary(ctx, id)
	require.NoError(t, err)
	second, err := svc.RefreshSummary(ctx, id)
	require.NoError(t, err)

	// 同样输入两次渲染逐字节相同，覆盖而不是追加
	assert.Equal(t, first, second)
	stored, _ := orderRepo.stored(id)
	assert.Equal(t, first, stored.SummaryText)
}

func TestMessageLinkEscapesSummary(t *testing.T) {
	svc, _, id := newOrderFixture(t)
	ctx := context.Background()

	_, err := svc.RefreshSummary(ctx, id)
	require.NoError(t, err)

	link, err := svc.MessageLink(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, link, "text=")
	assert.NotContains(t, link, "\n", "深链里不能有未转义的换行")
}
