package summary

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/order"
)

func fixtureShop() *config.ShopConfig {
	return &config.ShopConfig{
		Name:           "好物小店",
		Phone:          "010-12345678",
		Address:        "北京市朝阳区某某路 1 号",
		PaymentOptions: []string{"微信", "支付宝", "货到付款"},
		MessageBase:    "https://msg.example.com/send",
	}
}

func fixtureOrder() (*order.Order, []*order.OrderItem) {
	o := &order.Order{
		ID:              1,
		InvoiceNo:       7,
		TotalAmount:     250,
		Status:          order.StatusPending,
		CustomerName:    "张三",
		CustomerPhone:   "13912345678",
		CustomerAddress: "上海市浦东新区某某街 2 号",
		CreatedAt:       time.Date(2024, 5, 20, 13, 14, 15, 0, time.Local),
	}
	items := []*order.OrderItem{
		{ProductID: 1, ProductName: "商品A", Quantity: 2, UnitPrice: 100},
		{ProductID: 2, ProductName: "商品B", Quantity: 1, UnitPrice: 50},
	}
	return o, items
}

func TestRenderIsDeterministic(t *testing.T) {
	shop := fixtureShop()
	o, items := fixtureOrder()

	first := Render(shop, o, items)
	second := Render(shop, o, items)

	// 纯函数：同样输入逐字节相同
	assert.Equal(t, first, second)
}

func TestRenderContainsEverySection(t *testing.T) {
	shop := fixtureShop()
	o, items := fixtureOrder()

	text := Render(shop, o, items)

	assert.True(t, strings.HasPrefix(text, "【好物小店】新订单\n"))
	assert.Contains(t, text, "单据号：#000007\n")
	assert.Contains(t, text, "下单时间：2024-05-20 13:14:15\n")

	// 明细按行号编排，单价小计都是元
	assert.Contains(t, text, "1. 商品A × 2  单价 ¥1.00  小计 ¥2.00\n")
	assert.Contains(t, text, "2. 商品B × 1  单价 ¥0.50  小计 ¥0.50\n")
	assert.Contains(t, text, "共 2 种商品，合计 3 件，应付 ¥2.50\n")

	assert.Contains(t, text, "收货人：张三\n")
	assert.Contains(t, text, "联系电话：13912345678\n")

	assert.Contains(t, text, "门店地址：北京市朝阳区某某路 1 号\n")
	assert.Contains(t, text, "支付方式：微信 / 支付宝 / 货到付款\n")
}

func TestRenderMissingDeliveryUsesPlaceholder(t *testing.T) {
	shop := fixtureShop()
	o, items := fixtureOrder()
	o.CustomerName = ""
	o.CustomerPhone = "   "
	o.CustomerAddress = ""

	text := Render(shop, o, items)

	// 字段总会渲染出来，缺失时给占位提示而不是整行消失
	assert.Contains(t, text, "收货人："+Placeholder+"\n")
	assert.Contains(t, text, "联系电话："+Placeholder+"\n")
	assert.Contains(t, text, "收货地址："+Placeholder+"\n")
}

func TestDeepLinkEscapesText(t *testing.T) {
	text := "【好物小店】新订单\n单据号：#000007\n应付 ¥2.50 & 更多"

	link := DeepLink("https://msg.example.com/send", text)

	require.True(t, strings.HasPrefix(link, "https://msg.example.com/send?text="))
	assert.NotContains(t, link, "\n")
	assert.NotContains(t, link[len("https://msg.example.com/send?text="):], "&")

	// 转义可逆，解回来就是原文
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, text, u.Query().Get("text"))
}

func TestDeepLinkAppendsToExistingQuery(t *testing.T) {
	link := DeepLink("https://msg.example.com/send?channel=wechat", "你好")
	assert.True(t, strings.HasPrefix(link, "https://msg.example.com/send?channel=wechat&text="))
}
