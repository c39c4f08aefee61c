// Package summary 渲染订单的可读摘要文本。
// Render 是 (店铺, 订单, 明细) 的纯函数：同样的输入永远产出逐字节相同的文本，
// 因为结果在下单时落库，之后不会自动重算，只有显式重渲染才会覆盖。
package summary

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/order"
)

// Placeholder 收货信息缺失时的占位提示，每个字段都会渲染出来，要么有值要么提示补充
const Placeholder = "（请补充）"

const timeLayout = "2006-01-02 15:04:05"

// formatAmount 分转元
func formatAmount(cents int64) string {
	return fmt.Sprintf("¥%.2f", float64(cents)/100)
}

func orBlank(v string) string {
	if strings.TrimSpace(v) == "" {
		return Placeholder
	}
	return v
}

// Render 生成订单摘要文本。要求 o.InvoiceNo 和 o.CreatedAt 已经由落库动作填好。
func Render(shop *config.ShopConfig, o *order.Order, items []*order.OrderItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "【%s】新订单\n", shop.Name)
	fmt.Fprintf(&b, "单据号：#%06d\n", o.InvoiceNo)
	fmt.Fprintf(&b, "下单时间：%s\n", o.CreatedAt.Format(timeLayout))
	b.WriteString("\n")

	b.WriteString("商品明细：\n")
	var totalQty int64
	for i, it := range items {
		totalQty += it.Quantity
		fmt.Fprintf(&b, "%d. %s × %d  单价 %s  小计 %s\n",
			i+1, it.ProductName, it.Quantity,
			formatAmount(it.UnitPrice), formatAmount(it.Subtotal()))
	}
	fmt.Fprintf(&b, "共 %d 种商品，合计 %d 件，应付 %s\n",
		len(items), totalQty, formatAmount(o.TotalAmount))
	b.WriteString("\n")

	fmt.Fprintf(&b, "收货人：%s\n", orBlank(o.CustomerName))
	fmt.Fprintf(&b, "联系电话：%s\n", orBlank(o.CustomerPhone))
	fmt.Fprintf(&b, "收货地址：%s\n", orBlank(o.CustomerAddress))
	b.WriteString("\n")

	fmt.Fprintf(&b, "店铺：%s\n", shop.Name)
	fmt.Fprintf(&b, "门店地址：%s\n", shop.Address)
	fmt.Fprintf(&b, "客服电话：%s\n", shop.Phone)
	fmt.Fprintf(&b, "支付方式：%s\n", strings.Join(shop.PaymentOptions, " / "))

	return b.String()
}

// DeepLink 把摘要文本编码成外部消息通道的深链。
// 引擎的职责到产出转义正确的 URL 为止，实际投递由外部通道负责。
func DeepLink(base, text string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "text=" + url.QueryEscape(text)
}
