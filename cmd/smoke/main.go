package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// 端到端冒烟：加购 -> 看车 -> 结账 -> 查订单 -> 拿消息深链。
// 需要前台服务已启动并且目录里至少有一个在售商品。

const baseURL = "http://localhost:8080/api"

type apiResponse struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func call(client *http.Client, method, path, sessionToken string, payload any) (*apiResponse, error) {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set("X-Session-Token", sessionToken)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out apiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("bad response %q: %v", string(raw), err)
	}
	return &out, nil
}

func main() {
	client := &http.Client{}

	fmt.Println("🧪 cart -> order 冒烟测试")
	fmt.Println("=" + strings.Repeat("=", 60))

	// 固定一个会话令牌，方便重复执行
	sessionToken := "11111111-2222-3333-4444-555555555555"

	// 1) 找一个在售商品
	fmt.Println("\n[1/5] 获取商品列表...")
	resp, err := call(client, http.MethodGet, "/products", "", nil)
	if err != nil || resp.Code != 0 {
		fmt.Printf("❌ 获取商品失败: %v %+v\n", err, resp)
		return
	}
	var products []struct {
		ID    int64  `json:"ID"`
		Name  string `json:"Name"`
		Price int64  `json:"Price"`
	}
	_ = json.Unmarshal(resp.Data, &products)
	if len(products) == 0 {
		fmt.Println("❌ 目录是空的，先跑 cmd/seed-products")
		return
	}
	p := products[0]
	fmt.Printf("✅ 选中商品 #%d %s ¥%.2f\n", p.ID, p.Name, float64(p.Price)/100)

	// 2) 加购两次，验证合并成一行
	fmt.Println("\n[2/5] 加购 2 + 3 件...")
	for _, qty := range []int64{2, 3} {
		resp, err = call(client, http.MethodPost, "/cart/items", sessionToken, map[string]int64{
			"product_id": p.ID,
			"quantity":   qty,
		})
		if err != nil || resp.Code != 0 {
			fmt.Printf("❌ 加购失败: %v %+v\n", err, resp)
			return
		}
	}
	resp, _ = call(client, http.MethodGet, "/cart", sessionToken, nil)
	fmt.Printf("✅ 当前购物车: %s\n", string(resp.Data))

	// 3) 结账
	fmt.Println("\n[3/5] 结账...")
	resp, err = call(client, http.MethodPost, "/checkout", sessionToken, map[string]string{
		"name":    "张三",
		"phone":   "13912345678",
		"address": "",
	})
	if err != nil || resp.Code != 0 {
		fmt.Printf("❌ 结账失败: %v %+v\n", err, resp)
		return
	}
	var placed struct {
		ID        int64 `json:"ID"`
		InvoiceNo int64 `json:"InvoiceNo"`
	}
	_ = json.Unmarshal(resp.Data, &placed)
	fmt.Printf("✅ 下单成功 order=%d invoice=#%06d\n", placed.ID, placed.InvoiceNo)

	// 4) 购物车应该已清空
	fmt.Println("\n[4/5] 验证购物车已清空...")
	resp, _ = call(client, http.MethodGet, "/cart", sessionToken, nil)
	fmt.Printf("✅ 结账后购物车: %s\n", string(resp.Data))

	// 5) 拿消息深链
	fmt.Println("\n[5/5] 获取消息深链...")
	resp, err = call(client, http.MethodGet, fmt.Sprintf("/orders/%d/message-link", placed.ID), sessionToken, nil)
	if err != nil || resp.Code != 0 {
		fmt.Printf("❌ 获取深链失败: %v %+v\n", err, resp)
		return
	}
	fmt.Printf("✅ %s\n", string(resp.Data))

	fmt.Println("\n" + strings.Repeat("=", 61))
	fmt.Println("冒烟测试通过 🎉")
}
