package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// 通过后台 API 写入一批演示商品，方便本地把系统跑起来。
// 用法：先启动 admin 服务，再执行本工具（需要员工账号）。

type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Status      int    `json:"status"`
}

type ApiResponse struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

var seedProducts = []ProductRequest{
	{Name: "经典白T恤", Description: "纯棉基础款", Price: 5900, Stock: 100, Image: "/assets/img/shop/1.jpg", Category: "men", Status: 1},
	{Name: "修身牛仔裤", Description: "弹力直筒", Price: 19900, Stock: 60, Image: "/assets/img/shop/2.jpg", Category: "men", Status: 1},
	{Name: "碎花连衣裙", Description: "夏季新款", Price: 25900, Stock: 40, Image: "/assets/img/shop/3.jpg", Category: "women", Status: 1},
	{Name: "针织开衫", Description: "宽松慵懒风", Price: 16900, Stock: 50, Image: "/assets/img/shop/4.jpg", Category: "women", Status: 1},
	{Name: "银饰耳环", Description: "925 银", Price: 8900, Stock: 200, Image: "/assets/img/shop/5.jpg", Category: "accessories", Status: 1},
	{Name: "帆布托特包", Description: "大容量通勤", Price: 12900, Stock: 80, Image: "/assets/img/shop/6.jpg", Category: "accessories", Status: 1},
}

func main() {
	adminURL := "http://localhost:8081/api"
	client := &http.Client{}

	fmt.Println("🌱 写入演示商品...")
	fmt.Println("=" + strings.Repeat("=", 60))

	// 步骤1: 登录拿员工令牌
	fmt.Println("\n[1/2] 员工登录...")
	loginBody, _ := json.Marshal(map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	resp, err := client.Post(adminURL+"/login", "application/json", bytes.NewReader(loginBody))
	if err != nil {
		fmt.Printf("❌ 登录请求失败: %v\n", err)
		return
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var loginResp struct {
		Code int `json:"code"`
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &loginResp); err != nil || loginResp.Data.Token == "" {
		fmt.Printf("❌ 登录失败: %s\n", string(body))
		return
	}
	token := loginResp.Data.Token
	fmt.Println("✅ 登录成功")

	// 步骤2: 逐个创建商品
	fmt.Printf("\n[2/2] 创建 %d 个商品...\n", len(seedProducts))
	created := 0
	for _, p := range seedProducts {
		payload, _ := json.Marshal(p)
		req, _ := http.NewRequest(http.MethodPost, adminURL+"/products", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", token)

		resp, err := client.Do(req)
		if err != nil {
			fmt.Printf("❌ 创建商品失败 (%s): %v\n", p.Name, err)
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		var apiResp ApiResponse
		if err := json.Unmarshal(body, &apiResp); err != nil || apiResp.Code != 0 {
			fmt.Printf("❌ 创建商品失败 (%s): %s\n", p.Name, string(body))
			continue
		}
		fmt.Printf("✅ %s (¥%.2f)\n", p.Name, float64(p.Price)/100)
		created++
	}

	fmt.Println("\n" + strings.Repeat("=", 61))
	fmt.Printf("完成：%d/%d 个商品已写入\n", created, len(seedProducts))
}
