package server

import (
	"errors"
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/product"
	"github.com/example/goshop/internal/infra/mq"
	"github.com/example/goshop/internal/infra/redis"
	"github.com/example/goshop/internal/middleware"
	"github.com/example/goshop/internal/repository/mysql"
	"github.com/example/goshop/internal/service"
	"github.com/example/goshop/internal/session"
)

// RegisterRoutes 注册前台（顾客侧）HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 仓储与服务
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	productSvc := service.NewProductService(productRepo, redisClient)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	notifier := service.NewMQNotifier(mqConn)
	checkoutSvc := service.NewCheckoutService(cartSvc, orderRepo, notifier, &cfg.Shop)
	orderSvc := service.NewOrderService(orderRepo, &cfg.Shop)

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// 商品列表（支持按分类筛选和关键字搜索）
	api.Get("/products", func(ctx iris.Context) {
		category := ctx.URLParam("category")
		keyword := ctx.URLParam("q")
		var list []*product.Product
		var err error
		if category != "" {
			list, err = productSvc.ListByCategory(ctx.Request().Context(), category)
		} else {
			list, err = productSvc.ListOnline(ctx.Request().Context())
		}
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}

		// 如果带有关键字，则在内存中按名称做简单过滤
		if keyword != "" {
			kw := strings.ToLower(keyword)
			filtered := make([]*product.Product, 0, len(list))
			for _, p := range list {
				if strings.Contains(strings.ToLower(p.Name), kw) {
					filtered = append(filtered, p)
				}
			}
			list = filtered
		}

		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 商品详情
	api.Get("/products/{id:int64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), pid)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		if p == nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "商品不存在"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 购物车和订单都以会话令牌为作用域
	sessAPI := api.Party("/", session.Middleware())

	// 查看购物车（带现价的整车视图）
	sessAPI.Get("/cart", func(ctx iris.Context) {
		view, err := cartSvc.List(ctx.Request().Context(), session.FromContext(ctx))
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": view})
	})

	// 加购
	sessAPI.Post("/cart/items", func(ctx iris.Context) {
		var req struct {
			ProductID int64 `json:"product_id"`
			Quantity  int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		item, err := cartSvc.Add(ctx.Request().Context(), session.FromContext(ctx), req.ProductID, req.Quantity)
		if err != nil {
			code := 500
			if errors.Is(err, service.ErrInvalidQuantity) {
				code = 400
			}
			ctx.StopWithJSON(code, iris.Map{"code": code, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": item})
	})

	// 改数量（<=0 即删除）
	sessAPI.Put("/cart/items/{id:int64}", func(ctx iris.Context) {
		itemID, _ := ctx.Params().GetInt64("id")
		var req struct {
			Quantity int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := cartSvc.SetQuantity(ctx.Request().Context(), session.FromContext(ctx), itemID, req.Quantity); err != nil {
			code := 500
			if errors.Is(err, service.ErrInvalidQuantity) {
				code = 400
			}
			ctx.StopWithJSON(code, iris.Map{"code": code, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// 删行
	sessAPI.Delete("/cart/items/{id:int64}", func(ctx iris.Context) {
		itemID, _ := ctx.Params().GetInt64("id")
		if err := cartSvc.Remove(ctx.Request().Context(), session.FromContext(ctx), itemID); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// 清空购物车
	sessAPI.Delete("/cart", func(ctx iris.Context) {
		if err := cartSvc.Clear(ctx.Request().Context(), session.FromContext(ctx)); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// 结账：购物车 -> 不可变订单
	sessAPI.Post("/checkout", middleware.CheckoutRateLimit(), func(ctx iris.Context) {
		var req service.DeliveryInfo
		if err := ctx.ReadJSON(&req); err != nil && ctx.GetContentLength() > 0 {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		o, err := checkoutSvc.Checkout(ctx.Request().Context(), session.FromContext(ctx), req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyCart):
				ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			case errors.Is(err, service.ErrUnknownProduct):
				ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": err.Error()})
			default:
				ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": service.ErrCheckoutFailed.Error()})
			}
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// 我的订单
	sessAPI.Get("/orders", func(ctx iris.Context) {
		list, err := orderSvc.ListBySession(ctx.Request().Context(), session.FromContext(ctx))
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 订单详情（只能看自己会话的）
	sessAPI.Get("/orders/{id:int64}", func(ctx iris.Context) {
		oid, _ := ctx.Params().GetInt64("id")
		o, items, err := orderSvc.Get(ctx.Request().Context(), oid)
		if err != nil {
			status := 500
			if errors.Is(err, service.ErrOrderNotFound) {
				status = 404
			}
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		if o.Session != session.FromContext(ctx) {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": service.ErrOrderNotFound.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"order": o, "items": items}})
	})

	// 外部消息通道深链（摘要文本已转义）
	sessAPI.Get("/orders/{id:int64}/message-link", func(ctx iris.Context) {
		oid, _ := ctx.Params().GetInt64("id")
		o, _, err := orderSvc.Get(ctx.Request().Context(), oid)
		if err != nil {
			status := 500
			if errors.Is(err, service.ErrOrderNotFound) {
				status = 404
			}
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		if o.Session != session.FromContext(ctx) {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": service.ErrOrderNotFound.Error()})
			return
		}
		link, err := orderSvc.MessageLink(ctx.Request().Context(), oid)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"link": link}})
	})
}
