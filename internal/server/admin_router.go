package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/goshop/internal/auth"
	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/order"
	"github.com/example/goshop/internal/datamodels/product"
	"github.com/example/goshop/internal/infra/redis"
	"github.com/example/goshop/internal/repository/mysql"
	"github.com/example/goshop/internal/service"
)

// RegisterAdminRoutes 注册后台管理端的 HTTP 路由
// 端口通常是 8081，与前台 Web 服务分离。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)

	// 仓储与服务
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	staffRepo := mysql.NewStaffRepository(db)
	notificationRepo := mysql.NewNotificationRepository(db)

	productSvc := service.NewProductService(productRepo, redisClient)
	orderSvc := service.NewOrderService(orderRepo, &cfg.Shop)
	staffSvc := service.NewStaffService(staffRepo, &cfg.JWT)
	notificationSvc := service.NewNotificationService(notificationRepo)

	tokenCache := auth.NewTokenCache(redisClient, time.Duration(cfg.JWT.TokenCacheTTLSeconds)*time.Second)

	// 首次启动时没有任何员工账号，补一个默认账号，上线后请改密码
	if _, err := staffRepo.GetByUsername(context.Background(), "admin"); err != nil {
		if _, err := staffSvc.Register(context.Background(), "admin", "admin123"); err != nil {
			zap.L().Warn("create default staff account failed", zap.Error(err))
		}
	}

	api := app.Party("/api")

	// 员工登录
	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		token, err := staffSvc.Login(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "用户名或密码错误"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"token": token}})
	})

	// 需要员工身份的接口，解析结果走 Redis 缓存
	authAPI := api.Party("/", func(ctx iris.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "missing token"})
			return
		}
		claims, hit, err := tokenCache.Get(ctx.Request().Context(), token)
		if err != nil || !hit {
			claims, err = auth.ParseToken(&cfg.JWT, token)
			if err != nil {
				ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "invalid token"})
				return
			}
			_ = tokenCache.Set(ctx.Request().Context(), token, claims)
		}
		ctx.Values().Set("staff_id", claims.StaffID)
		ctx.Values().Set("username", claims.Username)
		ctx.Next()
	})

	// ---------- 商品管理 ----------

	// 商品列表（后台用：返回所有商品）
	authAPI.Get("/products", func(ctx iris.Context) {
		list, err := productSvc.ListAll(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 创建商品
	authAPI.Post("/products", func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p := &product.Product{}
		if err := req.applyTo(p); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 更新商品
	authAPI.Put("/products/{id:int64}", func(ctx iris.Context) {
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
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := req.applyTo(p); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 删除商品
	authAPI.Delete("/products/{id:int64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetInt64("id")
		if err := productSvc.Delete(ctx.Request().Context(), pid); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// ---------- 订单管理 ----------

	// 最近订单列表
	authAPI.Get("/orders", func(ctx iris.Context) {
		limit, _ := strconv.Atoi(ctx.URLParamDefault("limit", "20"))
		list, err := orderSvc.ListRecent(ctx.Request().Context(), limit)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 订单详情（含明细和摘要）
	authAPI.Get("/orders/{id:int64}", func(ctx iris.Context) {
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
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"order": o, "items": items}})
	})

	// 推进订单状态，非法跳转会被转移表拒绝
	authAPI.Put("/orders/{id:int64}/status", func(ctx iris.Context) {
		oid, _ := ctx.Params().GetInt64("id")
		var req struct {
			Status string `json:"status"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		o, err := orderSvc.UpdateStatus(ctx.Request().Context(), oid, order.Status(req.Status))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": err.Error()})
			case errors.Is(err, service.ErrInvalidTransition):
				ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": err.Error()})
			default:
				ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			}
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// 重渲染摘要（显式覆盖，幂等）
	authAPI.Post("/orders/{id:int64}/summary", func(ctx iris.Context) {
		oid, _ := ctx.Params().GetInt64("id")
		text, err := orderSvc.RefreshSummary(ctx.Request().Context(), oid)
		if err != nil {
			status := 500
			if errors.Is(err, service.ErrOrderNotFound) {
				status = 404
			}
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"summary_text": text}})
	})

	// 删除订单
	authAPI.Delete("/orders/{id:int64}", func(ctx iris.Context) {
		oid, _ := ctx.Params().GetInt64("id")
		if err := orderSvc.Delete(ctx.Request().Context(), oid); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// ---------- 通知流水 / 监控 ----------

	authAPI.Get("/notifications", func(ctx iris.Context) {
		limit, _ := strconv.Atoi(ctx.URLParamDefault("limit", "30"))
		list, err := notificationSvc.ListRecent(ctx.Request().Context(), limit)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	authAPI.Get("/stats", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "data": service.GetMonitor().GetStats()})
	})
}

// productRequest 后台商品表单
type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Status      int    `json:"status"`
}

func (r *productRequest) applyTo(p *product.Product) error {
	if r.Name == "" {
		return fmt.Errorf("商品名称不能为空")
	}
	if r.Price < 0 {
		return fmt.Errorf("价格不能为负数")
	}
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.Stock = r.Stock
	p.Image = r.Image
	p.Category = r.Category
	p.Status = r.Status
	return nil
}
