package service

import (
	"context"
	"encoding/json"

	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"

	"github.com/example/goshop/internal/datamodels/product"
)

const (
	catalogCacheKey = "catalog:online"
	catalogCacheTTL = 60 // 秒
)

// ProductService 商品目录服务，引擎对目录只读；在售列表带一层 Redis 缓存
type ProductService struct {
	repo  product.Repository
	redis radix.Client
}

// NewProductService 创建商品服务，redis 传 nil 时直接透传数据库
func NewProductService(repo product.Repository, redis radix.Client) *ProductService {
	return &ProductService{repo: repo, redis: redis}
}

// ListOnline 在售商品列表，优先走缓存
func (s *ProductService) ListOnline(ctx context.Context) ([]*product.Product, error) {
	if s.redis != nil {
		var raw string
		if err := s.redis.Do(radix.Cmd(&raw, "GET", catalogCacheKey)); err != nil {
			GetMonitor().RecordRedisError()
		} else if raw != "" {
			var list []*product.Product
			if err := json.Unmarshal([]byte(raw), &list); err == nil {
				return list, nil
			}
			// 缓存损坏，清掉走数据库
			_ = s.redis.Do(radix.Cmd(nil, "DEL", catalogCacheKey))
		}
	}

	list, err := s.repo.ListOnline(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if body, err := json.Marshal(list); err == nil {
			if err := s.redis.Do(radix.FlatCmd(nil, "SETEX", catalogCacheKey, catalogCacheTTL, body)); err != nil {
				GetMonitor().RecordRedisError()
				zap.L().Warn("cache catalog failed", zap.Error(err))
			}
		}
	}
	return list, nil
}

func (s *ProductService) ListAll(ctx context.Context) ([]*product.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// invalidate 商品有变动时丢弃缓存
func (s *ProductService) invalidate() {
	if s.redis == nil {
		return
	}
	if err := s.redis.Do(radix.Cmd(nil, "DEL", catalogCacheKey)); err != nil {
		GetMonitor().RecordRedisError()
		zap.L().Warn("invalidate catalog cache failed", zap.Error(err))
	}
}
