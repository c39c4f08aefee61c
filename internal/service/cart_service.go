package service

import (
	"context"
	"fmt"

	"github.com/example/goshop/internal/datamodels/cart"
	"github.com/example/goshop/internal/datamodels/product"
)

// MaxQuantity 单行数量上限，挡住病态的大数输入
const MaxQuantity = 999

// CartLine 购物车行与当前商品信息的拼接视图。
// Product 为 nil 表示商品已经查不到了（加购后被删除），这种行不计入合计，
// 结账时会被明确拒绝而不是悄悄按零价处理。
type CartLine struct {
	Item      *cart.CartItem   `json:"item"`
	Product   *product.Product `json:"product,omitempty"`
	Subtotal  int64            `json:"subtotal"`
	Available bool             `json:"available"`
}

// CartView 整车视图，价格永远是读取时刻的目录现价
type CartView struct {
	Lines         []CartLine `json:"lines"`
	TotalQuantity int64      `json:"total_quantity"`
	TotalAmount   int64      `json:"total_amount"`
}

// CartService 购物车服务。购物车是引擎里唯一可变的实体，
// 同一会话的并发写是后写覆盖先写，不做版本冲突检测。
type CartService struct {
	cartRepo    cart.Repository
	productRepo product.Repository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo cart.Repository, productRepo product.Repository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// Add 加购。同会话同商品已有行时数量累加，否则插入新行。
// 这一层不校验商品是否存在，目录归目录管；结账时才做存在性裁决。
func (s *CartService) Add(ctx context.Context, session string, productID, quantity int64) (*cart.CartItem, error) {
	if quantity <= 0 || quantity > MaxQuantity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	existing, err := s.cartRepo.GetBySessionAndProduct(ctx, session, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		merged := existing.Quantity + quantity
		if merged > MaxQuantity {
			return nil, fmt.Errorf("%w: 累计 %d 超过上限", ErrInvalidQuantity, merged)
		}
		existing.Quantity = merged
		if err := s.cartRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &cart.CartItem{
		Session:   session,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity 覆盖行数量；quantity <= 0 等价于删除该行。幂等。
func (s *CartService) SetQuantity(ctx context.Context, session string, itemID, quantity int64) error {
	if quantity > MaxQuantity {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	item, err := s.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	// 行不存在或者不属于这个会话，一律当作已删除的 no-op
	if item == nil || item.Session != session {
		return nil
	}
	if quantity <= 0 {
		return s.cartRepo.Delete(ctx, item.ID)
	}
	item.Quantity = quantity
	return s.cartRepo.Save(ctx, item)
}

// Remove 删除一行，已经不在了也不算错
func (s *CartService) Remove(ctx context.Context, session string, itemID int64) error {
	item, err := s.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.Session != session {
		return nil
	}
	return s.cartRepo.Delete(ctx, item.ID)
}

// Clear 清空会话购物车。顾客手动清空和结账成功后的内部清理都走这里。
func (s *CartService) Clear(ctx context.Context, session string) error {
	return s.cartRepo.DeleteBySession(ctx, session)
}

// List 购物车视图：逐行回读目录现价再算小计和合计，
// 所以改价对未结账的顾客立刻可见，这是有意的设计而不是缓存缺失。
func (s *CartService) List(ctx context.Context, session string) (*CartView, error) {
	items, err := s.cartRepo.ListBySession(ctx, session)
	if err != nil {
		return nil, err
	}

	view := &CartView{Lines: make([]CartLine, 0, len(items))}
	for _, item := range items {
		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		line := CartLine{Item: item}
		if p != nil {
			line.Product = p
			line.Available = true
			line.Subtotal = item.Quantity * p.Price
			view.TotalQuantity += item.Quantity
			view.TotalAmount += line.Subtotal
		}
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}
