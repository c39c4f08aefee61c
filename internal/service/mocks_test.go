package service

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/example/goshop/internal/datamodels/cart"
	"github.com/example/goshop/internal/datamodels/order"
	"github.com/example/goshop/internal/datamodels/product"
)

// 内存实现的仓储替身，行为对齐 repository/mysql 的约定：
// cart/product 的单查未命中返回 (nil, nil)，order 的单查未命中返回 gorm.ErrRecordNotFound。

type mockCartRepo struct {
	mu        sync.Mutex
	nextID    int64
	items     map[int64]*cart.CartItem
	saveErr   error
	deleteErr error
	clearErr  error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{items: make(map[int64]*cart.CartItem)}
}

func (m *mockCartRepo) GetByID(_ context.Context, id int64) (*cart.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (m *mockCartRepo) GetBySessionAndProduct(_ context.Context, session string, productID int64) (*cart.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.Session == session && item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockCartRepo) ListBySession(_ context.Context, session string) ([]*cart.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*cart.CartItem
	// 按 ID 升序，和 mysql 实现一致
	for id := int64(1); id <= m.nextID; id++ {
		if item, ok := m.items[id]; ok && item.Session == session {
			cp := *item
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (m *mockCartRepo) Save(_ context.Context, item *cart.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if item.ID == 0 {
		m.nextID++
		item.ID = m.nextID
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.items, id)
	return nil
}

func (m *mockCartRepo) DeleteBySession(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	for id, item := range m.items {
		if item.Session == session {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockCartRepo) count(session string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, item := range m.items {
		if item.Session == session {
			n++
		}
	}
	return n
}

type mockProductRepo struct {
	mu       sync.Mutex
	products map[int64]*product.Product
}

func newMockProductRepo(ps ...*product.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[int64]*product.Product)}
	for _, p := range ps {
		cp := *p
		m.products[p.ID] = &cp
	}
	return m
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) ListAll(context.Context) ([]*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*product.Product
	for _, p := range m.products {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

func (m *mockProductRepo) ListOnline(ctx context.Context) ([]*product.Product, error) {
	return m.ListAll(ctx)
}

func (m *mockProductRepo) ListByCategory(ctx context.Context, _ string) ([]*product.Product, error) {
	return m.ListAll(ctx)
}

func (m *mockProductRepo) Create(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *product.Product) error {
	return m.Create(context.Background(), p)
}

func (m *mockProductRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) setPrice(id, price int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		p.Price = price
	}
}

// mockOrderRepo 模拟 mysql 仓储的发号行为：CreateWithItems 原子取号并落库
type mockOrderRepo struct {
	mu              sync.Mutex
	seq             int64
	nextID          int64
	orders          map[int64]*order.Order
	items           map[int64][]*order.OrderItem
	createErr       error
	summaryFailures int // 前 N 次 UpdateSummary 返回错误
	summaryCalls    int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders: make(map[int64]*order.Order),
		items:  make(map[int64][]*order.OrderItem),
	}
}

func (m *mockOrderRepo) CreateWithItems(_ context.Context, o *order.Order, items []*order.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	o.InvoiceNo = m.seq
	m.nextID++
	o.ID = m.nextID
	o.CreatedAt = time.Now()

	cp := *o
	m.orders[o.ID] = &cp
	stored := make([]*order.OrderItem, 0, len(items))
	for _, it := range items {
		it.OrderID = o.ID
		itCp := *it
		stored = append(stored, &itCp)
	}
	m.items[o.ID] = stored
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) ListItems(_ context.Context, orderID int64) ([]*order.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*order.OrderItem
	for _, it := range m.items[orderID] {
		cp := *it
		list = append(list, &cp)
	}
	return list, nil
}

func (m *mockOrderRepo) ListBySession(_ context.Context, session string) ([]*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*order.Order
	for _, o := range m.orders {
		if o.Session == session {
			cp := *o
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (m *mockOrderRepo) ListRecent(_ context.Context, _ int) ([]*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*order.Order
	for _, o := range m.orders {
		cp := *o
		list = append(list, &cp)
	}
	return list, nil
}

func (m *mockOrderRepo) UpdateSummary(_ context.Context, id int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaryCalls++
	if m.summaryFailures > 0 {
		m.summaryFailures--
		return gorm.ErrInvalidDB
	}
	if o, ok := m.orders[id]; ok {
		o.SummaryText = text
	}
	return nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id int64, from, to order.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	delete(m.items, id)
	return nil
}

func (m *mockOrderRepo) stored(id int64) (*order.Order, []*order.OrderItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.orders[id]
	if o == nil {
		return nil, nil
	}
	cp := *o
	var list []*order.OrderItem
	for _, it := range m.items[id] {
		itCp := *it
		list = append(list, &itCp)
	}
	return &cp, list
}

// 编译期检查：替身必须完整实现对应接口
var (
	_ cart.Repository       = (*mockCartRepo)(nil)
	_ product.Repository    = (*mockProductRepo)(nil)
	_ order.Repository      = (*mockOrderRepo)(nil)
	_ NotificationPublisher = (*mockPublisher)(nil)
)

type mockPublisher struct {
	mu     sync.Mutex
	events []int64
	err    error
}

func (m *mockPublisher) PublishOrderCreated(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, o.ID)
	return nil
}
