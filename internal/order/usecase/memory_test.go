package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/order/dto"
)

var errProductGone = errors.New("insert or update on table \"order_items\" violates foreign key constraint")

// memoryOrders is an in-memory order.Repository.
type memoryOrders struct {
	mu       sync.Mutex
	nextID   int64
	orders   map[int64]model.Order
	items    map[int64]model.OrderItem
	options  map[int64]model.OrderItemOption
	values   map[int64]model.OrderItemOptionValue
	payments map[int64]model.Payment

	failProduct int64
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{
		orders:  make(map[int64]model.Order),
		items:   make(map[int64]model.OrderItem),
		options: make(map[int64]model.OrderItemOption),
		values:  make(map[int64]model.OrderItemOptionValue),
		payments: map[int64]model.Payment{
			1: {ID: 1, Type: "Tiền mặt"},
			2: {ID: 2, Type: "Chuyển khoản"},
		},
	}
}

func (m *memoryOrders) Snapshot() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders, items, options, values := copyMap(m.orders), copyMap(m.items), copyMap(m.options), copyMap(m.values)
	next := m.nextID
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.orders, m.items, m.options, m.values = orders, items, options, values
		m.nextID = next
	}
}

func copyMap[V any](src map[int64]V) map[int64]V {
	out := make(map[int64]V, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func (m *memoryOrders) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryOrders) Create(_ context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.id()
	m.orders[o.ID] = *o
	return nil
}

func (m *memoryOrders) CreateItem(_ context.Context, item *model.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failProduct != 0 && item.ProductID == m.failProduct {
		return errProductGone
	}
	item.ID = m.id()
	m.items[item.ID] = *item
	return nil
}

func (m *memoryOrders) CreateItemOption(_ context.Context, opt *model.OrderItemOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	opt.ID = m.id()
	m.options[opt.ID] = *opt
	return nil
}

func (m *memoryOrders) CreateOptionValues(_ context.Context, values []model.OrderItemOptionValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range values {
		v.ID = m.id()
		m.values[v.ID] = v
	}
	return nil
}

func (m *memoryOrders) FindByID(_ context.Context, id int64) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *memoryOrders) FindAll(_ context.Context, f *dto.OrderFilters) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for _, o := range m.orders {
		if o.Void || (f.ID != nil && o.ID != *f.ID) || (f.Type != "" && o.Type != f.Type) || (f.Status != "" && o.Status != f.Status) {
			continue
		}
		if (f.From != nil && o.CreatedAt.Before(*f.From)) || (f.To != nil && o.CreatedAt.After(*f.To)) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryOrders) FindDetail(_ context.Context, id int64) (*model.OrderDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Void {
		return nil, nil
	}
	d := &model.OrderDetail{Order: o, Items: []model.OrderItemDetail{}}
	for _, item := range sortedByID(m.items) {
		if item.OrderID != id {
			continue
		}
		itemDetail := model.OrderItemDetail{OrderItem: item, Options: []model.OrderItemOptionDetail{}}
		for _, opt := range sortedByID(m.options) {
			if opt.OrderItemID != item.ID {
				continue
			}
			optDetail := model.OrderItemOptionDetail{OrderItemOption: opt, Values: []model.OrderItemOptionValue{}}
			for _, v := range sortedByID(m.values) {
				if v.OrderItemOptionID == opt.ID {
					optDetail.Values = append(optDetail.Values, v)
				}
			}
			itemDetail.Options = append(itemDetail.Options, optDetail)
		}
		d.Items = append(d.Items, itemDetail)
	}
	return d, nil
}

func sortedByID[V any](src map[int64]V) []V {
	keys := make([]int64, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, src[k])
	}
	return out
}

func (m *memoryOrders) ListItems(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.OrderItem
	for _, item := range sortedByID(m.items) {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memoryOrders) UpdateHeader(_ context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = *o
	return nil
}

func (m *memoryOrders) UpdateItemQuantity(_ context.Context, orderID, itemID, quantity int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok || item.OrderID != orderID {
		return false, nil
	}
	item.Quantity = quantity
	m.items[itemID] = item
	return true, nil
}

func (m *memoryOrders) DeleteItems(_ context.Context, orderID int64, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		item, ok := m.items[id]
		if !ok || item.OrderID != orderID {
			continue
		}
		for optID, opt := range m.options {
			if opt.OrderItemID != id {
				continue
			}
			for vID, v := range m.values {
				if v.OrderItemOptionID == optID {
					delete(m.values, vID)
				}
			}
			delete(m.options, optID)
		}
		delete(m.items, id)
		n++
	}
	return n, nil
}

func (m *memoryOrders) Void(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Void || o.Status != model.OrderStatusUnpaid {
		return false, nil
	}
	o.Void = true
	m.orders[id] = o
	return true, nil
}

func (m *memoryOrders) MarkPaid(_ context.Context, id, paymentID int64, paidAt time.Time) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Void || o.Status != model.OrderStatusUnpaid {
		return nil, nil
	}
	o.Status = model.OrderStatusPaid
	o.PaymentID = &paymentID
	o.PaymentAt = &paidAt
	m.orders[id] = o
	return &o, nil
}

func (m *memoryOrders) ListPaymentMethods(context.Context) ([]model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedByID(m.payments), nil
}

func (m *memoryOrders) FindPaymentMethod(_ context.Context, id int64) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memoryOrders) counts() (items, options, values int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items), len(m.options), len(m.values)
}

func (m *memoryOrders) item(id int64) (model.OrderItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	return item, ok
}
