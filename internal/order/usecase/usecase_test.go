package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/order/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres/txtest"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/statistictest"
)

// 10:00 in the shop, 2024-06-05.
var now = time.Date(2024, 6, 5, 3, 0, 0, 0, time.UTC)

type fixture struct {
	uc     *orderUseCase
	orders *memoryOrders
	stats  *statistictest.Memory
	tx     *txtest.Transactor
	events *broker.Recorder
	clock  *clock.Fixed
}

func newFixture() *fixture {
	orders := newMemoryOrders()
	stats := statistictest.NewMemory()
	tx := txtest.New(orders, stats)
	events := broker.NewRecorder()
	clk := clock.NewFixed(now)
	uc := NewOrderUseCase(orders, stats, tx, events, "orders", clk, logger.NewNop()).(*orderUseCase)
	return &fixture{uc: uc, orders: orders, stats: stats, tx: tx, events: events, clock: clk}
}

func (f *fixture) create(t *testing.T, input *dto.CreateOrderInput) int64 {
	t.Helper()
	id, err := f.uc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func option(title string, values ...string) dto.OptionInput {
	opt := dto.OptionInput{Title: title}
	for _, v := range values {
		opt.Values = append(opt.Values, dto.OptionValueInput{Name: v, Price: 5000})
	}
	return opt
}

func TestCreateOrderPersistsWholeTree(t *testing.T) {
	f := newFixture()

	id := f.create(t, &dto.CreateOrderInput{
		Type:  "Tại quán",
		Total: 95000,
		Items: []dto.ItemInput{
			{ProductID: 1, Name: "Cà phê sữa", Quantity: 2, Price: 30000, Options: []dto.OptionInput{
				option("Size", "L"),
				option("Topping", "Trân châu", "Thạch"),
			}},
			{ProductID: 2, Name: "Trà đào", Quantity: 1, Price: 35000, Options: []dto.OptionInput{
				option("Đá", "Ít đá"),
			}},
			{ProductID: 3, Name: "Bánh", Quantity: 1, Price: 0, IsGift: true},
		},
		UserID: "u-1",
	})

	items, options, values := f.orders.counts()
	if items != 3 || options != 3 || values != 4 {
		t.Fatalf("items=%d options=%d values=%d, want 3/3/4", items, options, values)
	}

	d, err := f.uc.GetOrderDetailByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if d.Status != model.OrderStatusUnpaid || *d.CreatedBy != "u-1" || !d.CreatedAt.Equal(now) {
		t.Errorf("header = %+v", d.Order)
	}
	if len(d.Items) != 3 || len(d.Items[0].Options) != 2 || len(d.Items[0].Options[1].Values) != 2 {
		t.Errorf("detail = %+v", d)
	}
	for _, item := range d.Items {
		if item.OrderID != id {
			t.Errorf("item %d points at order %d", item.ID, item.OrderID)
		}
	}
	if f.tx.Commits != 1 {
		t.Errorf("commits = %d", f.tx.Commits)
	}
}

func TestCreateOrderRollsBackOnItemFailure(t *testing.T) {
	f := newFixture()
	f.orders.failProduct = 2

	_, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Type: "Mang đi",
		Items: []dto.ItemInput{
			{ProductID: 1, Quantity: 1, Price: 30000, Options: []dto.OptionInput{option("Size", "M")}},
			{ProductID: 2, Quantity: 1, Price: 30000},
		},
	})
	if err == nil {
		t.Fatal("expected failure")
	}

	items, options, values := f.orders.counts()
	if items+options+values != 0 || f.tx.Rollback != 1 {
		t.Errorf("left behind %d/%d/%d rows, rollbacks=%d", items, options, values, f.tx.Rollback)
	}
	orders, _ := f.uc.GetOrderByFilter(context.Background(), &dto.OrderFilters{})
	if len(orders) != 0 {
		t.Errorf("orders = %+v", orders)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []*dto.CreateOrderInput{
		{Type: "", Items: []dto.ItemInput{{ProductID: 1, Quantity: 1}}},
		{Type: "Mang đi"},
		{Type: "Mang đi", Items: []dto.ItemInput{{ProductID: 1, Quantity: 0}}},
		{Type: "Mang đi", Items: []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: -1}}},
	}
	for i, in := range cases {
		if _, err := f.uc.CreateOrder(ctx, in); !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("case %d: err = %v", i, err)
		}
	}
	if f.tx.Begun != 0 {
		t.Errorf("validation must not open a transaction, begun = %d", f.tx.Begun)
	}
}

func TestUpdateOrderAppliesLineChanges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{
		Type:  "Tại quán",
		Total: 100000,
		Items: []dto.ItemInput{
			{ProductID: 1, Quantity: 1, Price: 30000},
			{ProductID: 2, Quantity: 1, Price: 40000, Options: []dto.OptionInput{option("Size", "L")}},
			{ProductID: 3, Quantity: 3, Price: 10000, Discount: 1000},
		},
	})
	before, _ := f.uc.GetOrderDetailByID(ctx, id)
	first, second, third := before.Items[0].ID, before.Items[1].ID, before.Items[2].ID
	untouched, _ := f.orders.item(third)

	err := f.uc.UpdateOrder(ctx, &dto.UpdateOrderInput{
		ID:    id,
		Type:  "Mang đi",
		Note:  "ít đường",
		Total: 150000,
		Items: []dto.ItemInput{
			{ID: &first, ProductID: 99, Quantity: 4, Price: 1},
			{ProductID: 4, Quantity: 2, Price: 25000, Options: []dto.OptionInput{option("Đá", "Không đá")}},
		},
		DeleteItems: []int64{second},
	})
	if err != nil {
		t.Fatal(err)
	}

	after, _ := f.uc.GetOrderDetailByID(ctx, id)
	if after.Type != "Mang đi" || after.Note != "ít đường" || after.Total != 150000 {
		t.Errorf("header = %+v", after.Order)
	}
	if len(after.Items) != 3 {
		t.Fatalf("items = %+v", after.Items)
	}

	got, _ := f.orders.item(first)
	if got.Quantity != 4 || got.ProductID != 1 || got.Price != 30000 {
		t.Errorf("updated line = %+v, only quantity may change", got)
	}
	if _, ok := f.orders.item(second); ok {
		t.Error("deleted line still present")
	}
	if got, _ := f.orders.item(third); got != untouched {
		t.Errorf("untouched line changed: %+v -> %+v", untouched, got)
	}
	added := after.Items[2]
	if added.ProductID != 4 || len(added.Options) != 1 || len(added.Options[0].Values) != 1 {
		t.Errorf("added line = %+v", added)
	}

	_, options, values := f.orders.counts()
	if options != 1 || values != 1 {
		t.Errorf("options=%d values=%d, deleted line must take its options along", options, values)
	}
	if f.tx.LastOpts != postgres.ReadCommitted {
		t.Errorf("opts = %+v", f.tx.LastOpts)
	}
}

func TestUpdateOrderIsAllOrNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Items: []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: 30000}}})
	d, _ := f.uc.GetOrderDetailByID(ctx, id)
	line := d.Items[0].ID

	err := f.uc.UpdateOrder(ctx, &dto.UpdateOrderInput{
		ID:          id,
		Type:        "Mang đi",
		Items:       []dto.ItemInput{{ID: &line, ProductID: 1, Quantity: 9}},
		DeleteItems: []int64{12345},
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v", err)
	}

	got, _ := f.orders.item(line)
	o, _ := f.orders.FindByID(ctx, id)
	if got.Quantity != 1 || o.Type != "Tại quán" {
		t.Errorf("partial update leaked: line=%+v order=%+v", got, o)
	}
}

func TestUpdateOrderRejectsForeignOrMissingLines(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Items: []dto.ItemInput{{ProductID: 1, Quantity: 1}}})
	b := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Items: []dto.ItemInput{{ProductID: 1, Quantity: 1}}})
	other, _ := f.uc.GetOrderDetailByID(ctx, b)
	foreign := other.Items[0].ID

	err := f.uc.UpdateOrder(ctx, &dto.UpdateOrderInput{ID: a, Type: "Tại quán", Items: []dto.ItemInput{{ID: &foreign, ProductID: 1, Quantity: 5}}})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("foreign line: err = %v", err)
	}
	if err := f.uc.UpdateOrder(ctx, &dto.UpdateOrderInput{ID: 999, Type: "Tại quán"}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing order: err = %v", err)
	}
}

func TestUpdatePaidOrderConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Total: 30000, Items: []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: 30000}}})
	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: id, PaymentMethodID: 1}); err != nil {
		t.Fatal(err)
	}

	err := f.uc.UpdateOrder(ctx, &dto.UpdateOrderInput{ID: id, Type: "Mang đi"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("err = %v", err)
	}
}

func TestPayOrderRollsUpSale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{
		Type:  "Tại quán",
		Total: 100000,
		Items: []dto.ItemInput{
			{ProductID: 1, Quantity: 2, Price: 30000},
			{ProductID: 2, Quantity: 1, Price: 20000, IsGift: true},
		},
	})

	o, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: id, PaymentMethodID: 2})
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != model.OrderStatusPaid || *o.PaymentID != 2 || !o.PaymentAt.Equal(now) {
		t.Errorf("order = %+v", o)
	}

	day := clock.Day(now)
	p, ok := f.stats.Product(1, day)
	if !ok || p.Sold != 2 || p.Revenue != 60000 {
		t.Errorf("product 1 bucket = %+v (exists %v)", p, ok)
	}
	if _, ok := f.stats.Product(2, day); ok {
		t.Error("gift item must not create a product bucket")
	}
	d, ok := f.stats.Day(day)
	if !ok || d.Revenue != 100000 || d.NumberOfOrder != 1 {
		t.Errorf("day bucket = %+v", d)
	}

	events := f.events.Events()
	if len(events) != 1 || events[0].Event.EventType != EventOrderPaid || events[0].Topic != "orders" {
		t.Errorf("events = %+v", events)
	}
}

func TestPayOrderTwiceConflictsAndKeepsStatistics(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Total: 30000, Items: []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: 30000}}})

	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: id, PaymentMethodID: 1}); err != nil {
		t.Fatal(err)
	}
	_, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: id, PaymentMethodID: 1})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v", err)
	}

	d, _ := f.stats.Day(clock.Day(now))
	p, _ := f.stats.Product(1, clock.Day(now))
	if d.NumberOfOrder != 1 || d.Revenue != 30000 || p.Sold != 1 {
		t.Errorf("day=%+v product=%+v", d, p)
	}
	if len(f.events.Events()) != 1 {
		t.Errorf("events = %d", len(f.events.Events()))
	}
}

func TestPayOrderFailures(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Total: 30000, Items: []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: 30000}}})

	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: 404, PaymentMethodID: 1}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing order: err = %v", err)
	}
	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: id, PaymentMethodID: 9}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown method: err = %v", err)
	}

	o, _ := f.orders.FindByID(ctx, id)
	if o.Status != model.OrderStatusUnpaid || f.stats.ProductBuckets() != 0 {
		t.Errorf("failed payment left effects: order=%+v buckets=%d", o, f.stats.ProductBuckets())
	}
}

func TestPayOrderBucketsByBusinessDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	items := []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: 30000}}
	late := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Total: 30000, Items: items})
	early := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Total: 30000, Items: items})

	// 23:59 in the shop is still June 5th.
	f.clock.Set(time.Date(2024, 6, 5, 16, 59, 0, 0, time.UTC))
	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: late, PaymentMethodID: 1}); err != nil {
		t.Fatal(err)
	}
	// 00:00 in the shop is June 6th even though UTC says the 5th.
	f.clock.Set(time.Date(2024, 6, 5, 17, 0, 0, 0, time.UTC))
	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: early, PaymentMethodID: 1}); err != nil {
		t.Fatal(err)
	}

	june5 := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	june6 := time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
	if d, ok := f.stats.Day(june5); !ok || d.NumberOfOrder != 1 {
		t.Errorf("june 5 = %+v", d)
	}
	if d, ok := f.stats.Day(june6); !ok || d.NumberOfOrder != 1 {
		t.Errorf("june 6 = %+v", d)
	}
}

func TestPayOrderUsesGivenPaymentTime(t *testing.T) {
	f := newFixture()
	id := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Items: []dto.ItemInput{{ProductID: 1, Quantity: 1}}})
	at := time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC)

	o, err := f.uc.PayOrder(context.Background(), &dto.PayOrderInput{OrderID: id, PaymentMethodID: 1, PaymentAt: &at})
	if err != nil {
		t.Fatal(err)
	}
	if !o.PaymentAt.Equal(at) {
		t.Errorf("payment_at = %v", o.PaymentAt)
	}
	if _, ok := f.stats.Day(clock.Day(now)); !ok {
		t.Error("statistics follow the business clock, not payment_at")
	}
}

func TestGetOrderByFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Items: []dto.ItemInput{{ProductID: 1, Quantity: 1}}})
	f.create(t, &dto.CreateOrderInput{Type: "Mang đi", Items: []dto.ItemInput{{ProductID: 1, Quantity: 1}}})
	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: a, PaymentMethodID: 1}); err != nil {
		t.Fatal(err)
	}

	paid, err := f.uc.GetOrderByFilter(ctx, &dto.OrderFilters{Status: model.OrderStatusPaid, StartDate: "2024-06-05", EndDate: "2024-06-05"})
	if err != nil {
		t.Fatal(err)
	}
	if len(paid) != 1 || paid[0].ID != a {
		t.Errorf("paid = %+v", paid)
	}

	none, err := f.uc.GetOrderByFilter(ctx, &dto.OrderFilters{StartDate: "2024-06-06"})
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("none = %+v err = %v", none, err)
	}

	if _, err := f.uc.GetOrderByFilter(ctx, &dto.OrderFilters{Status: "CANCELLED"}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("bad status: err = %v", err)
	}
}

func TestGetOrderDetailMissing(t *testing.T) {
	f := newFixture()
	if _, err := f.uc.GetOrderDetailByID(context.Background(), 1); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestVoidOrderHidesUnpaidOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Total: 30000, Items: []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: 30000}}})

	if err := f.uc.VoidOrder(ctx, id); err != nil {
		t.Fatal(err)
	}
	orders, err := f.uc.GetOrderByFilter(ctx, &dto.OrderFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 0 {
		t.Errorf("orders = %+v", orders)
	}
	if _, err := f.uc.GetOrderDetailByID(ctx, id); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("detail err = %v", err)
	}
	if err := f.uc.VoidOrder(ctx, id); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("second void err = %v", err)
	}
	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: id, PaymentMethodID: 1}); err == nil {
		t.Error("voided order must not be payable")
	}
}

func TestVoidPaidOrderConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Total: 30000, Items: []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: 30000}}})
	if _, err := f.uc.PayOrder(ctx, &dto.PayOrderInput{OrderID: id, PaymentMethodID: 1}); err != nil {
		t.Fatal(err)
	}

	if err := f.uc.VoidOrder(ctx, id); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v", err)
	}
	o, _ := f.orders.FindByID(ctx, id)
	if o.Void {
		t.Error("paid order must stay visible")
	}
	if err := f.uc.VoidOrder(ctx, 404); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing order err = %v", err)
	}
}

func TestUpdateOrderQuantityOnlyLine(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, &dto.CreateOrderInput{Type: "Tại quán", Total: 30000, Items: []dto.ItemInput{{ProductID: 1, Quantity: 1, Price: 30000}}})
	items, _ := f.orders.ListItems(ctx, id)
	lineID := items[0].ID

	if err := f.uc.UpdateOrder(ctx, &dto.UpdateOrderInput{ID: id, Type: "Tại quán", Items: []dto.ItemInput{{ID: &lineID, Quantity: 4}}}); err != nil {
		t.Fatal(err)
	}
	items, _ = f.orders.ListItems(ctx, id)
	if items[0].Quantity != 4 || items[0].ProductID != 1 {
		t.Errorf("item = %+v", items[0])
	}

	err := f.uc.UpdateOrder(ctx, &dto.UpdateOrderInput{ID: id, Type: "Tại quán", Items: []dto.ItemInput{{Quantity: 1}}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("new line without product: err = %v", err)
	}
}
