package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/material/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/material/materialtest"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres/txtest"
)

var fixedNow = time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)

func newTestUseCase() (*materialUseCase, *materialtest.Memory, *txtest.Transactor) {
	store := materialtest.NewMemory()
	clk := clock.NewFixed(fixedNow)
	tx := txtest.New(store)
	led := NewLedger(store, clk, logger.NewNop())
	uc := NewMaterialUseCase(store, led, tx, clk, logger.NewNop()).(*materialUseCase)
	return uc, store, tx
}

func TestLedgerImportStampsDateAndLogsMovement(t *testing.T) {
	store := materialtest.NewMemory()
	id := store.Seed(model.Material{Name: "Milk", StockQuantity: 10, Active: true})
	led := NewLedger(store, clock.NewFixed(fixedNow), logger.NewNop())

	m, err := led.AdjustStock(context.Background(), dto.StockAdjustment{
		MaterialID: id, Delta: 5, Direction: model.DirectionImport,
		ReferenceType: "import_note", ReferenceID: 1, UserID: "u-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.StockQuantity != 15 || store.Stock(id) != 15 {
		t.Errorf("stock = %d / %d, want 15", m.StockQuantity, store.Stock(id))
	}
	if got := store.Get(id).LatestImportDate; got == nil || !got.Equal(fixedNow) {
		t.Errorf("latest import date = %v", got)
	}
	if store.Get(id).LatestExportDate != nil {
		t.Error("export date must stay empty")
	}

	mv := store.Movements()
	if len(mv) != 1 || mv[0].QuantityChange != 5 || mv[0].QuantityAfter != 15 || *mv[0].ReferenceID != 1 {
		t.Errorf("movements = %+v", mv)
	}
}

func TestLedgerRejectsNegativeStock(t *testing.T) {
	store := materialtest.NewMemory()
	id := store.Seed(model.Material{Name: "Milk", StockQuantity: 10, MinStock: 5, Active: true})
	led := NewLedger(store, clock.NewFixed(fixedNow), logger.NewNop())

	_, err := led.AdjustStock(context.Background(), dto.StockAdjustment{
		MaterialID: id, Delta: -15, Direction: model.DirectionExport,
	})

	var stock *apperr.InsufficientStockError
	if !errors.As(err, &stock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if stock.MaterialName != "Milk" || stock.Available != 10 || stock.Remaining != -5 {
		t.Errorf("error = %+v", stock)
	}
	if store.Stock(id) != 10 {
		t.Errorf("stock changed to %d", store.Stock(id))
	}
	if len(store.Movements()) != 0 {
		t.Error("rejected export must not log a movement")
	}
}

func TestLedgerExportToZeroIsAllowed(t *testing.T) {
	store := materialtest.NewMemory()
	id := store.Seed(model.Material{Name: "Sugar", StockQuantity: 4})
	led := NewLedger(store, clock.NewFixed(fixedNow), logger.NewNop())

	m, err := led.AdjustStock(context.Background(), dto.StockAdjustment{MaterialID: id, Delta: -4, Direction: model.DirectionExport})
	if err != nil {
		t.Fatal(err)
	}
	if m.StockQuantity != 0 || m.LatestExportDate == nil {
		t.Errorf("material = %+v", m)
	}
}

func TestLedgerValidation(t *testing.T) {
	store := materialtest.NewMemory()
	id := store.Seed(model.Material{Name: "Tea", StockQuantity: 4})
	led := NewLedger(store, clock.NewFixed(fixedNow), logger.NewNop())
	ctx := context.Background()

	bad := []dto.StockAdjustment{
		{MaterialID: id, Delta: 0, Direction: model.DirectionImport},
		{MaterialID: id, Delta: -1, Direction: model.DirectionImport},
		{MaterialID: id, Delta: 1, Direction: model.DirectionExport},
		{MaterialID: id, Delta: 1, Direction: "gift"},
	}
	for _, adj := range bad {
		if _, err := led.AdjustStock(ctx, adj); !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("%+v: err = %v", adj, err)
		}
	}

	if _, err := led.AdjustStock(ctx, dto.StockAdjustment{MaterialID: 999, Delta: 1, Direction: model.DirectionImport}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown material: err = %v", err)
	}
}

func TestCreateMaterial(t *testing.T) {
	uc, store, _ := newTestUseCase()
	ctx := context.Background()
	exp := "2024-12-31"

	m, err := uc.CreateMaterial(ctx, &dto.CreateMaterialInput{Name: " Milk ", StockQuantity: 3, MinStock: 2, UnitID: 1, ExpirationDate: &exp, UserID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Milk" || store.Stock(m.ID) != 3 || m.ExpirationDate == nil || *m.CreatedBy != "u-1" {
		t.Errorf("material = %+v", m)
	}

	if _, err := uc.CreateMaterial(ctx, &dto.CreateMaterialInput{Name: "milk", UnitID: 1}); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("duplicate: err = %v", err)
	}
	if _, err := uc.CreateMaterial(ctx, &dto.CreateMaterialInput{Name: "Coffee", UnitID: 42}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown unit: err = %v", err)
	}
	bad := "31/12/2024"
	if _, err := uc.CreateMaterial(ctx, &dto.CreateMaterialInput{Name: "Coffee", UnitID: 1, ExpirationDate: &bad}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("bad date: err = %v", err)
	}
}

func TestUpdateMaterialBooksStockThroughLedger(t *testing.T) {
	uc, store, tx := newTestUseCase()
	ctx := context.Background()
	id := store.Seed(model.Material{Name: "Milk", StockQuantity: 10, Active: true})

	qty := int64(7)
	m, err := uc.UpdateMaterial(ctx, &dto.UpdateMaterialInput{ID: id, Name: "Fresh milk", StockQuantity: &qty, MinStock: 3, UnitID: 1, Active: true, UserID: "u-2"})
	if err != nil {
		t.Fatal(err)
	}
	if m.StockQuantity != 7 || store.Stock(id) != 7 || store.Get(id).Name != "Fresh milk" {
		t.Errorf("material = %+v", store.Get(id))
	}
	mv := store.Movements()
	if len(mv) != 1 || mv[0].Direction != model.DirectionAdjust || mv[0].QuantityChange != -3 {
		t.Errorf("movements = %+v", mv)
	}
	if tx.Commits != 1 {
		t.Errorf("commits = %d", tx.Commits)
	}
}

func TestUpdateMaterialRollsBackOnConflict(t *testing.T) {
	uc, store, tx := newTestUseCase()
	ctx := context.Background()
	id := store.Seed(model.Material{Name: "Milk", StockQuantity: 10, Active: true})
	store.Seed(model.Material{Name: "Sugar", StockQuantity: 1, Active: true})

	qty := int64(20)
	_, err := uc.UpdateMaterial(ctx, &dto.UpdateMaterialInput{ID: id, Name: "Sugar", StockQuantity: &qty, UnitID: 1})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v", err)
	}
	if store.Stock(id) != 10 || tx.Rollback != 1 {
		t.Errorf("stock = %d rollbacks = %d", store.Stock(id), tx.Rollback)
	}
}

func TestDeleteUnitInUse(t *testing.T) {
	uc, store, _ := newTestUseCase()
	ctx := context.Background()
	store.Seed(model.Material{Name: "Milk", UnitID: 1})

	if err := uc.DeleteUnit(ctx, 1); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v", err)
	}

	u, err := uc.CreateUnit(ctx, &dto.CreateUnitInput{Name: "Túi"})
	if err != nil {
		t.Fatal(err)
	}
	if err := uc.DeleteUnit(ctx, u.ID); err != nil {
		t.Fatalf("delete unused unit: %v", err)
	}
	if err := uc.DeleteUnit(ctx, u.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}

func TestListLowStock(t *testing.T) {
	uc, store, _ := newTestUseCase()
	store.Seed(model.Material{Name: "Milk", StockQuantity: 2, MinStock: 5, Active: true})
	store.Seed(model.Material{Name: "Tea", StockQuantity: 9, MinStock: 5, Active: true})
	store.Seed(model.Material{Name: "Old syrup", StockQuantity: 0, MinStock: 5, Active: false})

	items, err := uc.ListLowStock(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "Milk" {
		t.Errorf("low stock = %+v", items)
	}
}

func TestListMovementsValidatesDirection(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, _, err := uc.ListMovements(context.Background(), &dto.MovementFilters{Direction: "sideways"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("err = %v", err)
	}
}

// exportWhileLocking books an export against the row just before the first
// lock is granted, the way a concurrent export note commits while an edit
// waits on FOR UPDATE.
type exportWhileLocking struct {
	*materialtest.Memory
	exportQty int64
	fired     bool
}

func (s *exportWhileLocking) LockForUpdate(ctx context.Context, id int64) (*model.Material, error) {
	if !s.fired {
		s.fired = true
		if _, err := s.Memory.ApplyStockDelta(ctx, id, -s.exportQty, model.DirectionExport, fixedNow); err != nil {
			return nil, err
		}
	}
	return s.Memory.LockForUpdate(ctx, id)
}

func TestUpdateMaterialStockTargetsLockedQuantity(t *testing.T) {
	store := &exportWhileLocking{Memory: materialtest.NewMemory(), exportQty: 3}
	id := store.Seed(model.Material{Name: "Milk", StockQuantity: 10, UnitID: 1, Active: true})
	clk := clock.NewFixed(fixedNow)
	led := NewLedger(store, clk, logger.NewNop())
	uc := NewMaterialUseCase(store, led, txtest.New(store), clk, logger.NewNop())

	qty := int64(5)
	m, err := uc.UpdateMaterial(context.Background(), &dto.UpdateMaterialInput{ID: id, Name: "Milk", StockQuantity: &qty, UnitID: 1, Active: true})
	if err != nil {
		t.Fatal(err)
	}
	if m.StockQuantity != 5 || store.Stock(id) != 5 {
		t.Fatalf("stock = %d / %d, want 5", m.StockQuantity, store.Stock(id))
	}
	mv := store.Movements()
	if len(mv) != 1 || mv[0].QuantityChange != -2 || mv[0].QuantityAfter != 5 {
		t.Errorf("movements = %+v", mv)
	}
}

func TestUpdateMaterialWithoutStockLeavesLedgerAlone(t *testing.T) {
	uc, store, _ := newTestUseCase()
	id := store.Seed(model.Material{Name: "Milk", StockQuantity: 10, UnitID: 1, Active: true})

	qty := int64(10)
	if _, err := uc.UpdateMaterial(context.Background(), &dto.UpdateMaterialInput{ID: id, Name: "Milk", StockQuantity: &qty, MinStock: 2, UnitID: 1, Active: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.UpdateMaterial(context.Background(), &dto.UpdateMaterialInput{ID: id, Name: "Milk", MinStock: 4, UnitID: 1, Active: true}); err != nil {
		t.Fatal(err)
	}
	if store.Stock(id) != 10 || len(store.Movements()) != 0 {
		t.Errorf("stock = %d movements = %+v", store.Stock(id), store.Movements())
	}
}

func TestLedgerSetStock(t *testing.T) {
	store := materialtest.NewMemory()
	id := store.Seed(model.Material{Name: "Milk", StockQuantity: 4, Active: true})
	led := NewLedger(store, clock.NewFixed(fixedNow), logger.NewNop())
	ctx := context.Background()

	m, err := led.SetStock(ctx, dto.StockSetting{MaterialID: id, Quantity: 9, ReferenceType: "material_edit", ReferenceID: id})
	if err != nil {
		t.Fatal(err)
	}
	if m.StockQuantity != 9 {
		t.Errorf("stock = %d", m.StockQuantity)
	}
	mv := store.Movements()
	if len(mv) != 1 || mv[0].Direction != model.DirectionAdjust || mv[0].QuantityChange != 5 {
		t.Errorf("movements = %+v", mv)
	}

	if _, err := led.SetStock(ctx, dto.StockSetting{MaterialID: id, Quantity: -1}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("negative target err = %v", err)
	}
	if _, err := led.SetStock(ctx, dto.StockSetting{MaterialID: 999, Quantity: 1}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing material err = %v", err)
	}
}

func TestLedgerAdjustmentShortfallNamesDirection(t *testing.T) {
	store := materialtest.NewMemory()
	id := store.Seed(model.Material{Name: "Milk", StockQuantity: 2, Active: true})
	led := NewLedger(store, clock.NewFixed(fixedNow), logger.NewNop())

	_, err := led.AdjustStock(context.Background(), dto.StockAdjustment{MaterialID: id, Delta: -3, Direction: model.DirectionAdjust})

	var stock *apperr.InsufficientStockError
	if !errors.As(err, &stock) {
		t.Fatalf("err = %v", err)
	}
	if stock.Direction != model.DirectionAdjust || stock.Action() != "adjustment" {
		t.Errorf("error = %+v", stock)
	}
}
