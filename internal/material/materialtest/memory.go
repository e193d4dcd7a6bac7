// Package materialtest holds an in-memory material store for usecase tests.
package materialtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/material/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
)

type Memory struct {
	mu        sync.Mutex
	materials map[int64]model.Material
	units     map[int64]model.Unit
	movements []model.MaterialMovement
	nextID    int64
}

func NewMemory() *Memory {
	return &Memory{
		materials: make(map[int64]model.Material),
		units:     map[int64]model.Unit{1: {ID: 1, Name: "Lít"}},
		nextID:    100,
	}
}

// Seed stores m as-is and returns its id.
func (s *Memory) Seed(m model.Material) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		s.nextID++
		m.ID = s.nextID
	}
	if m.UnitID == 0 {
		m.UnitID = 1
	}
	s.materials[m.ID] = m
	return m.ID
}

// Stock returns the current quantity of id, or -1 when unknown.
func (s *Memory) Stock(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[id]
	if !ok {
		return -1
	}
	return m.StockQuantity
}

func (s *Memory) Get(id int64) model.Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materials[id]
}

func (s *Memory) Movements() []model.MaterialMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.MaterialMovement(nil), s.movements...)
}

func (s *Memory) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	materials := make(map[int64]model.Material, len(s.materials))
	for k, v := range s.materials {
		materials[k] = v
	}
	units := make(map[int64]model.Unit, len(s.units))
	for k, v := range s.units {
		units[k] = v
	}
	movements := append([]model.MaterialMovement(nil), s.movements...)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.materials = materials
		s.units = units
		s.movements = movements
	}
}

func (s *Memory) LockForUpdate(_ context.Context, id int64) (*model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *Memory) ApplyStockDelta(_ context.Context, id, delta int64, direction string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.materials[id]
	m.StockQuantity += delta
	switch direction {
	case model.DirectionImport:
		m.LatestImportDate = &at
	case model.DirectionExport:
		m.LatestExportDate = &at
	}
	m.UpdatedAt = at
	s.materials[id] = m
	return m.StockQuantity, nil
}

func (s *Memory) LogMovement(_ context.Context, mv *model.MaterialMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, *mv)
	return nil
}

func (s *Memory) Create(_ context.Context, m *model.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	s.materials[m.ID] = *m
	return nil
}

func (s *Memory) FindByID(_ context.Context, id int64) (*model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *Memory) FindByName(_ context.Context, name string) (*model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.materials {
		if strings.EqualFold(m.Name, name) {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Memory) FindAll(_ context.Context, f *dto.MaterialFilters) ([]model.Material, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []model.Material
	for _, m := range s.materials {
		if f.Keyword != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(f.Keyword)) {
			continue
		}
		if f.Active != nil && m.Active != *f.Active {
			continue
		}
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, len(items), nil
}

func (s *Memory) Update(_ context.Context, m *model.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.materials[m.ID]
	cur.Name = m.Name
	cur.MinStock = m.MinStock
	cur.UnitID = m.UnitID
	cur.ExpirationDate = m.ExpirationDate
	cur.Active = m.Active
	cur.LastUpdatedBy = m.LastUpdatedBy
	cur.UpdatedAt = m.UpdatedAt
	s.materials[m.ID] = cur
	return nil
}

func (s *Memory) ListLowStock(_ context.Context) ([]model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []model.Material
	for _, m := range s.materials {
		if m.Active && m.StockQuantity <= m.MinStock {
			items = append(items, m)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StockQuantity < items[j].StockQuantity })
	return items, nil
}

func (s *Memory) ListMovements(_ context.Context, f *dto.MovementFilters) ([]model.MaterialMovement, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []model.MaterialMovement
	for _, mv := range s.movements {
		if f.MaterialID != 0 && mv.MaterialID != f.MaterialID {
			continue
		}
		if f.Direction != "" && mv.Direction != f.Direction {
			continue
		}
		items = append(items, mv)
	}
	return items, len(items), nil
}

func (s *Memory) ListUnits(_ context.Context) ([]model.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var units []model.Unit
	for _, u := range s.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}

func (s *Memory) FindUnitByID(_ context.Context, id int64) (*model.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Memory) FindUnitByName(_ context.Context, name string) (*model.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.units {
		if strings.EqualFold(u.Name, name) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Memory) CreateUnit(_ context.Context, u *model.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	s.units[u.ID] = *u
	return nil
}

func (s *Memory) DeleteUnit(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.units, id)
	return nil
}

func (s *Memory) CountByUnit(_ context.Context, unitID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.materials {
		if m.UnitID == unitID {
			n++
		}
	}
	return n, nil
}
