package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/provider/dto"
)

type memoryRepo struct {
	items  map[int64]model.Provider
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]model.Provider)}
}

func (r *memoryRepo) Create(_ context.Context, p *model.Provider) error {
	r.nextID++
	p.ID = r.nextID
	r.items[p.ID] = *p
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id int64) (*model.Provider, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryRepo) FindByName(_ context.Context, name string) (*model.Provider, error) {
	for _, p := range r.items {
		if strings.EqualFold(p.Name, name) {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) FindAll(_ context.Context, f *dto.ProviderFilters) ([]model.Provider, error) {
	var out []model.Provider
	for _, p := range r.items {
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, p *model.Provider) error {
	r.items[p.ID] = *p
	return nil
}

func newTestUseCase() (*providerUseCase, *memoryRepo) {
	repo := newMemoryRepo()
	clk := clock.NewFixed(time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC))
	return NewProviderUseCase(repo, clk, logger.NewNop()).(*providerUseCase), repo
}

func TestCreateProviderRejectsDuplicateName(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	p, err := uc.CreateProvider(ctx, &dto.CreateProviderInput{Name: " Vinamilk ", UserID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == 0 || p.Name != "Vinamilk" || !p.Active || *p.CreatedBy != "u-1" {
		t.Errorf("provider = %+v", p)
	}

	if _, err := uc.CreateProvider(ctx, &dto.CreateProviderInput{Name: "VINAMILK"}); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("duplicate: err = %v", err)
	}
	if _, err := uc.CreateProvider(ctx, &dto.CreateProviderInput{Name: "  "}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("blank: err = %v", err)
	}
}

func TestUpdateProvider(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()
	a, _ := uc.CreateProvider(ctx, &dto.CreateProviderInput{Name: "A"})
	uc.CreateProvider(ctx, &dto.CreateProviderInput{Name: "B"})

	if _, err := uc.UpdateProvider(ctx, &dto.UpdateProviderInput{ID: a.ID, Name: "b"}); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("rename onto existing: err = %v", err)
	}
	if _, err := uc.UpdateProvider(ctx, &dto.UpdateProviderInput{ID: 99, Name: "C"}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing: err = %v", err)
	}

	p, err := uc.UpdateProvider(ctx, &dto.UpdateProviderInput{ID: a.ID, Name: "a", Address: "Q1", Active: false, UserID: "u-2"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "a" || repo.items[a.ID].Address != "Q1" || repo.items[a.ID].Active {
		t.Errorf("stored = %+v", repo.items[a.ID])
	}
}

func TestGetProviderNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	if _, err := uc.GetProvider(context.Background(), 7); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v", err)
	}
}
