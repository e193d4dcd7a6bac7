package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/note/dto"
	providerdto "github.com/fekuna/omnipos-cafe-service/internal/provider/dto"
)

type memoryNotes struct {
	mu            sync.Mutex
	imports       map[int64]model.ImportNote
	exports       map[int64]model.ExportNote
	importDetails []model.ImportNoteDetail
	exportDetails []model.ExportNoteDetail
	nextID        int64
}

func newMemoryNotes() *memoryNotes {
	return &memoryNotes{
		imports: make(map[int64]model.ImportNote),
		exports: make(map[int64]model.ExportNote),
	}
}

func (s *memoryNotes) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	imports := make(map[int64]model.ImportNote, len(s.imports))
	for k, v := range s.imports {
		imports[k] = v
	}
	exports := make(map[int64]model.ExportNote, len(s.exports))
	for k, v := range s.exports {
		exports[k] = v
	}
	importDetails := append([]model.ImportNoteDetail(nil), s.importDetails...)
	exportDetails := append([]model.ExportNoteDetail(nil), s.exportDetails...)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.imports, s.exports = imports, exports
		s.importDetails, s.exportDetails = importDetails, exportDetails
	}
}

func (s *memoryNotes) CreateImportNote(_ context.Context, n *model.ImportNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n.ID = s.nextID
	s.imports[n.ID] = *n
	return nil
}

func (s *memoryNotes) CreateImportNoteDetails(_ context.Context, details []model.ImportNoteDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importDetails = append(s.importDetails, details...)
	return nil
}

func (s *memoryNotes) CreateExportNote(_ context.Context, n *model.ExportNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n.ID = s.nextID
	s.exports[n.ID] = *n
	return nil
}

func (s *memoryNotes) CreateExportNoteDetails(_ context.Context, details []model.ExportNoteDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exportDetails = append(s.exportDetails, details...)
	return nil
}

func (s *memoryNotes) DeactivateImportNote(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.imports[id]
	if !ok || !n.Active {
		return false, nil
	}
	n.Active = false
	s.imports[id] = n
	return true, nil
}

func (s *memoryNotes) DeactivateExportNote(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.exports[id]
	if !ok || !n.Active {
		return false, nil
	}
	n.Active = false
	s.exports[id] = n
	return true, nil
}

func (s *memoryNotes) FindAll(_ context.Context, f *dto.NoteFilters) ([]model.NoteSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.NoteSummary
	if f.Kind != model.NoteKindExport {
		for _, n := range s.imports {
			if n.Active {
				out = append(out, model.NoteSummary{ID: n.ID, Kind: model.NoteKindImport, Counterpart: n.ReceiverName, Note: n.Note, Total: n.Total, CreatedAt: n.CreatedAt})
			}
		}
	}
	if f.Kind != model.NoteKindImport {
		for _, n := range s.exports {
			if n.Active {
				out = append(out, model.NoteSummary{ID: n.ID, Kind: model.NoteKindExport, Counterpart: n.PickerName, Note: n.Note, CreatedAt: n.CreatedAt})
			}
		}
	}
	filtered := out[:0]
	for _, n := range out {
		if f.From != nil && n.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && n.CreatedAt.After(*f.To) {
			continue
		}
		filtered = append(filtered, n)
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

func (s *memoryNotes) FindImportNoteDetail(_ context.Context, id int64) (*model.NoteDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.imports[id]
	if !ok || !n.Active {
		return nil, nil
	}
	provider := "Provider"
	d := &model.NoteDetail{ID: n.ID, Kind: model.NoteKindImport, ProviderName: &provider, Counterpart: n.ReceiverName, Note: n.Note, Total: n.Total, CreatedAt: n.CreatedAt}
	for _, line := range s.importDetails {
		if line.ImportNoteID == id {
			d.Lines = append(d.Lines, model.NoteLine{MaterialID: line.MaterialID, MaterialName: "Material", UnitName: "Lít", Price: line.Price, Quantity: line.Quantity})
		}
	}
	return d, nil
}

func (s *memoryNotes) FindExportNoteDetail(_ context.Context, id int64) (*model.NoteDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.exports[id]
	if !ok || !n.Active {
		return nil, nil
	}
	d := &model.NoteDetail{ID: n.ID, Kind: model.NoteKindExport, Counterpart: n.PickerName, Note: n.Note, CreatedAt: n.CreatedAt}
	for _, line := range s.exportDetails {
		if line.ExportNoteID == id {
			d.Lines = append(d.Lines, model.NoteLine{MaterialID: line.MaterialID, MaterialName: "Material", UnitName: "Lít", Quantity: line.Quantity})
		}
	}
	return d, nil
}

func (s *memoryNotes) headers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.imports) + len(s.exports)
}

func (s *memoryNotes) detailRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.importDetails) + len(s.exportDetails)
}

type memoryProviders struct {
	items map[int64]model.Provider
}

func (r *memoryProviders) Create(_ context.Context, p *model.Provider) error {
	r.items[p.ID] = *p
	return nil
}

func (r *memoryProviders) FindByID(_ context.Context, id int64) (*model.Provider, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryProviders) FindByName(_ context.Context, name string) (*model.Provider, error) {
	for _, p := range r.items {
		if strings.EqualFold(p.Name, name) {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryProviders) FindAll(_ context.Context, _ *providerdto.ProviderFilters) ([]model.Provider, error) {
	var out []model.Provider
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryProviders) Update(_ context.Context, p *model.Provider) error {
	r.items[p.ID] = *p
	return nil
}
