package note

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/note/dto"
)

type Repository interface {
	CreateImportNote(ctx context.Context, n *model.ImportNote) error
	CreateImportNoteDetails(ctx context.Context, details []model.ImportNoteDetail) error
	CreateExportNote(ctx context.Context, n *model.ExportNote) error
	CreateExportNoteDetails(ctx context.Context, details []model.ExportNoteDetail) error

	// Deactivate* report false when no active note has that id.
	DeactivateImportNote(ctx context.Context, id int64) (bool, error)
	DeactivateExportNote(ctx context.Context, id int64) (bool, error)

	FindAll(ctx context.Context, filters *dto.NoteFilters) ([]model.NoteSummary, error)
	FindImportNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error)
	FindExportNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error)
}
