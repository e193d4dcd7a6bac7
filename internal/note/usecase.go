package note

import (
	"context"
	"io"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/note/dto"
)

type UseCase interface {
	CreateImportNote(ctx context.Context, input *dto.CreateImportNoteInput) (int64, error)
	CreateExportNote(ctx context.Context, input *dto.CreateExportNoteInput) (int64, error)
	DeleteImportNote(ctx context.Context, id int64) error
	DeleteExportNote(ctx context.Context, id int64) error
	ListByFilter(ctx context.Context, filters *dto.NoteFilters) ([]model.NoteSummary, error)
	GetImportNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error)
	GetExportNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error)

	// Export*Excel write the note as an .xlsx workbook to w.
	ExportImportNoteExcel(ctx context.Context, id int64, w io.Writer) error
	ExportExportNoteExcel(ctx context.Context, id int64, w io.Writer) error
}
