package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/note/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateImportNote(ctx context.Context, n *model.ImportNote) error {
	query := `
        INSERT INTO import_notes (provider_id, receiver_name, note, total, created_by, created_at, active)
        VALUES (:provider_id, :receiver_name, :note, :total, :created_by, :created_at, TRUE)
        RETURNING id
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &n.ID, query, n)
}

func (r *PGRepository) CreateImportNoteDetails(ctx context.Context, details []model.ImportNoteDetail) error {
	if len(details) == 0 {
		return nil
	}
	query := `
        INSERT INTO import_note_details (import_note_id, material_id, price, quantity)
        VALUES (:import_note_id, :material_id, :price, :quantity)
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, details)
	return err
}

func (r *PGRepository) CreateExportNote(ctx context.Context, n *model.ExportNote) error {
	query := `
        INSERT INTO export_notes (picker_name, note, created_by, created_at, active)
        VALUES (:picker_name, :note, :created_by, :created_at, TRUE)
        RETURNING id
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &n.ID, query, n)
}

func (r *PGRepository) CreateExportNoteDetails(ctx context.Context, details []model.ExportNoteDetail) error {
	if len(details) == 0 {
		return nil
	}
	query := `
        INSERT INTO export_note_details (export_note_id, material_id, quantity)
        VALUES (:export_note_id, :material_id, :quantity)
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, details)
	return err
}

func (r *PGRepository) DeactivateImportNote(ctx context.Context, id int64) (bool, error) {
	return r.deactivate(ctx, `UPDATE import_notes SET active = FALSE WHERE id = $1 AND active`, id)
}

func (r *PGRepository) DeactivateExportNote(ctx context.Context, id int64) (bool, error) {
	return r.deactivate(ctx, `UPDATE export_notes SET active = FALSE WHERE id = $1 AND active`, id)
}

func (r *PGRepository) deactivate(ctx context.Context, query string, id int64) (bool, error) {
	res, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const notesUnion = `
    SELECT n.id, 'import' AS kind, n.receiver_name AS counterpart, n.note, n.total,
           u.full_name AS creator_name, n.created_at
    FROM import_notes n
    LEFT JOIN users u ON u.id = n.created_by
    WHERE n.active
    UNION ALL
    SELECT n.id, 'export' AS kind, n.picker_name AS counterpart, n.note, 0 AS total,
           u.full_name AS creator_name, n.created_at
    FROM export_notes n
    LEFT JOIN users u ON u.id = n.created_by
    WHERE n.active
`

func (r *PGRepository) FindAll(ctx context.Context, f *dto.NoteFilters) ([]model.NoteSummary, error) {
	notes := []model.NoteSummary{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = f.Kind
	}
	if f.From != nil {
		conditions = append(conditions, "created_at >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "created_at <= :to")
		args["to"] = *f.To
	}
	if f.CreatorName != "" {
		conditions = append(conditions, "creator_name ILIKE :creator_name")
		args["creator_name"] = "%" + f.CreatorName + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT * FROM (" + notesUnion + ") notes" + whereClause + " ORDER BY created_at DESC, id DESC"
	if err := postgres.NamedSelect(ctx, postgres.Ext(ctx, r.DB), &notes, query, args); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *PGRepository) FindImportNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error) {
	header := `
        SELECT n.id, 'import' AS kind, p.name AS provider_name, n.receiver_name AS counterpart,
               n.note, n.total, u.full_name AS creator_name, n.created_at
        FROM import_notes n
        JOIN providers p ON p.id = n.provider_id
        LEFT JOIN users u ON u.id = n.created_by
        WHERE n.id = $1 AND n.active
    `
	lines := `
        SELECT d.material_id, m.name AS material_name, un.name AS unit_name, d.price, d.quantity,
               to_char(m.expiration_date, 'YYYY-MM-DD') AS expiration
        FROM import_note_details d
        JOIN materials m ON m.id = d.material_id
        JOIN units un ON un.id = m.unit_id
        WHERE d.import_note_id = $1
        ORDER BY d.id
    `
	return r.findDetail(ctx, header, lines, id)
}

func (r *PGRepository) FindExportNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error) {
	header := `
        SELECT n.id, 'export' AS kind, n.picker_name AS counterpart, n.note, 0 AS total,
               u.full_name AS creator_name, n.created_at
        FROM export_notes n
        LEFT JOIN users u ON u.id = n.created_by
        WHERE n.id = $1 AND n.active
    `
	lines := `
        SELECT d.material_id, m.name AS material_name, un.name AS unit_name, 0 AS price, d.quantity,
               to_char(m.expiration_date, 'YYYY-MM-DD') AS expiration
        FROM export_note_details d
        JOIN materials m ON m.id = d.material_id
        JOIN units un ON un.id = m.unit_id
        WHERE d.export_note_id = $1
        ORDER BY d.id
    `
	return r.findDetail(ctx, header, lines, id)
}

func (r *PGRepository) findDetail(ctx context.Context, headerQuery, linesQuery string, id int64) (*model.NoteDetail, error) {
	q := postgres.Ext(ctx, r.DB)

	var detail model.NoteDetail
	if err := q.GetContext(ctx, &detail, headerQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := q.SelectContext(ctx, &detail.Lines, linesQuery, id); err != nil {
		return nil, err
	}
	return &detail, nil
}
