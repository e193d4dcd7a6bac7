package model

import "time"

const (
	NoteKindImport = "import"
	NoteKindExport = "export"
)

type ImportNote struct {
	ID           int64     `db:"id" json:"id"`
	ProviderID   int64     `db:"provider_id" json:"provider_id"`
	ReceiverName string    `db:"receiver_name" json:"receiver_name"`
	Note         string    `db:"note" json:"note"`
	Total        int64     `db:"total" json:"total"`
	CreatedBy    *string   `db:"created_by" json:"created_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	Active       bool      `db:"active" json:"active"`
}

type ImportNoteDetail struct {
	ID           int64 `db:"id" json:"id"`
	ImportNoteID int64 `db:"import_note_id" json:"import_note_id"`
	MaterialID   int64 `db:"material_id" json:"material_id"`
	Price        int64 `db:"price" json:"price"`
	Quantity     int64 `db:"quantity" json:"quantity"`
}

type ExportNote struct {
	ID         int64     `db:"id" json:"id"`
	PickerName string    `db:"picker_name" json:"picker_name"`
	Note       string    `db:"note" json:"note"`
	CreatedBy  *string   `db:"created_by" json:"created_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	Active     bool      `db:"active" json:"active"`
}

type ExportNoteDetail struct {
	ID           int64 `db:"id" json:"id"`
	ExportNoteID int64 `db:"export_note_id" json:"export_note_id"`
	MaterialID   int64 `db:"material_id" json:"material_id"`
	Quantity     int64 `db:"quantity" json:"quantity"`
}

// NoteSummary is one row of the merged import/export listing.
type NoteSummary struct {
	ID          int64     `db:"id" json:"id"`
	Kind        string    `db:"kind" json:"kind"`
	Counterpart string    `db:"counterpart" json:"counterpart"` // receiver or picker
	Note        string    `db:"note" json:"note"`
	Total       int64     `db:"total" json:"total"`
	CreatorName *string   `db:"creator_name" json:"creator_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NoteLine is a detail row joined with its material.
type NoteLine struct {
	MaterialID   int64   `db:"material_id" json:"material_id"`
	MaterialName string  `db:"material_name" json:"material_name"`
	UnitName     string  `db:"unit_name" json:"unit_name"`
	Price        int64   `db:"price" json:"price"`
	Quantity     int64   `db:"quantity" json:"quantity"`
	Expiration   *string `db:"expiration" json:"expiration,omitempty"`
}

// NoteDetail is the read-only projection used by the detail endpoints and
// the spreadsheet export.
type NoteDetail struct {
	ID           int64      `db:"id" json:"id"`
	Kind         string     `db:"kind" json:"kind"`
	ProviderName *string    `db:"provider_name" json:"provider_name,omitempty"`
	Counterpart  string     `db:"counterpart" json:"counterpart"`
	Note         string     `db:"note" json:"note"`
	Total        int64      `db:"total" json:"total"`
	CreatorName  *string    `db:"creator_name" json:"creator_name"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	Lines        []NoteLine `db:"-" json:"lines"`
}
