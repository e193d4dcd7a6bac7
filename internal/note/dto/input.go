package dto

type ImportItemInput struct {
	MaterialID int64 `json:"material_id" binding:"required"`
	Price      int64 `json:"price" binding:"min=0"`
	Quantity   int64 `json:"quantity" binding:"required,gt=0"`
}

type CreateImportNoteInput struct {
	ProviderID   int64             `json:"provider_id" binding:"required"`
	ReceiverName string            `json:"receiver_name" binding:"required"`
	Note         string            `json:"note"`
	Total        int64             `json:"total" binding:"min=0"`
	Items        []ImportItemInput `json:"import_note_detail" binding:"required,min=1,dive"`
	UserID       string            `json:"-"`
}

type ExportItemInput struct {
	MaterialID int64 `json:"material_id" binding:"required"`
	Quantity   int64 `json:"quantity" binding:"required,gt=0"`
}

type CreateExportNoteInput struct {
	PickerName string            `json:"picker_name" binding:"required"`
	Note       string            `json:"note"`
	Items      []ExportItemInput `json:"export_note_detail" binding:"required,min=1,dive"`
	UserID     string            `json:"-"`
}
