package usecase

import (
	"context"
	"io"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

func (uc *noteUseCase) ExportImportNoteExcel(ctx context.Context, id int64, w io.Writer) error {
	d, err := uc.GetImportNoteDetail(ctx, id)
	if err != nil {
		return err
	}
	return writeNoteWorkbook(d, w)
}

func (uc *noteUseCase) ExportExportNoteExcel(ctx context.Context, id int64, w io.Writer) error {
	d, err := uc.GetExportNoteDetail(ctx, id)
	if err != nil {
		return err
	}
	return writeNoteWorkbook(d, w)
}

// writeNoteWorkbook lays the note out as a header block followed by one row
// per line.
func writeNoteWorkbook(d *model.NoteDetail, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	title := "PHIẾU XUẤT KHO"
	counterpart := "Người nhận hàng"
	if d.Kind == model.NoteKindImport {
		title = "PHIẾU NHẬP KHO"
		counterpart = "Người giao hàng"
	}

	header := [][]interface{}{
		{title},
		{"Mã phiếu", d.ID},
		{"Ngày tạo", d.CreatedAt.In(clock.Location).Format("2006-01-02 15:04")},
		{counterpart, d.Counterpart},
		{"Người tạo", deref(d.CreatorName)},
		{"Ghi chú", d.Note},
	}
	if d.ProviderName != nil {
		header = append(header, []interface{}{"Nhà cung cấp", *d.ProviderName})
	}

	row := 1
	for _, values := range header {
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}
	row++

	if err := setRow(f, row, []interface{}{"STT", "Nguyên liệu", "Đơn vị", "Số lượng", "Đơn giá", "Thành tiền", "Hạn sử dụng"}); err != nil {
		return err
	}
	row++

	var total int64
	for i, line := range d.Lines {
		amount := line.Price * line.Quantity
		total += amount
		if err := setRow(f, row, []interface{}{i + 1, line.MaterialName, line.UnitName, line.Quantity, line.Price, amount, deref(line.Expiration)}); err != nil {
			return err
		}
		row++
	}

	if d.Kind == model.NoteKindImport {
		if d.Total != 0 {
			total = d.Total
		}
		if err := setRow(f, row, []interface{}{"", "Tổng cộng", "", "", "", total}); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
