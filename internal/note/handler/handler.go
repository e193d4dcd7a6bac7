package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/note"
	"github.com/fekuna/omnipos-cafe-service/internal/note/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type NoteHandler struct {
	uc     note.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewNoteHandler(uc note.UseCase, resp *httpx.Responder, log logger.ZapLogger) *NoteHandler {
	return &NoteHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/import-export")
	g.GET("", h.ListNotes)

	g.POST("/import-notes", h.CreateImportNote)
	g.GET("/import-notes/:id", h.GetImportNote)
	g.GET("/import-notes/:id/excel", h.ExportImportNoteExcel)
	g.DELETE("/import-notes/:id", h.DeleteImportNote)

	g.POST("/export-notes", h.CreateExportNote)
	g.GET("/export-notes/:id", h.GetExportNote)
	g.GET("/export-notes/:id/excel", h.ExportExportNoteExcel)
	g.DELETE("/export-notes/:id", h.DeleteExportNote)
}

type listQuery struct {
	Kind        string `form:"kind"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	CreatorName string `form:"creator_name"`
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.resp.BindError(c, err)
		return
	}
	notes, err := h.uc.ListByFilter(c.Request.Context(), &dto.NoteFilters{
		Kind:        q.Kind,
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		CreatorName: q.CreatorName,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, notes, len(notes))
}

func (h *NoteHandler) CreateImportNote(c *gin.Context) {
	var input dto.CreateImportNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.UserID = auth.UserID(c.Request.Context())

	id, err := h.uc.CreateImportNote(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", gin.H{"id": id})
}

func (h *NoteHandler) CreateExportNote(c *gin.Context) {
	var input dto.CreateExportNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.UserID = auth.UserID(c.Request.Context())

	id, err := h.uc.CreateExportNote(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", gin.H{"id": id})
}

func (h *NoteHandler) GetImportNote(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	d, err := h.uc.GetImportNoteDetail(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", d)
}

func (h *NoteHandler) GetExportNote(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	d, err := h.uc.GetExportNoteDetail(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", d)
}

func (h *NoteHandler) DeleteImportNote(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	if err := h.uc.DeleteImportNote(c.Request.Context(), id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Deleted", nil)
}

func (h *NoteHandler) DeleteExportNote(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	if err := h.uc.DeleteExportNote(c.Request.Context(), id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Deleted", nil)
}

func (h *NoteHandler) ExportImportNoteExcel(c *gin.Context) {
	h.sendWorkbook(c, "phieu-nhap", h.uc.ExportImportNoteExcel)
}

func (h *NoteHandler) ExportExportNoteExcel(c *gin.Context) {
	h.sendWorkbook(c, "phieu-xuat", h.uc.ExportExportNoteExcel)
}

// sendWorkbook renders into memory first so a failure still gets a JSON error.
func (h *NoteHandler) sendWorkbook(c *gin.Context, prefix string, render func(ctx context.Context, id int64, w io.Writer) error) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var buf bytes.Buffer
	if err := render(c.Request.Context(), id, &buf); err != nil {
		h.resp.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%d.xlsx", prefix, id))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
