package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/material"
	materialdto "github.com/fekuna/omnipos-cafe-service/internal/material/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/note"
	"github.com/fekuna/omnipos-cafe-service/internal/note/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/metrics"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/provider"
	"go.uber.org/zap"
)

const EventNoteCreated = "warehouse.note_created"

// NoteCreatedPayload is published once a note has committed.
type NoteCreatedPayload struct {
	NoteID int64  `json:"note_id"`
	Kind   string `json:"kind"`
	Lines  int    `json:"lines"`
	Total  int64  `json:"total"`
}

type noteUseCase struct {
	repo      note.Repository
	providers provider.Repository
	ledger    material.Ledger
	tx        postgres.Transactor
	publisher broker.Publisher
	topic     string
	clock     clock.Clock
	logger    logger.ZapLogger
}

func NewNoteUseCase(
	repo note.Repository,
	providers provider.Repository,
	ledger material.Ledger,
	tx postgres.Transactor,
	publisher broker.Publisher,
	topic string,
	clk clock.Clock,
	log logger.ZapLogger,
) note.UseCase {
	return &noteUseCase{
		repo:      repo,
		providers: providers,
		ledger:    ledger,
		tx:        tx,
		publisher: publisher,
		topic:     topic,
		clock:     clk,
		logger:    log,
	}
}

// CreateImportNote stores the note and books every line as a stock import.
// Lines are booked before the details are written so an unknown material
// surfaces as NotFound; any failure rolls back the whole note.
func (uc *noteUseCase) CreateImportNote(ctx context.Context, input *dto.CreateImportNoteInput) (int64, error) {
	if strings.TrimSpace(input.ReceiverName) == "" {
		return 0, apperr.Validation("receiver_name is required")
	}
	if len(input.Items) == 0 {
		return 0, apperr.Validation("import note needs at least one item")
	}
	var sum int64
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return 0, apperr.Validation(fmt.Sprintf("item %d: quantity must be positive", i))
		}
		if item.Price < 0 {
			return 0, apperr.Validation(fmt.Sprintf("item %d: price must not be negative", i))
		}
		sum += item.Price * item.Quantity
	}

	n := &model.ImportNote{
		ProviderID:   input.ProviderID,
		ReceiverName: strings.TrimSpace(input.ReceiverName),
		Note:         input.Note,
		Total:        input.Total,
		CreatedBy:    userPtr(input.UserID),
		CreatedAt:    uc.clock.Now(),
		Active:       true,
	}
	if n.Total == 0 {
		n.Total = sum
	}

	err := uc.tx.WithinTransaction(ctx, postgres.Serializable, func(ctx context.Context) error {
		p, err := uc.providers.FindByID(ctx, input.ProviderID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound("provider", input.ProviderID)
		}

		if err := uc.repo.CreateImportNote(ctx, n); err != nil {
			return fmt.Errorf("insert import note: %w", err)
		}

		for _, item := range input.Items {
			if _, err := uc.ledger.AdjustStock(ctx, materialdto.StockAdjustment{
				MaterialID:    item.MaterialID,
				Delta:         item.Quantity,
				Direction:     model.DirectionImport,
				ReferenceType: "import_note",
				ReferenceID:   n.ID,
				UserID:        input.UserID,
			}); err != nil {
				return err
			}
		}

		details := make([]model.ImportNoteDetail, 0, len(input.Items))
		for _, item := range input.Items {
			details = append(details, model.ImportNoteDetail{
				ImportNoteID: n.ID,
				MaterialID:   item.MaterialID,
				Price:        item.Price,
				Quantity:     item.Quantity,
			})
		}
		if err := uc.repo.CreateImportNoteDetails(ctx, details); err != nil {
			return fmt.Errorf("insert import note details: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warn("import note rejected", zap.Int64("provider_id", input.ProviderID), zap.Error(err))
		return 0, err
	}

	metrics.NotesCreatedTotal.WithLabelValues(model.NoteKindImport).Inc()
	uc.logger.Info("import note created", zap.Int64("note_id", n.ID), zap.Int("lines", len(input.Items)), zap.Int64("total", n.Total))
	uc.publish(ctx, NoteCreatedPayload{NoteID: n.ID, Kind: model.NoteKindImport, Lines: len(input.Items), Total: n.Total})
	return n.ID, nil
}

// CreateExportNote stores the note and withdraws every line from stock. The
// first line that would leave a material negative aborts the whole note.
func (uc *noteUseCase) CreateExportNote(ctx context.Context, input *dto.CreateExportNoteInput) (int64, error) {
	if strings.TrimSpace(input.PickerName) == "" {
		return 0, apperr.Validation("picker_name is required")
	}
	if len(input.Items) == 0 {
		return 0, apperr.Validation("export note needs at least one item")
	}
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return 0, apperr.Validation(fmt.Sprintf("item %d: quantity must be positive", i))
		}
	}

	n := &model.ExportNote{
		PickerName: strings.TrimSpace(input.PickerName),
		Note:       input.Note,
		CreatedBy:  userPtr(input.UserID),
		CreatedAt:  uc.clock.Now(),
		Active:     true,
	}

	err := uc.tx.WithinTransaction(ctx, postgres.Serializable, func(ctx context.Context) error {
		if err := uc.repo.CreateExportNote(ctx, n); err != nil {
			return fmt.Errorf("insert export note: %w", err)
		}

		for _, item := range input.Items {
			if _, err := uc.ledger.AdjustStock(ctx, materialdto.StockAdjustment{
				MaterialID:    item.MaterialID,
				Delta:         -item.Quantity,
				Direction:     model.DirectionExport,
				ReferenceType: "export_note",
				ReferenceID:   n.ID,
				UserID:        input.UserID,
			}); err != nil {
				return err
			}
		}

		details := make([]model.ExportNoteDetail, 0, len(input.Items))
		for _, item := range input.Items {
			details = append(details, model.ExportNoteDetail{
				ExportNoteID: n.ID,
				MaterialID:   item.MaterialID,
				Quantity:     item.Quantity,
			})
		}
		if err := uc.repo.CreateExportNoteDetails(ctx, details); err != nil {
			return fmt.Errorf("insert export note details: %w", err)
		}
		return nil
	})
	if err != nil {
		var stock *apperr.InsufficientStockError
		if errors.As(err, &stock) {
			metrics.StockRejectionsTotal.Inc()
		}
		uc.logger.Warn("export note rejected", zap.String("picker", n.PickerName), zap.Error(err))
		return 0, err
	}

	metrics.NotesCreatedTotal.WithLabelValues(model.NoteKindExport).Inc()
	uc.logger.Info("export note created", zap.Int64("note_id", n.ID), zap.Int("lines", len(input.Items)))
	uc.publish(ctx, NoteCreatedPayload{NoteID: n.ID, Kind: model.NoteKindExport, Lines: len(input.Items)})
	return n.ID, nil
}

// DeleteImportNote hides the note. Stock booked by it stays where it is.
func (uc *noteUseCase) DeleteImportNote(ctx context.Context, id int64) error {
	ok, err := uc.repo.DeactivateImportNote(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("import note", id)
	}
	uc.logger.Info("import note deleted", zap.Int64("note_id", id))
	return nil
}

// DeleteExportNote hides the note. Stock booked by it stays where it is.
func (uc *noteUseCase) DeleteExportNote(ctx context.Context, id int64) error {
	ok, err := uc.repo.DeactivateExportNote(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("export note", id)
	}
	uc.logger.Info("export note deleted", zap.Int64("note_id", id))
	return nil
}

func (uc *noteUseCase) ListByFilter(ctx context.Context, filters *dto.NoteFilters) ([]model.NoteSummary, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	notes, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.NoteSummary{}
	}
	return notes, nil
}

func (uc *noteUseCase) GetImportNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error) {
	d, err := uc.repo.FindImportNoteDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("import note", id)
	}
	return d, nil
}

func (uc *noteUseCase) GetExportNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error) {
	d, err := uc.repo.FindExportNoteDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("export note", id)
	}
	return d, nil
}

func (uc *noteUseCase) publish(ctx context.Context, payload NoteCreatedPayload) {
	if uc.publisher == nil {
		return
	}
	event, err := broker.NewEvent(EventNoteCreated, payload, uc.clock.Now())
	if err != nil {
		uc.logger.Error("failed to build note event", zap.Error(err))
		return
	}
	key := payload.Kind + ":" + strconv.FormatInt(payload.NoteID, 10)
	if err := uc.publisher.Publish(ctx, uc.topic, key, event); err != nil {
		uc.logger.Error("failed to publish note event", zap.Int64("note_id", payload.NoteID), zap.Error(err))
	}
}

func userPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
