package dto

import (
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
)

// NoteFilters selects active notes. Dates are business days (YYYY-MM-DD);
// EndDate is inclusive.
type NoteFilters struct {
	Kind        string
	StartDate   string
	EndDate     string
	CreatorName string

	// Resolved by Validate.
	From *time.Time
	To   *time.Time
}

func (f *NoteFilters) Validate() error {
	switch f.Kind {
	case "", model.NoteKindImport, model.NoteKindExport:
	default:
		return apperr.Validation("kind must be import or export")
	}

	if f.StartDate != "" {
		day, err := clock.ParseDate(f.StartDate)
		if err != nil {
			return apperr.Validation("invalid start_date, expected YYYY-MM-DD")
		}
		from := clock.StartOfDay(day)
		f.From = &from
	}
	if f.EndDate != "" {
		day, err := clock.ParseDate(f.EndDate)
		if err != nil {
			return apperr.Validation("invalid end_date, expected YYYY-MM-DD")
		}
		to := clock.EndOfDay(day)
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return apperr.Validation("end_date must not be before start_date")
	}
	return nil
}
