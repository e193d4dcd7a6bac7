package dto

import (
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
)

// OrderFilters selects non-void orders created between StartDate and
// EndDate, both business days and both inclusive.
type OrderFilters struct {
	StartDate string
	EndDate   string
	ID        *int64
	Type      string
	Status    string

	From *time.Time
	To   *time.Time
}

func (f *OrderFilters) Validate() error {
	switch f.Status {
	case "", model.OrderStatusUnpaid, model.OrderStatusPaid:
	default:
		return apperr.Validation("status must be UNPAID or PAID")
	}

	if f.StartDate != "" {
		day, err := clock.ParseDate(f.StartDate)
		if err != nil {
			return apperr.Validation("invalid startDate, expected YYYY-MM-DD")
		}
		from := clock.StartOfDay(day)
		f.From = &from
	}
	if f.EndDate != "" {
		day, err := clock.ParseDate(f.EndDate)
		if err != nil {
			return apperr.Validation("invalid endDate, expected YYYY-MM-DD")
		}
		to := clock.EndOfDay(day)
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return apperr.Validation("endDate must not be before startDate")
	}
	return nil
}
