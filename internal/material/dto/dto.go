package dto

import (
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
)

type MaterialFilters struct {
	Keyword  string
	Active   *bool
	Page     int
	PageSize int
}

func (f *MaterialFilters) Validate() error {
	if f.Page < 0 || f.PageSize < 0 {
		return apperr.Validation("page and page_size must not be negative")
	}
	return nil
}

type MovementFilters struct {
	MaterialID int64
	Direction  string
	Page       int
	PageSize   int
}

func (f *MovementFilters) Validate() error {
	switch f.Direction {
	case "", model.DirectionImport, model.DirectionExport, model.DirectionAdjust:
	default:
		return apperr.Validation("direction must be import, export or adjust")
	}
	if f.Page < 0 || f.PageSize < 0 {
		return apperr.Validation("page and page_size must not be negative")
	}
	return nil
}
