package dto

import "github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"

type ProductFilters struct {
	Keyword    string `json:"keyword"`
	CategoryID *int64 `json:"category_id"`
	TypeID     *int64 `json:"type_id"`
	Active     *bool  `json:"active"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

func (f *ProductFilters) Validate() error {
	if f.Page < 0 || f.PageSize < 0 {
		return apperr.Validation("page and page_size must not be negative")
	}
	return nil
}
