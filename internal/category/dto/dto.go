package dto

type CategoryFilters struct {
	Keyword string
}
