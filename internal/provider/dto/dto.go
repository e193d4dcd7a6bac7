package dto

type ProviderFilters struct {
	Keyword string
	Active  *bool
}
