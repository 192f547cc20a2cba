package flow

import "CampaignBot/entity"

// PageSize is the fixed number of options shown per page.
const PageSize = 20

// PagedOptions is one visible page of an upstream option list.
type PagedOptions struct {
	Items      []entity.Option
	PageNumber int
	TotalPages int
}

// Paginate slices the upstream list into the requested page. The page
// number is clamped into [1, totalPages], never an error.
func Paginate(items []entity.Option, page int) PagedOptions {
	total := TotalPages(len(items))
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return PagedOptions{
		Items:      items[start:end],
		PageNumber: page,
		TotalPages: total,
	}
}

// TotalPages calculates the page count for a list length.
func TotalPages(totalItems int) int {
	pages := totalItems / PageSize
	if totalItems%PageSize > 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}
