// Package pagination slices ordered result sets into fixed-size,
// 1-indexed pages. Out-of-range page numbers clamp instead of erroring,
// so a listing URL with a stale page parameter still renders the last
// page rather than an empty one.
package pagination

import "strconv"

// PerPage is the fixed page size used by every listing.
const PerPage = 10

// Page is one fixed-size window over an ordered collection.
type Page[T any] struct {
	Items     []T `json:"items"`
	Number    int `json:"number"`
	PageCount int `json:"page_count"`
	Total     int `json:"total"`
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Number < p.PageCount }

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// PageCount returns ceil(total/PerPage), minimum 1 even for an empty
// collection.
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PerPage - 1) / PerPage
}

// ParsePage interprets a raw page query parameter. Absent, non-numeric,
// or sub-1 values all mean page 1; clamping to the upper bound happens
// in Paginate once the collection size is known.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate returns the requested page of items. The page number is
// clamped into [1, PageCount(len(items))], so the result is only empty
// when items is empty. Purely a function of its inputs.
func Paginate[T any](items []T, page int) Page[T] {
	total := len(items)
	count := PageCount(total)

	if page < 1 {
		page = 1
	}
	if page > count {
		page = count
	}

	start := (page - 1) * PerPage
	end := start + PerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:     items[start:end],
		Number:    page,
		PageCount: count,
		Total:     total,
	}
}
